package domain

// CompanyID is the stable identifier of a tracked provider.
type CompanyID string

// Signature describes how a company shows up in a page's markup. A company is
// detected when any single predicate matches.
type Signature struct {
	// Substrings are matched case-insensitively against the raw markup.
	Substrings []string
	// Hosts are matched against the host of script src and link href URLs,
	// including subdomains.
	Hosts []string
	// Generators are prefixes of <meta name="generator"> content.
	Generators []string
}

type Company struct {
	ID        CompanyID
	Name      string
	Signature Signature
}

var registry = []Company{
	{
		ID:   "wix",
		Name: "Wix",
		Signature: Signature{
			Substrings: []string{"static.parastorage.com", "static.wixstatic.com", "wix-warmup-data"},
			Hosts:      []string{"parastorage.com", "wixstatic.com", "wix.com"},
			Generators: []string{"Wix.com"},
		},
	},
	{
		ID:   "elementor",
		Name: "Elementor",
		Signature: Signature{
			Substrings: []string{"elementor-frontend", "/wp-content/plugins/elementor/", "elementor-kit-"},
			Generators: []string{"Elementor"},
		},
	},
	{
		ID:   "monday",
		Name: "monday.com",
		Signature: Signature{
			Substrings: []string{"forms.monday.com", "view.monday.com"},
			Hosts:      []string{"monday.com"},
		},
	},
	{
		ID:   "taboola",
		Name: "Taboola",
		Signature: Signature{
			Substrings: []string{"cdn.taboola.com", "window._taboola"},
			Hosts:      []string{"taboola.com"},
		},
	},
	{
		ID:   "yotpo",
		Name: "Yotpo",
		Signature: Signature{
			Substrings: []string{"staticw2.yotpo.com", "cdn-widgetsrepository.yotpo.com"},
			Hosts:      []string{"yotpo.com"},
		},
	},
	{
		ID:   "userway",
		Name: "UserWay",
		Signature: Signature{
			Substrings: []string{"cdn.userway.org"},
			Hosts:      []string{"userway.org"},
		},
	},
	{
		ID:   "accessibe",
		Name: "accessiBe",
		Signature: Signature{
			Substrings: []string{"acsbapp.com", "acsbap.com"},
			Hosts:      []string{"acsbapp.com", "accessibe.com"},
		},
	},
}

var registryIndex = func() map[CompanyID]int {
	m := make(map[CompanyID]int, len(registry))
	for i, c := range registry {
		m[c.ID] = i
	}
	return m
}()

// Registry returns the tracked companies in their fixed display order.
func Registry() []Company {
	out := make([]Company, len(registry))
	copy(out, registry)
	return out
}

// RegistryIDs returns the tracked company ids in registry order.
func RegistryIDs() []CompanyID {
	out := make([]CompanyID, len(registry))
	for i, c := range registry {
		out[i] = c.ID
	}
	return out
}

// LookupCompany finds a registry entry by id.
func LookupCompany(id CompanyID) (Company, bool) {
	i, ok := registryIndex[id]
	if !ok {
		return Company{}, false
	}
	return registry[i], true
}

// CompanySet is the set of companies detected on a page.
type CompanySet map[CompanyID]struct{}

func NewCompanySet(ids ...CompanyID) CompanySet {
	s := make(CompanySet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s CompanySet) Has(id CompanyID) bool {
	_, ok := s[id]
	return ok
}

func (s CompanySet) Add(id CompanyID) { s[id] = struct{}{} }

// Sorted returns the members in registry order.
func (s CompanySet) Sorted() []CompanyID {
	out := make([]CompanyID, 0, len(s))
	for _, c := range registry {
		if s.Has(c.ID) {
			out = append(out, c.ID)
		}
	}
	return out
}
