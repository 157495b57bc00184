// Package timeline replays a website's interaction log into infection
// intervals and display ordinals. Nothing here is persisted; every read
// recomputes from the full log.
package timeline

import (
	"time"

	"bwa/internal/domain"
)

// Entry is one interaction with its display ordinals. Zero means "not
// applicable" (anonymous actor, or not a scan/post).
type Entry struct {
	Interaction domain.Interaction
	UserNumber  int
	ScanNumber  int
	PostNumber  int
}

type Timeline struct {
	Website    domain.Website
	Entries    []Entry
	Infections map[domain.CompanyID][]domain.Infection
	ScanCount  int
	PostCount  int
	UserCount  int

	registry []domain.CompanyID
}

// Project folds interactions, which must be ordered oldest first, into a
// timeline. A SCAN/POST/MILESTONE without its payload, a SCAN/POST without a
// website, or out-of-order input is reported as an invariant violation.
func Project(registry []domain.CompanyID, interactions []domain.Interaction) (Timeline, error) {
	if registry == nil {
		registry = domain.RegistryIDs()
	}
	tl := Timeline{
		Entries:    make([]Entry, 0, len(interactions)),
		Infections: make(map[domain.CompanyID][]domain.Infection, len(registry)),
		registry:   registry,
	}
	for _, id := range registry {
		tl.Infections[id] = []domain.Infection{}
	}

	// Input is ascending by CreatedAt, so numbering in iteration order is the
	// same as sorting each sub-sequence and numbering from 1.
	users := make(map[string]int)
	var prev time.Time
	for i, ix := range interactions {
		if err := ix.Validate(); err != nil {
			return Timeline{}, err
		}
		if i > 0 && ix.CreatedAt.Before(prev) {
			return Timeline{}, domain.Invariantf("interaction %s is out of order", ix.ID)
		}
		prev = ix.CreatedAt

		e := Entry{Interaction: ix}
		if ix.UserID != "" {
			n, ok := users[ix.UserID]
			if !ok {
				n = len(users) + 1
				users[ix.UserID] = n
			}
			e.UserNumber = n
		}

		switch ix.Type {
		case domain.InteractionScan:
			s, err := ix.ScanPayload()
			if err != nil {
				return Timeline{}, err
			}
			tl.ScanCount++
			e.ScanNumber = tl.ScanCount
			tl.applyScan(s.Changes, ix.CreatedAt)
		case domain.InteractionPost:
			if _, err := ix.PostPayload(); err != nil {
				return Timeline{}, err
			}
			tl.PostCount++
			e.PostNumber = tl.PostCount
		case domain.InteractionMilestone:
			if _, err := ix.MilestonePayload(); err != nil {
				return Timeline{}, err
			}
		}
		tl.Entries = append(tl.Entries, e)
	}
	tl.UserCount = len(users)
	return tl, nil
}

func (tl *Timeline) applyScan(changes domain.Changes, at time.Time) {
	for _, id := range tl.registry {
		list := tl.Infections[id]
		open := len(list) > 0 && list[len(list)-1].Active()
		switch {
		case changes.Detected(id) && !open:
			tl.Infections[id] = append(list, domain.Infection{Start: at})
		case !changes.Detected(id) && open:
			end := at
			list[len(list)-1].End = &end
		}
	}
}

// Active reports whether the company is currently detected on the website.
func (tl Timeline) Active(id domain.CompanyID) bool {
	list := tl.Infections[id]
	return len(list) > 0 && list[len(list)-1].Active()
}

// ActiveCompanies lists currently detected companies in registry order.
func (tl Timeline) ActiveCompanies() []domain.CompanyID {
	out := []domain.CompanyID{}
	for _, id := range tl.registry {
		if tl.Active(id) {
			out = append(out, id)
		}
	}
	return out
}

// LastScanAt is the time of the most recent scan, nil if never scanned.
func (tl Timeline) LastScanAt() *time.Time {
	for i := len(tl.Entries) - 1; i >= 0; i-- {
		if ix := tl.Entries[i].Interaction; ix.Type == domain.InteractionScan {
			t := ix.CreatedAt
			return &t
		}
	}
	return nil
}
