package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwa/internal/domain"
)

func TestDetect_Signatures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		html string
		want []domain.CompanyID
	}{
		{
			name: "wix generator",
			html: `<html><head><meta name="generator" content="Wix.com Website Builder"></head><body></body></html>`,
			want: []domain.CompanyID{"wix"},
		},
		{
			name: "elementor plugin path",
			html: `<html><head><link rel="stylesheet" href="/wp-content/plugins/elementor/assets/css/frontend.min.css"></head></html>`,
			want: []domain.CompanyID{"elementor"},
		},
		{
			name: "script host subdomain",
			html: `<html><head><script src="//widgets.taboola.com/loader.js"></script></head></html>`,
			want: []domain.CompanyID{"taboola"},
		},
		{
			name: "several at once in registry order",
			html: `<html><body class="elementor-kit-12"><script src="https://cdn.userway.org/widget.js"></script>
				<img src="https://static.wixstatic.com/media/a.png"></body></html>`,
			want: []domain.CompanyID{"wix", "elementor", "userway"},
		},
		{
			name: "lookalike host does not match",
			html: `<html><head><script src="https://notwix.com/app.js"></script></head></html>`,
			want: []domain.CompanyID{},
		},
		{
			name: "clean page",
			html: `<html><head><title>Hello</title></head><body><p>Nothing here</p></body></html>`,
			want: []domain.CompanyID{},
		},
	}

	engine := New(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.Detect([]byte(tc.html))
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Detected.Sorted())
		})
	}
}

func TestDetect_Masjid(t *testing.T) {
	t.Parallel()

	engine := New(nil)

	res, err := engine.Detect([]byte(`<html><head><title>Al-Noor Masjid</title></head><body>Welcome</body></html>`))
	require.NoError(t, err)
	assert.True(t, res.IsMasjid)
	assert.Equal(t, "Al-Noor Masjid", res.Title)

	res, err = engine.Detect([]byte(`<html><body><h2>Prayer Times</h2></body></html>`))
	require.NoError(t, err)
	assert.True(t, res.IsMasjid)

	// Keywords inside scripts are not visible text.
	res, err = engine.Detect([]byte(`<html><body><script>var t = "mosque";</script><p>Bakery</p></body></html>`))
	require.NoError(t, err)
	assert.False(t, res.IsMasjid)
}

func TestDetect_RestrictedCompanies(t *testing.T) {
	t.Parallel()

	wix, ok := domain.LookupCompany("wix")
	require.True(t, ok)

	engine := New([]domain.Company{wix})
	res, err := engine.Detect([]byte(`<script src="https://cdn.userway.org/widget.js"></script><script src="https://static.parastorage.com/x.js"></script>`))
	require.NoError(t, err)
	assert.Equal(t, []domain.CompanyID{"wix"}, res.Detected.Sorted())
}
