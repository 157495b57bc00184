package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwa/internal/adapters/fetch"
	"bwa/internal/adapters/memory"
	"bwa/internal/api"
	"bwa/internal/domain"
	"bwa/internal/services/companies"
	"bwa/internal/services/posts"
	"bwa/internal/services/profiles"
	"bwa/internal/services/scanner"
	"bwa/internal/services/timeline"
)

const wixPage = `<html><head><title>Masjid Al-Noor</title>
<meta name="description" content="Our mosque and community prayer times">
<script src="https://static.parastorage.com/services/wix-thunderbolt/main.js"></script>
</head><body>Welcome</body></html>`

type pageFetcher struct {
	mu   sync.Mutex
	page string
	err  error
}

func (f *pageFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.page), nil
}

func (f *pageFetcher) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type harness struct {
	srv     *httptest.Server
	clock   *clockwork.FakeClock
	fetcher *pageFetcher
}

func newHarness(t *testing.T) harness {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC))
	store := memory.New(clock)
	fetcher := &pageFetcher{page: wixPage}
	scans := scanner.New(scanner.Deps{Store: store, Jobs: store, Fetcher: fetcher, Clock: clock})
	timelines := timeline.New(store)
	s := New(
		scans,
		posts.New(store, nil, nil, nil),
		timelines,
		profiles.New(timelines),
		companies.New(),
		nil,
	)
	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return harness{srv: srv, clock: clock, fetcher: fetcher}
}

func (h harness) do(t *testing.T, method, path string, body any, headers map[string]string, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, h.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := h.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	var out api.Health
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/healthz", nil, nil, &out))
	assert.Equal(t, "ok", out.Status)
}

func TestScanThenReadBack(t *testing.T) {
	h := newHarness(t)

	var scan api.Scan
	code := h.do(t, http.MethodPost, "/scan", api.ScanRequest{Hostname: "Example.com"}, map[string]string{UserHeader: "u1"}, &scan)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "example.com", scan.Hostname)
	assert.True(t, scan.IsMasjid)
	assert.False(t, scan.Cached)
	assert.Equal(t, api.Changes{"wix": api.StatusNew}, scan.Changes)
	require.Len(t, scan.Milestones, 2)
	assert.Equal(t, api.MilestoneKindFirstScan, scan.Milestones[0].Type)
	assert.Nil(t, scan.Milestones[0].CompanyId)
	assert.Equal(t, api.MilestoneKindCompanyAddedFirstTime, scan.Milestones[1].Type)
	require.NotNil(t, scan.Milestones[1].CompanyId)
	assert.Equal(t, "wix", *scan.Milestones[1].CompanyId)
	assert.Nil(t, scan.Warning)

	var cached api.Scan
	require.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/scan?force=true", api.ScanRequest{Hostname: "example.com"}, nil, &cached))
	assert.True(t, cached.Cached)
	assert.Equal(t, scan.ScanId, cached.ScanId)
	require.NotNil(t, cached.Warning)
	assert.Equal(t, "scan-too-recent", cached.Warning.Code)

	var tl api.Timeline
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/websites/example.com/timeline", nil, nil, &tl))
	assert.Equal(t, 1, tl.ScanCount)
	assert.Equal(t, 1, tl.UserCount)
	require.Len(t, tl.Entries, 3)
	assert.Equal(t, string(domain.InteractionScan), tl.Entries[0].Type)
	require.NotNil(t, tl.Entries[0].ScanNumber)
	assert.Equal(t, 1, *tl.Entries[0].ScanNumber)
	require.NotNil(t, tl.Entries[0].UserNumber)
	assert.Equal(t, 1, *tl.Entries[0].UserNumber)
	require.NotNil(t, tl.Entries[0].Changes)
	assert.Equal(t, api.Changes{"wix": api.StatusNew}, *tl.Entries[0].Changes)
	require.NotNil(t, tl.Entries[1].Milestone)
	require.NotNil(t, tl.Entries[1].Milestone.DataInteractionId)
	assert.Equal(t, scan.ScanId, *tl.Entries[1].Milestone.DataInteractionId)
	assert.Nil(t, tl.Entries[1].UserNumber)
	require.Len(t, tl.Companies, len(domain.RegistryIDs()))
	assert.Equal(t, "wix", tl.Companies[0].Id)
	assert.True(t, tl.Companies[0].Active)
	require.Len(t, tl.Companies[0].Infections, 1)
	assert.Nil(t, tl.Companies[0].Infections[0].End)

	var prof api.Profile
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/websites/example.com/profile", nil, nil, &prof))
	assert.Equal(t, []api.Company{{Id: "wix", Name: "Wix"}}, prof.ActiveCompanies)
	assert.Equal(t, 1, prof.ScanCount)
	require.NotNil(t, prof.LastScanAt)
}

func TestPosts(t *testing.T) {
	h := newHarness(t)

	var errResp api.ErrorResponse
	code := h.do(t, http.MethodPost, "/websites/example.com/posts", api.PostRequest{Body: "hi"}, map[string]string{UserHeader: "u1"}, &errResp)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "website-not-found", errResp.Error.Code)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/scan", api.ScanRequest{Hostname: "example.com"}, nil, nil))

	var created api.PostCreated
	code = h.do(t, http.MethodPost, "/websites/example.com/posts", api.PostRequest{Body: "they use wix"}, map[string]string{UserHeader: "u1"}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, created.Id)
	require.Len(t, created.Milestones, 1)
	assert.Equal(t, api.MilestoneKindUserPromotedToConcerned, created.Milestones[0].Type)

	code = h.do(t, http.MethodPost, "/websites/example.com/posts", api.PostRequest{Body: "again"}, map[string]string{UserHeader: "u1"}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Empty(t, created.Milestones)

	code = h.do(t, http.MethodPost, "/websites/example.com/posts", api.PostRequest{Body: " "}, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "empty-post", errResp.Error.Code)

	var prof api.Profile
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/websites/example.com/profile", nil, nil, &prof))
	assert.Equal(t, 2, prof.PostCount)
	assert.Equal(t, 1, prof.ConcernedUsers)
}

func TestScanErrors(t *testing.T) {
	h := newHarness(t)

	var errResp api.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/scan", api.ScanRequest{Hostname: "not a host"}, nil, &errResp))
	assert.Equal(t, "invalid-hostname", errResp.Error.Code)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/scan", api.ScanRequest{Hostname: "169.254.169.254"}, nil, &errResp))
	assert.Equal(t, "invalid-hostname", errResp.Error.Code)

	// A body without a hostname decodes, then fails validation.
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/scan", map[string]any{"url": "x"}, nil, &errResp))
	assert.Equal(t, "invalid-hostname", errResp.Error.Code)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/scan", "oops", nil, &errResp))
	assert.Equal(t, "bad-request", errResp.Error.Code)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/scan?force=maybe", api.ScanRequest{Hostname: "example.com"}, nil, &errResp))
	assert.Equal(t, "bad-request", errResp.Error.Code)

	h.fetcher.fail(&fetch.Error{Kind: fetch.KindTimeout, Hostname: "example.com"})
	assert.Equal(t, http.StatusGatewayTimeout, h.do(t, http.MethodPost, "/scan", api.ScanRequest{Hostname: "example.com"}, nil, &errResp))
	assert.Equal(t, "fetch-timeout", errResp.Error.Code)

	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/websites/example.com/timeline", nil, nil, &errResp))
}

func TestAsyncScan(t *testing.T) {
	h := newHarness(t)

	var accepted api.ScanAccepted
	require.Equal(t, http.StatusAccepted, h.do(t, http.MethodPost, "/scan?wait=false", api.ScanRequest{Hostname: "example.com"}, nil, &accepted))
	require.NotEmpty(t, accepted.JobId)

	var job api.ScanJob
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/scan-jobs/"+accepted.JobId, nil, nil, &job))
	assert.Equal(t, api.JobStateQueued, job.Status)
	assert.Equal(t, "example.com", job.Hostname)
	assert.Nil(t, job.ScanId)

	var errResp api.ErrorResponse
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/scan-jobs/unknown", nil, nil, &errResp))
	assert.Equal(t, "job-not-found", errResp.Error.Code)
}

func TestCompanies(t *testing.T) {
	h := newHarness(t)

	var list []api.Company
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/companies", nil, nil, &list))
	assert.Len(t, list, len(domain.RegistryIDs()))

	var c api.Company
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/companies/taboola", nil, nil, &c))
	assert.Equal(t, "Taboola", c.Name)

	var errResp api.ErrorResponse
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/companies/acme", nil, nil, &errResp))
	assert.Equal(t, "company-not-found", errResp.Error.Code)
}

func TestProblemFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
	}{
		{&fetch.Error{Kind: fetch.KindNetwork}, http.StatusBadGateway},
		{&fetch.Error{Kind: fetch.KindUpstream, Status: 503}, http.StatusBadGateway},
		{&fetch.Error{Kind: fetch.KindRejected, Status: 403}, http.StatusUnprocessableEntity},
		{&fetch.Error{Kind: fetch.KindRateLimited}, http.StatusTooManyRequests},
		{domain.Invariantf("broken"), http.StatusInternalServerError},
		{posts.ErrPostTooLong, http.StatusBadRequest},
	}
	for _, tt := range tests {
		_, status := problemFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
	}
}
