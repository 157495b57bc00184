package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwa/internal/domain"
	"bwa/internal/ports"
)

func newStore() (*Store, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(clock), clock
}

func TestWithinWebsite_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()
	boom := errors.New("boom")

	err := s.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		_, err := tx.UpsertWebsite(ctx, false)
		require.NoError(t, err)
		_, err = tx.AppendScan(ctx, ports.NewScan{Changes: domain.Changes{}})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.FindWebsite(ctx, "example.com")
	assert.ErrorIs(t, err, ports.ErrWebsiteNotFound)
	_, found, err := s.LatestScan(ctx, "example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWithinWebsite_StagedReadsAndCommit(t *testing.T) {
	ctx := context.Background()
	s, clock := newStore()

	var first domain.Interaction
	err := s.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		_, err := tx.AppendPost(ctx, ports.NewPost{Body: "x"})
		assert.ErrorIs(t, err, ports.ErrWebsiteNotFound)

		w, err := tx.UpsertWebsite(ctx, true)
		require.NoError(t, err)
		assert.True(t, w.IsMasjid)

		first, err = tx.AppendScan(ctx, ports.NewScan{UserID: "u1", Changes: domain.Changes{"wix": domain.StatusNew}})
		require.NoError(t, err)
		latest, found, err := tx.LatestScan(ctx)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, first.ID, latest.ID)
		return nil
	})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	err = s.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		w, err := tx.UpsertWebsite(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, first.WebsiteID, w.ID)

		second, err := tx.AppendScan(ctx, ports.NewScan{Changes: domain.Changes{"wix": domain.StatusNew}})
		require.NoError(t, err)
		seen, err := tx.ScanRecordedNewBefore(ctx, "wix", second)
		require.NoError(t, err)
		assert.True(t, seen)
		seen, err = tx.ScanRecordedNewBefore(ctx, "wix", first)
		require.NoError(t, err)
		assert.False(t, seen)
		return nil
	})
	require.NoError(t, err)

	w, err := s.FindWebsite(ctx, "example.com")
	require.NoError(t, err)
	assert.False(t, w.IsMasjid)
	log, err := s.Interactions(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.True(t, log[0].CreatedAt.Before(log[1].CreatedAt))
}

func TestAppendMilestone_Dedupes(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()
	data := domain.NewCompanyMilestone(domain.MilestoneCompanyAddedFirstTime, "wix")

	var trigger domain.Interaction
	err := s.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		_, err := tx.UpsertWebsite(ctx, false)
		require.NoError(t, err)
		trigger, err = tx.AppendScan(ctx, ports.NewScan{Changes: domain.Changes{"wix": domain.StatusNew}})
		require.NoError(t, err)

		ix, created, err := tx.AppendMilestone(ctx, data, trigger)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Empty(t, ix.UserID)

		_, created, err = tx.AppendMilestone(ctx, data, trigger)
		require.NoError(t, err)
		assert.False(t, created)

		_, _, err = tx.AppendMilestone(ctx, domain.MilestoneData{Kind: "bogus"}, trigger)
		assert.Error(t, err)
		return nil
	})
	require.NoError(t, err)

	err = s.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		_, created, err := tx.AppendMilestone(ctx, data, trigger)
		require.NoError(t, err)
		assert.False(t, created)
		return nil
	})
	require.NoError(t, err)
}

func TestPostedBefore(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()

	err := s.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		_, err := tx.UpsertWebsite(ctx, false)
		require.NoError(t, err)
		p1, err := tx.AppendPost(ctx, ports.NewPost{UserID: "u1", Body: "a"})
		require.NoError(t, err)
		p2, err := tx.AppendPost(ctx, ports.NewPost{UserID: "u1", Body: "b"})
		require.NoError(t, err)

		before, err := tx.PostedBefore(ctx, "u1", p1)
		require.NoError(t, err)
		assert.False(t, before)
		before, err = tx.PostedBefore(ctx, "u1", p2)
		require.NoError(t, err)
		assert.True(t, before)

		_, err = tx.PostedBefore(ctx, "u1", domain.Interaction{ID: "elsewhere"})
		assert.Error(t, err)
		return nil
	})
	require.NoError(t, err)
}

func TestWithinWebsite_CancelledContext(t *testing.T) {
	s, _ := newStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithinWebsite(ctx, "example.com", func(ports.WebsiteTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestJobs(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()

	a, err := s.EnqueueJob(ctx, ports.ScanJob{Hostname: "a.com"})
	require.NoError(t, err)
	b, err := s.EnqueueJob(ctx, ports.ScanJob{Hostname: "b.com", Force: true})
	require.NoError(t, err)

	job, found, err := s.ClaimNext(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a, job.ID)

	job, found, err = s.ClaimNext(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, b, job.ID)
	assert.True(t, job.Force)

	_, found, err = s.ClaimNext(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.MarkCompleted(ctx, a, "scan-1"))
	require.NoError(t, s.MarkFailed(ctx, b, "fetch failed"))

	st, err := s.JobStatus(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "completed", st.Status)
	assert.Equal(t, "scan-1", st.ScanInteractionID)

	st, err = s.JobStatus(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "failed", st.Status)
	assert.Equal(t, "fetch failed", st.Error)

	_, err = s.JobStatus(ctx, "nope")
	assert.ErrorIs(t, err, ports.ErrJobNotFound)
	assert.ErrorIs(t, s.MarkCompleted(ctx, "nope", ""), ports.ErrJobNotFound)
	assert.ErrorIs(t, s.Requeue(ctx, "nope"), ports.ErrJobNotFound)
}

func TestJobs_Requeue(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()

	id, err := s.EnqueueJob(ctx, ports.ScanJob{Hostname: "a.com"})
	require.NoError(t, err)
	_, found, err := s.ClaimNext(ctx)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, s.Requeue(ctx, id))
	st, err := s.JobStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "queued", st.Status)

	job, found, err := s.ClaimNext(ctx)
	require.NoError(t, err)
	require.True(t, found, "a requeued job is claimable again")
	assert.Equal(t, id, job.ID)
}
