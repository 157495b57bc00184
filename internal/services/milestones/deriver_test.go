package milestones

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwa/internal/adapters/memory"
	"bwa/internal/domain"
	"bwa/internal/ports"
)

type fakeHistory struct {
	seenNew map[domain.CompanyID]bool
	posters map[string]bool
	err     error
}

func (h fakeHistory) ScanRecordedNewBefore(_ context.Context, id domain.CompanyID, _ domain.Interaction) (bool, error) {
	return h.seenNew[id], h.err
}

func (h fakeHistory) PostedBefore(_ context.Context, userID string, _ domain.Interaction) (bool, error) {
	return h.posters[userID], h.err
}

func scanIx(changes domain.Changes) domain.Interaction {
	return domain.Interaction{ID: "s1", WebsiteID: "w1", Type: domain.InteractionScan, Payload: &domain.Scan{Changes: changes}}
}

func postIx(user string) domain.Interaction {
	return domain.Interaction{ID: "p1", WebsiteID: "w1", UserID: user, Type: domain.InteractionPost, Payload: &domain.Post{Body: "hi"}}
}

func TestPlanScan_Order(t *testing.T) {
	t.Parallel()

	d := New(nil)
	h := fakeHistory{seenNew: map[domain.CompanyID]bool{"taboola": true}}
	scan := scanIx(domain.Changes{
		"taboola":   domain.StatusNew,
		"wix":       domain.StatusNew,
		"userway":   domain.StatusRemoved,
		"elementor": domain.StatusRemoved,
		"monday":    domain.StatusStillPresent,
	})

	got, err := d.PlanScan(context.Background(), h, scan, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.MilestoneData{
		domain.NewMilestone(domain.MilestoneFirstScan),
		domain.NewCompanyMilestone(domain.MilestoneCompanyAddedFirstTime, "wix"),
		domain.NewCompanyMilestone(domain.MilestoneCompanyAddedBack, "taboola"),
		domain.NewCompanyMilestone(domain.MilestoneCompanyRemovedButHasOthers, "elementor"),
		domain.NewCompanyMilestone(domain.MilestoneCompanyRemovedButHasOthers, "userway"),
	}, got)
}

func TestPlanScan_RemovedAndNoOthers(t *testing.T) {
	t.Parallel()

	prev := scanIx(domain.Changes{"wix": domain.StatusNew})
	got, err := New(nil).PlanScan(context.Background(), fakeHistory{}, scanIx(domain.Changes{"wix": domain.StatusRemoved}), &prev)
	require.NoError(t, err)
	assert.Equal(t, []domain.MilestoneData{
		domain.NewCompanyMilestone(domain.MilestoneCompanyRemovedAndNoOthers, "wix"),
	}, got)
}

func TestPlanScan_StillPresentOnly(t *testing.T) {
	t.Parallel()

	prev := scanIx(domain.Changes{"wix": domain.StatusNew})
	got, err := New(nil).PlanScan(context.Background(), fakeHistory{}, scanIx(domain.Changes{"wix": domain.StatusStillPresent}), &prev)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlanScan_Errors(t *testing.T) {
	t.Parallel()

	d := New(nil)
	_, err := d.PlanScan(context.Background(), fakeHistory{}, postIx("u1"), nil)
	assert.ErrorIs(t, err, domain.ErrInvariant)

	boom := errors.New("boom")
	_, err = d.PlanScan(context.Background(), fakeHistory{err: boom}, scanIx(domain.Changes{"wix": domain.StatusNew}), nil)
	assert.ErrorIs(t, err, boom)
}

func TestPlanPost(t *testing.T) {
	t.Parallel()

	d := New(nil)
	h := fakeHistory{posters: map[string]bool{"veteran": true}}
	ctx := context.Background()

	got, err := d.PlanPost(ctx, h, postIx("newcomer"))
	require.NoError(t, err)
	assert.Equal(t, []domain.MilestoneData{domain.NewMilestone(domain.MilestoneUserPromotedToConcerned)}, got)

	got, err = d.PlanPost(ctx, h, postIx("veteran"))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = d.PlanPost(ctx, h, postIx(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = d.PlanPost(ctx, h, scanIx(nil))
	assert.ErrorIs(t, err, domain.ErrInvariant)
}

func TestForScan_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New(clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	d := New(nil)

	var scan domain.Interaction
	err := store.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		if _, err := tx.UpsertWebsite(ctx, false); err != nil {
			return err
		}
		var err error
		scan, err = tx.AppendScan(ctx, ports.NewScan{Changes: domain.Changes{"wix": domain.StatusNew}})
		if err != nil {
			return err
		}
		created, err := d.ForScan(ctx, tx, scan, nil)
		require.NoError(t, err)
		assert.Len(t, created, 2)

		again, err := d.ForScan(ctx, tx, scan, nil)
		require.NoError(t, err)
		assert.Empty(t, again)
		return nil
	})
	require.NoError(t, err)

	err = store.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		again, err := d.ForScan(ctx, tx, scan, nil)
		require.NoError(t, err)
		assert.Empty(t, again)
		return nil
	})
	require.NoError(t, err)

	w, err := store.FindWebsite(ctx, "example.com")
	require.NoError(t, err)
	log, err := store.Interactions(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, log, 3)
}

func TestForPost_PromotesOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.New(clockwork.NewFakeClock())
	d := New(nil)

	err := store.WithinWebsite(ctx, "example.com", func(tx ports.WebsiteTx) error {
		if _, err := tx.UpsertWebsite(ctx, false); err != nil {
			return err
		}
		for i, want := range []int{1, 0, 0} {
			post, err := tx.AppendPost(ctx, ports.NewPost{UserID: "u1", Body: "post"})
			require.NoError(t, err)
			ms, err := d.ForPost(ctx, tx, post)
			require.NoError(t, err)
			assert.Len(t, ms, want, "post %d", i)
		}
		return nil
	})
	require.NoError(t, err)
}
