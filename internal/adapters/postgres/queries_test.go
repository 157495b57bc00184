package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwa/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestLogRowDecode(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	base := domain.Interaction{ID: "i1", WebsiteID: "w1", CreatedAt: at}

	scan, err := logRow{ix: base, changes: []byte(`{"wix":"new"}`)}.decode("SCAN")
	require.NoError(t, err)
	p, err := scan.ScanPayload()
	require.NoError(t, err)
	assert.Equal(t, domain.Changes{"wix": domain.StatusNew}, p.Changes)
	assert.Equal(t, time.UTC, scan.CreatedAt.Location())

	ms, err := logRow{ix: base, data: []byte(`{"type":"company-added-back","companyId":"wix"}`), dataInteractionID: strPtr("i0")}.decode("MILESTONE")
	require.NoError(t, err)
	m, err := ms.MilestonePayload()
	require.NoError(t, err)
	assert.Equal(t, domain.NewCompanyMilestone(domain.MilestoneCompanyAddedBack, "wix"), m.Data)
	assert.Equal(t, "i0", m.DataInteractionID)

	post, err := logRow{ix: base, body: strPtr("hello")}.decode("POST")
	require.NoError(t, err)
	pp, err := post.PostPayload()
	require.NoError(t, err)
	assert.Equal(t, "hello", pp.Body)

	// A missing child row decodes to a nil payload for the projector to reject.
	orphan, err := logRow{ix: base}.decode("SCAN")
	require.NoError(t, err)
	assert.ErrorIs(t, orphan.Validate(), domain.ErrInvariant)

	_, err = logRow{ix: base, changes: []byte(`{"wix":"gone"}`)}.decode("SCAN")
	assert.Error(t, err)
	_, err = logRow{ix: base}.decode("LIKE")
	assert.Error(t, err)
}

func TestChangesJSON(t *testing.T) {
	t.Parallel()

	b, err := changesJSON(domain.Changes{"wix": domain.StatusRemoved, "elementor": domain.StatusStillPresent})
	require.NoError(t, err)
	assert.Equal(t, `{"elementor":"still-present","wix":"removed"}`, string(b))
}

func TestLogQuerySQL(t *testing.T) {
	t.Parallel()

	sqlStr, args, err := logQuery().Where("i.website_id = ?", "w1").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "LEFT JOIN milestones m ON m.interaction_id = i.id")
	assert.Contains(t, sqlStr, "i.website_id = $1")
	assert.Equal(t, []any{"w1"}, args)
}
