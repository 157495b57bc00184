package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bwa/internal/domain"
)

func TestLogNotifier(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))
	site := domain.Website{ID: "w1", Hostname: "example.com"}

	n.MilestonesCreated(context.Background(), site, []domain.Interaction{
		{ID: "m1", WebsiteID: "w1", Type: domain.InteractionMilestone, Payload: &domain.Milestone{Data: domain.NewMilestone(domain.MilestoneFirstScan)}},
		{ID: "m2", WebsiteID: "w1", Type: domain.InteractionMilestone},
	})
	n.PostCreated(context.Background(), site, domain.Interaction{ID: "p1", UserID: "u1"})

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "first-scan", entries[0].ContextMap()["milestone"])
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
		assert.Equal(t, "notify watchers: post", entries[2].Message)
	}
}
