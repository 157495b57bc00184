// Package notify holds Notifier implementations. Email delivery lives
// outside this service; LogNotifier records what would be sent.
package notify

import (
	"context"

	"go.uber.org/zap"

	"bwa/internal/domain"
	"bwa/internal/ports"
)

type LogNotifier struct {
	log *zap.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) MilestonesCreated(_ context.Context, website domain.Website, milestones []domain.Interaction) {
	for _, ix := range milestones {
		m, err := ix.MilestonePayload()
		if err != nil {
			n.log.Error("notify: bad milestone", zap.String("interaction_id", ix.ID), zap.Error(err))
			continue
		}
		n.log.Info("notify watchers: milestone",
			zap.String("hostname", website.Hostname),
			zap.Stringer("milestone", m.Data),
			zap.String("interaction_id", ix.ID),
		)
	}
}

func (n *LogNotifier) PostCreated(_ context.Context, website domain.Website, post domain.Interaction) {
	n.log.Info("notify watchers: post",
		zap.String("hostname", website.Hostname),
		zap.String("interaction_id", post.ID),
		zap.String("user_id", post.UserID),
	)
}
