package ports

import (
	"context"

	"bwa/internal/domain"
)

// Fetcher retrieves a website's homepage markup.
type Fetcher interface {
	Fetch(ctx context.Context, hostname string) ([]byte, error)
}

// Notifier receives milestones after they are committed. Delivery is best
// effort and never fails the request that produced them.
type Notifier interface {
	MilestonesCreated(ctx context.Context, website domain.Website, milestones []domain.Interaction)
	PostCreated(ctx context.Context, website domain.Website, post domain.Interaction)
}
