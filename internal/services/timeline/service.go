package timeline

import (
	"context"
	"fmt"

	"bwa/internal/domain"
	"bwa/internal/ports"
)

type Service struct {
	store ports.Store
}

func New(store ports.Store) *Service { return &Service{store: store} }

// Get loads a website's log and projects it.
func (s *Service) Get(ctx context.Context, hostname string) (Timeline, error) {
	host, err := domain.NormalizeHostname(hostname)
	if err != nil {
		return Timeline{}, err
	}
	w, err := s.store.FindWebsite(ctx, host)
	if err != nil {
		return Timeline{}, err
	}
	log, err := s.store.Interactions(ctx, w.ID)
	if err != nil {
		return Timeline{}, fmt.Errorf("load interactions: %w", err)
	}
	tl, err := Project(nil, log)
	if err != nil {
		return Timeline{}, err
	}
	tl.Website = w
	return tl, nil
}
