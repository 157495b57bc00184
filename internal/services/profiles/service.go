package profiles

import (
	"context"
	"time"

	"bwa/internal/domain"
	"bwa/internal/services/timeline"
)

// Timelines loads projected timelines by hostname.
type Timelines interface {
	Get(ctx context.Context, hostname string) (timeline.Timeline, error)
}

type Service struct {
	timelines Timelines
}

func New(timelines Timelines) *Service { return &Service{timelines: timelines} }

// Profile is the current state of a website, as shown on its summary card.
type Profile struct {
	Hostname        string
	IsMasjid        bool
	ActiveCompanies []domain.Company
	LastScanAt      *time.Time
	ScanCount       int
	PostCount       int
	ConcernedUsers  int
}

func (s *Service) GetLatest(ctx context.Context, hostname string) (Profile, error) {
	tl, err := s.timelines.Get(ctx, hostname)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		Hostname:        tl.Website.Hostname,
		IsMasjid:        tl.Website.IsMasjid,
		ActiveCompanies: []domain.Company{},
		LastScanAt:      tl.LastScanAt(),
		ScanCount:       tl.ScanCount,
		PostCount:       tl.PostCount,
	}
	for _, id := range tl.ActiveCompanies() {
		if c, ok := domain.LookupCompany(id); ok {
			p.ActiveCompanies = append(p.ActiveCompanies, c)
		}
	}
	concerned := map[string]struct{}{}
	for _, e := range tl.Entries {
		if e.Interaction.Type == domain.InteractionPost && e.Interaction.UserID != "" {
			concerned[e.Interaction.UserID] = struct{}{}
		}
	}
	p.ConcernedUsers = len(concerned)
	return p, nil
}
