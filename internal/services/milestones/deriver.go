// Package milestones derives marker events from newly written scans and
// posts.
package milestones

import (
	"context"
	"fmt"

	"bwa/internal/domain"
	"bwa/internal/ports"
)

// History is the part of a website's log the deriver needs to look back at.
type History interface {
	ScanRecordedNewBefore(ctx context.Context, company domain.CompanyID, before domain.Interaction) (bool, error)
	PostedBefore(ctx context.Context, userID string, before domain.Interaction) (bool, error)
}

type Deriver struct {
	registry []domain.CompanyID
}

// New builds a deriver; nil registry means the full company registry.
func New(registry []domain.CompanyID) *Deriver {
	if registry == nil {
		registry = domain.RegistryIDs()
	}
	return &Deriver{registry: registry}
}

// PlanScan lists the milestones a new scan produces, in a stable order:
// first-scan, then additions, then removals, each in registry order.
// preceding is the scan that came right before, nil on a first scan.
func (d *Deriver) PlanScan(ctx context.Context, h History, scan domain.Interaction, preceding *domain.Interaction) ([]domain.MilestoneData, error) {
	s, err := scan.ScanPayload()
	if err != nil {
		return nil, err
	}

	var out []domain.MilestoneData
	if preceding == nil {
		out = append(out, domain.NewMilestone(domain.MilestoneFirstScan))
	}

	for _, id := range d.registry {
		if s.Changes[id] != domain.StatusNew {
			continue
		}
		seen, err := h.ScanRecordedNewBefore(ctx, id, scan)
		if err != nil {
			return nil, fmt.Errorf("look up earlier %s detections: %w", id, err)
		}
		kind := domain.MilestoneCompanyAddedFirstTime
		if seen {
			kind = domain.MilestoneCompanyAddedBack
		}
		out = append(out, domain.NewCompanyMilestone(kind, id))
	}

	removedKind := domain.MilestoneCompanyRemovedAndNoOthers
	if s.Changes.AnyDetected() {
		removedKind = domain.MilestoneCompanyRemovedButHasOthers
	}
	for _, id := range d.registry {
		if s.Changes[id] == domain.StatusRemoved {
			out = append(out, domain.NewCompanyMilestone(removedKind, id))
		}
	}
	return out, nil
}

// PlanPost returns the promotion milestone when this is the author's first
// post on the website. Anonymous posts never promote anyone.
func (d *Deriver) PlanPost(ctx context.Context, h History, post domain.Interaction) ([]domain.MilestoneData, error) {
	if _, err := post.PostPayload(); err != nil {
		return nil, err
	}
	if post.UserID == "" {
		return nil, nil
	}
	posted, err := h.PostedBefore(ctx, post.UserID, post)
	if err != nil {
		return nil, fmt.Errorf("look up earlier posts: %w", err)
	}
	if posted {
		return nil, nil
	}
	return []domain.MilestoneData{domain.NewMilestone(domain.MilestoneUserPromotedToConcerned)}, nil
}

// ForScan plans and writes the scan's milestones inside tx. Only newly
// created milestones are returned; re-deriving for the same scan is a no-op.
func (d *Deriver) ForScan(ctx context.Context, tx ports.WebsiteTx, scan domain.Interaction, preceding *domain.Interaction) ([]domain.Interaction, error) {
	plan, err := d.PlanScan(ctx, tx, scan, preceding)
	if err != nil {
		return nil, err
	}
	return write(ctx, tx, plan, scan)
}

func (d *Deriver) ForPost(ctx context.Context, tx ports.WebsiteTx, post domain.Interaction) ([]domain.Interaction, error) {
	plan, err := d.PlanPost(ctx, tx, post)
	if err != nil {
		return nil, err
	}
	return write(ctx, tx, plan, post)
}

func write(ctx context.Context, tx ports.WebsiteTx, plan []domain.MilestoneData, trigger domain.Interaction) ([]domain.Interaction, error) {
	var out []domain.Interaction
	for _, m := range plan {
		ix, created, err := tx.AppendMilestone(ctx, m, trigger)
		if err != nil {
			return nil, fmt.Errorf("write milestone %s: %w", m, err)
		}
		if created {
			out = append(out, ix)
		}
	}
	return out, nil
}
