package httpadapter

import (
	"bwa/internal/api"
	"bwa/internal/domain"
	"bwa/internal/services/profiles"
	"bwa/internal/services/scanner"
	"bwa/internal/services/timeline"
)

func value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// optional maps a zero value to an omitted field.
func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

func company(c domain.Company) api.Company {
	return api.Company{Id: string(c.ID), Name: c.Name}
}

func changes(c domain.Changes) api.Changes {
	out := make(api.Changes, len(c))
	for id, st := range c {
		out[string(id)] = api.Status(st)
	}
	return out
}

func milestones(ixs []domain.Interaction) []api.Milestone {
	out := make([]api.Milestone, 0, len(ixs))
	for _, ix := range ixs {
		if m, err := ix.MilestonePayload(); err == nil {
			out = append(out, milestone(m))
		}
	}
	return out
}

func milestone(m *domain.Milestone) api.Milestone {
	return api.Milestone{
		Type:              api.MilestoneKind(m.Data.Kind),
		CompanyId:         optional(string(m.Data.CompanyID)),
		DataInteractionId: optional(m.DataInteractionID),
	}
}

func scanResponse(res scanner.Result) api.Scan {
	return api.Scan{
		Hostname:   res.Website.Hostname,
		IsMasjid:   res.Website.IsMasjid,
		ScanId:     res.Scan.ID,
		ScannedAt:  res.Scan.CreatedAt,
		Cached:     res.Cached,
		Changes:    changes(res.Changes),
		Milestones: milestones(res.Milestones),
	}
}

func profileResponse(p profiles.Profile) api.Profile {
	out := api.Profile{
		Hostname:        p.Hostname,
		IsMasjid:        p.IsMasjid,
		ActiveCompanies: make([]api.Company, 0, len(p.ActiveCompanies)),
		LastScanAt:      p.LastScanAt,
		ScanCount:       p.ScanCount,
		PostCount:       p.PostCount,
		ConcernedUsers:  p.ConcernedUsers,
	}
	for _, c := range p.ActiveCompanies {
		out.ActiveCompanies = append(out.ActiveCompanies, company(c))
	}
	return out
}

func timelineResponse(tl timeline.Timeline) api.Timeline {
	out := api.Timeline{
		Hostname:  tl.Website.Hostname,
		IsMasjid:  tl.Website.IsMasjid,
		ScanCount: tl.ScanCount,
		PostCount: tl.PostCount,
		UserCount: tl.UserCount,
		Companies: []api.CompanyTimeline{},
		Entries:   make([]api.Entry, 0, len(tl.Entries)),
	}
	for _, c := range domain.Registry() {
		ct := api.CompanyTimeline{Id: string(c.ID), Name: c.Name, Active: tl.Active(c.ID), Infections: []api.Infection{}}
		for _, inf := range tl.Infections[c.ID] {
			ct.Infections = append(ct.Infections, api.Infection{Start: inf.Start, End: inf.End})
		}
		out.Companies = append(out.Companies, ct)
	}
	for _, e := range tl.Entries {
		v := api.Entry{
			Id:         e.Interaction.ID,
			Type:       string(e.Interaction.Type),
			CreatedAt:  e.Interaction.CreatedAt,
			UserNumber: optional(e.UserNumber),
			ScanNumber: optional(e.ScanNumber),
			PostNumber: optional(e.PostNumber),
		}
		switch p := e.Interaction.Payload.(type) {
		case *domain.Scan:
			ch := changes(p.Changes)
			v.Changes = &ch
		case *domain.Post:
			v.Body = &p.Body
		case *domain.Milestone:
			m := milestone(p)
			v.Milestone = &m
		}
		out.Entries = append(out.Entries, v)
	}
	return out
}
