package domain

import (
	"encoding/json"
	"fmt"
)

type MilestoneKind string

const (
	MilestoneFirstScan                  MilestoneKind = "first-scan"
	MilestoneUserPromotedToConcerned    MilestoneKind = "user-promoted-to-concerned"
	MilestoneCompanyAddedFirstTime      MilestoneKind = "company-added-first-time"
	MilestoneCompanyAddedBack           MilestoneKind = "company-added-back"
	MilestoneCompanyRemovedButHasOthers MilestoneKind = "company-removed-but-has-others"
	MilestoneCompanyRemovedAndNoOthers  MilestoneKind = "company-removed-and-no-others"
)

// HasCompany reports whether milestones of this kind carry a company id.
func (k MilestoneKind) HasCompany() bool {
	switch k {
	case MilestoneCompanyAddedFirstTime, MilestoneCompanyAddedBack,
		MilestoneCompanyRemovedButHasOthers, MilestoneCompanyRemovedAndNoOthers:
		return true
	}
	return false
}

func (k MilestoneKind) valid() bool {
	switch k {
	case MilestoneFirstScan, MilestoneUserPromotedToConcerned:
		return true
	}
	return k.HasCompany()
}

// MilestoneData is the tagged payload persisted for a milestone.
type MilestoneData struct {
	Kind      MilestoneKind
	CompanyID CompanyID
}

func NewMilestone(kind MilestoneKind) MilestoneData {
	return MilestoneData{Kind: kind}
}

func NewCompanyMilestone(kind MilestoneKind, id CompanyID) MilestoneData {
	return MilestoneData{Kind: kind, CompanyID: id}
}

// Validate checks the kind is known and the company id is present exactly
// when the kind requires one. New milestones must name a registered company.
func (m MilestoneData) Validate() error {
	if err := m.validateShape(); err != nil {
		return err
	}
	if m.Kind.HasCompany() {
		if _, ok := LookupCompany(m.CompanyID); !ok {
			return fmt.Errorf("milestone %s: unknown company %q", m.Kind, m.CompanyID)
		}
	}
	return nil
}

// validateShape is the read-side check. Stored milestones may name a company
// since retired from the registry.
func (m MilestoneData) validateShape() error {
	if !m.Kind.valid() {
		return fmt.Errorf("unknown milestone type %q", m.Kind)
	}
	if m.Kind.HasCompany() {
		if m.CompanyID == "" {
			return fmt.Errorf("milestone %s needs a company", m.Kind)
		}
	} else if m.CompanyID != "" {
		return fmt.Errorf("milestone %s must not carry a company", m.Kind)
	}
	return nil
}

type milestoneJSON struct {
	Type      MilestoneKind `json:"type"`
	CompanyID CompanyID     `json:"companyId,omitempty"`
}

func (m MilestoneData) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(milestoneJSON{Type: m.Kind, CompanyID: m.CompanyID})
}

func (m *MilestoneData) UnmarshalJSON(b []byte) error {
	var raw milestoneJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode milestone: %w", err)
	}
	out := MilestoneData{Kind: raw.Type, CompanyID: raw.CompanyID}
	if err := out.validateShape(); err != nil {
		return err
	}
	*m = out
	return nil
}

func (m MilestoneData) String() string {
	if m.CompanyID == "" {
		return string(m.Kind)
	}
	return fmt.Sprintf("%s(%s)", m.Kind, m.CompanyID)
}
