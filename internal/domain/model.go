package domain

import (
	"errors"
	"fmt"
	"time"
)

// Core domain models. The interaction log is append-only: nothing here is
// ever updated once written, except Website.IsMasjid.

type Website struct {
	ID        string
	Hostname  string
	IsMasjid  bool
	CreatedAt time.Time
}

type InteractionType string

const (
	InteractionScan         InteractionType = "SCAN"
	InteractionPost         InteractionType = "POST"
	InteractionMilestone    InteractionType = "MILESTONE"
	InteractionReport       InteractionType = "REPORT"
	InteractionWatched      InteractionType = "WATCHED"
	InteractionUnwatched    InteractionType = "UNWATCHED"
	InteractionModAdded     InteractionType = "MOD_ADDED"
	InteractionModRemoved   InteractionType = "MOD_REMOVED"
	InteractionBannedUser   InteractionType = "BANNED_USER"
	InteractionUnbannedUser InteractionType = "UNBANNED_USER"
	InteractionBannedIPs    InteractionType = "BANNED_IPS"
	InteractionUnbannedIPs  InteractionType = "UNBANNED_IPS"
)

func ParseInteractionType(s string) (InteractionType, error) {
	switch t := InteractionType(s); t {
	case InteractionScan, InteractionPost, InteractionMilestone, InteractionReport,
		InteractionWatched, InteractionUnwatched, InteractionModAdded, InteractionModRemoved,
		InteractionBannedUser, InteractionUnbannedUser, InteractionBannedIPs, InteractionUnbannedIPs:
		return t, nil
	}
	return "", fmt.Errorf("unknown interaction type %q", s)
}

// Payload is the child record attached to an interaction. Only the types
// below implement it.
type Payload interface {
	interactionType() InteractionType
}

type Scan struct {
	Changes Changes
}

type Post struct {
	Body string
}

type Milestone struct {
	Data MilestoneData
	// DataInteractionID is the interaction that triggered the milestone.
	DataInteractionID string
}

type Report struct {
	Reason string
}

func (*Scan) interactionType() InteractionType      { return InteractionScan }
func (*Post) interactionType() InteractionType      { return InteractionPost }
func (*Milestone) interactionType() InteractionType { return InteractionMilestone }
func (*Report) interactionType() InteractionType    { return InteractionReport }

type Interaction struct {
	ID        string
	WebsiteID string // empty for account-wide events
	UserID    string // empty when anonymous
	IP        string
	Type      InteractionType
	Payload   Payload
	CreatedAt time.Time
}

func carriesPayload(t InteractionType) bool {
	switch t {
	case InteractionScan, InteractionPost, InteractionMilestone, InteractionReport:
		return true
	}
	return false
}

// Validate enforces the type/payload correlation and website scoping.
func (ix Interaction) Validate() error {
	if ix.Payload == nil {
		if carriesPayload(ix.Type) {
			return Invariantf("interaction %s of type %s has no payload", ix.ID, ix.Type)
		}
	} else if got := ix.Payload.interactionType(); got != ix.Type {
		return Invariantf("interaction %s of type %s carries a %s payload", ix.ID, ix.Type, got)
	}
	if (ix.Type == InteractionScan || ix.Type == InteractionPost) && ix.WebsiteID == "" {
		return Invariantf("interaction %s of type %s has no website", ix.ID, ix.Type)
	}
	return nil
}

// ScanPayload returns the scan child or an invariant error.
func (ix Interaction) ScanPayload() (*Scan, error) {
	s, ok := ix.Payload.(*Scan)
	if ix.Type != InteractionScan || !ok || s == nil {
		return nil, Invariantf("interaction %s (%s) has no scan", ix.ID, ix.Type)
	}
	return s, nil
}

func (ix Interaction) PostPayload() (*Post, error) {
	p, ok := ix.Payload.(*Post)
	if ix.Type != InteractionPost || !ok || p == nil {
		return nil, Invariantf("interaction %s (%s) has no post", ix.ID, ix.Type)
	}
	return p, nil
}

func (ix Interaction) MilestonePayload() (*Milestone, error) {
	m, ok := ix.Payload.(*Milestone)
	if ix.Type != InteractionMilestone || !ok || m == nil {
		return nil, Invariantf("interaction %s (%s) has no milestone", ix.ID, ix.Type)
	}
	return m, nil
}

// Infection is a continuous period during which a company was detected.
type Infection struct {
	Start time.Time
	End   *time.Time
}

func (i Infection) Active() bool { return i.End == nil }

// ErrInvariant marks corrupted log state. It is never expected at runtime.
var ErrInvariant = errors.New("invariant violation")

type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "invariant violation: " + e.Msg }

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func Invariantf(format string, args ...any) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}
