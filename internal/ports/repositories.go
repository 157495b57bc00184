package ports

import (
	"context"
	"errors"
	"time"

	"bwa/internal/domain"
)

// ErrWebsiteNotFound is returned when a hostname has never been scanned.
var ErrWebsiteNotFound = errors.New("website not found")

// Store is the durable home of websites and their interaction logs.
type Store interface {
	// FindWebsite looks up a website by normalized hostname.
	FindWebsite(ctx context.Context, hostname string) (domain.Website, error)
	// LatestScan returns the most recent SCAN interaction for the hostname,
	// found=false when the website has never been scanned.
	LatestScan(ctx context.Context, hostname string) (scan domain.Interaction, found bool, err error)
	// Interactions returns the website's full log ordered oldest first.
	Interactions(ctx context.Context, websiteID string) ([]domain.Interaction, error)
	// WithinWebsite runs fn in one transaction holding an exclusive
	// per-hostname lock. Any error rolls back everything fn wrote.
	WithinWebsite(ctx context.Context, hostname string, fn func(WebsiteTx) error) error
}

// NewScan is the input for appending a SCAN interaction.
type NewScan struct {
	UserID  string
	IP      string
	Changes domain.Changes
}

// NewPost is the input for appending a POST interaction.
type NewPost struct {
	UserID string
	IP     string
	Body   string
}

// WebsiteTx is the view of one website's log inside WithinWebsite.
type WebsiteTx interface {
	// Website returns the locked website, found=false if it does not exist yet.
	Website(ctx context.Context) (w domain.Website, found bool, err error)
	// UpsertWebsite creates the website if needed and records the masjid flag.
	UpsertWebsite(ctx context.Context, isMasjid bool) (domain.Website, error)
	LatestScan(ctx context.Context) (scan domain.Interaction, found bool, err error)
	// ScanRecordedNewBefore reports whether a scan strictly before the given
	// interaction recorded the company as new.
	ScanRecordedNewBefore(ctx context.Context, company domain.CompanyID, before domain.Interaction) (bool, error)
	// PostedBefore reports whether the user has a POST strictly before the
	// given interaction on this website.
	PostedBefore(ctx context.Context, userID string, before domain.Interaction) (bool, error)
	AppendScan(ctx context.Context, in NewScan) (domain.Interaction, error)
	AppendPost(ctx context.Context, in NewPost) (domain.Interaction, error)
	// AppendMilestone writes a milestone triggered by the given interaction.
	// created=false means the same milestone already existed for it.
	AppendMilestone(ctx context.Context, data domain.MilestoneData, trigger domain.Interaction) (ix domain.Interaction, created bool, err error)
	Now() time.Time
}
