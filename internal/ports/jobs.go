package ports

import (
	"context"
	"errors"
)

var ErrJobNotFound = errors.New("scan job not found")

type ScanJob struct {
	ID       string
	Hostname string
	Force    bool
	UserID   string
	IP       string
}

type JobStatus struct {
	ID                string
	Hostname          string
	Status            string // queued|running|completed|failed
	Error             string
	ScanInteractionID string
}

// JobRepository supports enqueueing, claiming and updating scan jobs.
type JobRepository interface {
	EnqueueJob(ctx context.Context, job ScanJob) (jobID string, err error)
	ClaimNext(ctx context.Context) (job ScanJob, found bool, err error)
	MarkCompleted(ctx context.Context, jobID, scanInteractionID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
	// Requeue returns a claimed job that was not processed to the queue.
	Requeue(ctx context.Context, jobID string) error
	JobStatus(ctx context.Context, jobID string) (JobStatus, error)
}
