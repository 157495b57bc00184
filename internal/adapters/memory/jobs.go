package memory

import (
	"context"

	"github.com/google/uuid"

	"bwa/internal/ports"
)

type jobQueue struct {
	order  []string
	jobs   map[string]ports.ScanJob
	status map[string]ports.JobStatus
}

func newJobQueue() jobQueue {
	return jobQueue{
		jobs:   make(map[string]ports.ScanJob),
		status: make(map[string]ports.JobStatus),
	}
}

func (s *Store) EnqueueJob(_ context.Context, job ports.ScanJob) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = uuid.NewString()
	s.jobs.order = append(s.jobs.order, job.ID)
	s.jobs.jobs[job.ID] = job
	s.jobs.status[job.ID] = ports.JobStatus{ID: job.ID, Hostname: job.Hostname, Status: "queued"}
	return job.ID, nil
}

// ClaimNext hands out queued jobs in FIFO order.
func (s *Store) ClaimNext(_ context.Context) (ports.ScanJob, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.jobs.order {
		st := s.jobs.status[id]
		if st.Status != "queued" {
			continue
		}
		st.Status = "running"
		s.jobs.status[id] = st
		return s.jobs.jobs[id], true, nil
	}
	return ports.ScanJob{}, false, nil
}

func (s *Store) MarkCompleted(_ context.Context, jobID, scanInteractionID string) error {
	return s.setJob(jobID, func(st *ports.JobStatus) {
		st.Status = "completed"
		st.ScanInteractionID = scanInteractionID
	})
}

func (s *Store) MarkFailed(_ context.Context, jobID string, reason string) error {
	return s.setJob(jobID, func(st *ports.JobStatus) {
		st.Status = "failed"
		st.Error = reason
	})
}

func (s *Store) Requeue(_ context.Context, jobID string) error {
	return s.setJob(jobID, func(st *ports.JobStatus) {
		st.Status = "queued"
		st.Error = ""
	})
}

func (s *Store) JobStatus(_ context.Context, jobID string) (ports.JobStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.jobs.status[jobID]
	if !ok {
		return ports.JobStatus{}, ports.ErrJobNotFound
	}
	return st, nil
}

func (s *Store) setJob(jobID string, fn func(*ports.JobStatus)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.jobs.status[jobID]
	if !ok {
		return ports.ErrJobNotFound
	}
	fn(&st)
	s.jobs.status[jobID] = st
	return nil
}
