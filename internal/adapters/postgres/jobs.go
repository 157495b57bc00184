package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bwa/internal/ports"
)

var _ ports.JobRepository = (*DB)(nil)

func (db *DB) EnqueueJob(ctx context.Context, job ports.ScanJob) (string, error) {
	id := uuid.NewString()
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO scan_jobs (id, hostname, forced, user_id, ip, queued_at)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
    `, id, job.Hostname, job.Force, job.UserID, job.IP, db.clock.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

// ClaimNext selects the next queued job using SKIP LOCKED and marks it running.
func (db *DB) ClaimNext(ctx context.Context) (job ports.ScanJob, found bool, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
        SELECT id, hostname, forced, COALESCE(user_id, ''), COALESCE(ip, '')
        FROM scan_jobs
        WHERE status = 'queued'
        ORDER BY queued_at
        LIMIT 1
        FOR UPDATE SKIP LOCKED
    `).Scan(&job.ID, &job.Hostname, &job.Force, &job.UserID, &job.IP)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}

	if _, err = tx.Exec(ctx, `
        UPDATE scan_jobs SET status = 'running', started_at = now(), attempts = attempts + 1 WHERE id = $1
    `, job.ID); err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID, scanInteractionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tag, err := db.Pool.Exec(ctx, `
        UPDATE scan_jobs SET status = 'completed', finished_at = now(), scan_interaction_id = NULLIF($2, '')
        WHERE id = $1
    `, jobID, scanInteractionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrJobNotFound
	}
	return nil
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tag, err := db.Pool.Exec(ctx, `
        UPDATE scan_jobs SET status = 'failed', finished_at = now(), error = $2 WHERE id = $1
    `, jobID, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrJobNotFound
	}
	return nil
}

func (db *DB) Requeue(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tag, err := db.Pool.Exec(ctx, `
        UPDATE scan_jobs SET status = 'queued', started_at = NULL, finished_at = NULL, error = NULL WHERE id = $1
    `, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrJobNotFound
	}
	return nil
}

func (db *DB) JobStatus(ctx context.Context, jobID string) (ports.JobStatus, error) {
	st := ports.JobStatus{ID: jobID}
	err := db.Pool.QueryRow(ctx, `
        SELECT hostname, status, COALESCE(error, ''), COALESCE(scan_interaction_id, '')
        FROM scan_jobs WHERE id = $1
    `, jobID).Scan(&st.Hostname, &st.Status, &st.Error, &st.ScanInteractionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ports.JobStatus{}, ports.ErrJobNotFound
	}
	return st, err
}
