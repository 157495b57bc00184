package scanrunner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"bwa/internal/ports"
	"bwa/internal/services/scanner"
)

// ScanPerformer runs one scan request end to end.
type ScanPerformer interface {
	PerformScan(ctx context.Context, req scanner.Request) (scanner.Result, error)
}

// statusTimeout bounds job status writes, which run detached from the
// worker context so that shutdown still records them.
const statusTimeout = 5 * time.Second

func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), statusTimeout)
}

// Process runs a claimed job and records its outcome. A job interrupted by
// cancellation goes back to the queue rather than failing.
func Process(ctx context.Context, repo ports.JobRepository, performer ScanPerformer, job ports.ScanJob, log *zap.Logger) {
	log = log.With(zap.String("job_id", job.ID), zap.String("hostname", job.Hostname))
	res, err := performer.PerformScan(ctx, scanner.Request{
		Hostname: job.Hostname,
		Force:    job.Force,
		UserID:   job.UserID,
		IP:       job.IP,
	})
	wctx, cancel := detached(ctx)
	defer cancel()
	if err != nil {
		if ctx.Err() != nil {
			requeue(ctx, repo, job, log)
			return
		}
		if mErr := repo.MarkFailed(wctx, job.ID, err.Error()); mErr != nil {
			log.Error("mark failed", zap.Error(mErr))
		}
		log.Warn("scan job failed", zap.Error(err))
		return
	}
	if err := repo.MarkCompleted(wctx, job.ID, res.Scan.ID); err != nil {
		log.Error("mark completed", zap.Error(err))
		return
	}
	log.Debug("scan job completed", zap.Bool("cached", res.Cached))
}

func requeue(ctx context.Context, repo ports.JobRepository, job ports.ScanJob, log *zap.Logger) {
	wctx, cancel := detached(ctx)
	defer cancel()
	if err := repo.Requeue(wctx, job.ID); err != nil {
		log.Error("requeue job", zap.Error(err))
		return
	}
	log.Info("job returned to queue")
}

// Run starts worker goroutines that claim jobs and process them. It returns
// once ctx is cancelled and every worker has finished its current job; jobs
// claimed but not started by then are returned to the queue.
func Run(ctx context.Context, repo ports.JobRepository, performer ScanPerformer, concurrency int, pollInterval time.Duration, log *zap.Logger) {
	if concurrency < 1 {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	jobsCh := make(chan ports.ScanJob, concurrency)

	// dispatcher loop
	go func() {
		defer close(jobsCh)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for ctx.Err() == nil {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						if ctx.Err() == nil {
							log.Error("job claim error", zap.Error(err))
						}
						break
					}
					if !found {
						break
					}
					select {
					case jobsCh <- job:
					case <-ctx.Done():
						requeue(ctx, repo, job, log.With(zap.String("job_id", job.ID)))
						return
					}
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			wlog := log.With(zap.Int("worker", idx))
			for job := range jobsCh {
				if ctx.Err() != nil {
					requeue(ctx, repo, job, wlog.With(zap.String("job_id", job.ID)))
					continue
				}
				Process(ctx, repo, performer, job, wlog)
			}
		}(i)
	}
	wg.Wait()
}
