package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"bwa/internal/detect"
	"bwa/internal/domain"
	"bwa/internal/ports"
	"bwa/internal/services/milestones"
)

// Detector turns fetched markup into detections.
type Detector interface {
	Detect(markup []byte) (detect.Result, error)
}

type Deps struct {
	Store    ports.Store
	Jobs     ports.JobRepository
	Fetcher  ports.Fetcher
	Detector Detector
	Deriver  *milestones.Deriver
	Notifier ports.Notifier
	Clock    clockwork.Clock
	Policy   Policy
	Logger   *zap.Logger
}

type Service struct {
	store    ports.Store
	jobs     ports.JobRepository
	fetcher  ports.Fetcher
	detector Detector
	deriver  *milestones.Deriver
	notifier ports.Notifier
	clock    clockwork.Clock
	policy   Policy
	registry []domain.CompanyID
	flights  singleflight.Group
	log      *zap.Logger
}

func New(d Deps) *Service {
	s := &Service{
		store:    d.Store,
		jobs:     d.Jobs,
		fetcher:  d.Fetcher,
		detector: d.Detector,
		deriver:  d.Deriver,
		notifier: d.Notifier,
		clock:    d.Clock,
		policy:   d.Policy,
		registry: domain.RegistryIDs(),
		log:      d.Logger,
	}
	if s.detector == nil {
		s.detector = detect.New(nil)
	}
	if s.deriver == nil {
		s.deriver = milestones.New(s.registry)
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.policy.CacheWindow == 0 {
		s.policy.CacheWindow = DefaultCacheWindow
	}
	if s.policy.ForceCooldown == 0 {
		s.policy.ForceCooldown = DefaultForceCooldown
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

type Request struct {
	Hostname string
	Force    bool
	UserID   string
	IP       string
}

type Result struct {
	Website    domain.Website
	Scan       domain.Interaction
	Changes    domain.Changes
	Milestones []domain.Interaction
	// Cached is set when Scan is a preceding scan served from cache.
	Cached bool
	// Warning explains why a cached result was served when a fresh one was
	// asked for: ErrScanTooRecent or a fetch error.
	Warning error
}

// flightTimeout bounds a shared fresh scan once it no longer follows the
// cancellation of the caller that started it.
const flightTimeout = time.Minute

// PerformScan serves a cached scan or runs a fresh one. Concurrent fresh
// scans of one hostname share a single fetch; the fetch happens outside the
// website lock and the cache decision is taken again under it, so racing
// scans record one SCAN and reconcile against the latest one.
func (s *Service) PerformScan(ctx context.Context, req Request) (Result, error) {
	host, err := domain.NormalizeHostname(req.Hostname)
	if err != nil {
		return Result{}, err
	}

	last, found, err := s.store.LatestScan(ctx, host)
	if err != nil {
		return Result{}, fmt.Errorf("load latest scan: %w", err)
	}
	if d := s.policy.Decide(s.clock.Now(), scanTime(last, found), req.Force); d.UseCache {
		return s.cached(ctx, host, last, d.Warning)
	}

	ch := s.flights.DoChan(host, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return s.fresh(fctx, host, req)
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		return r.Val.(Result), nil
	}
}

func scanTime(ix domain.Interaction, found bool) *time.Time {
	if !found {
		return nil
	}
	return &ix.CreatedAt
}

func (s *Service) fresh(ctx context.Context, host string, req Request) (Result, error) {
	// A flight that ended just before this one may have recorded a scan.
	last, found, err := s.store.LatestScan(ctx, host)
	if err != nil {
		return Result{}, fmt.Errorf("load latest scan: %w", err)
	}
	if d := s.policy.Decide(s.clock.Now(), scanTime(last, found), req.Force); d.UseCache {
		return s.cached(ctx, host, last, d.Warning)
	}

	markup, err := s.fetcher.Fetch(ctx, host)
	if err != nil {
		if found {
			s.log.Warn("fetch failed, serving cached scan", zap.String("hostname", host), zap.Error(err))
			return s.cached(ctx, host, last, err)
		}
		return Result{}, err
	}
	det, err := s.detector.Detect(markup)
	if err != nil {
		return Result{}, fmt.Errorf("detect %s: %w", host, err)
	}

	var res Result
	err = s.store.WithinWebsite(ctx, host, func(tx ports.WebsiteTx) error {
		prev, hasPrev, err := tx.LatestScan(ctx)
		if err != nil {
			return fmt.Errorf("load preceding scan: %w", err)
		}
		// Another process recorded a scan while this one was fetching.
		if hasPrev && (!found || prev.ID != last.ID) {
			if d := s.policy.Decide(s.clock.Now(), &prev.CreatedAt, req.Force); d.UseCache {
				w, _, err := tx.Website(ctx)
				if err != nil {
					return fmt.Errorf("load website: %w", err)
				}
				p, err := prev.ScanPayload()
				if err != nil {
					return err
				}
				res = Result{Website: w, Scan: prev, Changes: p.Changes, Cached: true, Warning: d.Warning}
				return nil
			}
		}

		w, err := tx.UpsertWebsite(ctx, det.IsMasjid)
		if err != nil {
			return fmt.Errorf("upsert website: %w", err)
		}
		var preceding *domain.Interaction
		var prevChanges domain.Changes
		if hasPrev {
			p, err := prev.ScanPayload()
			if err != nil {
				return err
			}
			preceding, prevChanges = &prev, p.Changes
		}

		changes := Reconcile(prevChanges, det.Detected, s.registry)
		scan, err := tx.AppendScan(ctx, ports.NewScan{UserID: req.UserID, IP: req.IP, Changes: changes})
		if err != nil {
			return fmt.Errorf("append scan: %w", err)
		}
		ms, err := s.deriver.ForScan(ctx, tx, scan, preceding)
		if err != nil {
			return fmt.Errorf("derive milestones: %w", err)
		}
		res = Result{Website: w, Scan: scan, Changes: changes, Milestones: ms}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("record scan of %s: %w", host, err)
	}
	if res.Cached {
		s.log.Debug("scan recorded concurrently, serving it", zap.String("hostname", host), zap.String("interaction_id", res.Scan.ID))
		return res, nil
	}

	s.log.Info("scan recorded",
		zap.String("hostname", host),
		zap.String("interaction_id", res.Scan.ID),
		zap.Int("companies", len(res.Changes)),
		zap.Int("milestones", len(res.Milestones)),
	)
	if s.notifier != nil && len(res.Milestones) > 0 {
		s.notifier.MilestonesCreated(ctx, res.Website, res.Milestones)
	}
	return res, nil
}

func (s *Service) cached(ctx context.Context, host string, last domain.Interaction, warning error) (Result, error) {
	w, err := s.store.FindWebsite(ctx, host)
	if err != nil {
		return Result{}, fmt.Errorf("load website: %w", err)
	}
	p, err := last.ScanPayload()
	if err != nil {
		return Result{}, err
	}
	return Result{Website: w, Scan: last, Changes: p.Changes, Cached: true, Warning: warning}, nil
}

// Enqueue validates the hostname and queues an asynchronous scan.
func (s *Service) Enqueue(ctx context.Context, req Request) (string, error) {
	host, err := domain.NormalizeHostname(req.Hostname)
	if err != nil {
		return "", err
	}
	return s.jobs.EnqueueJob(ctx, ports.ScanJob{Hostname: host, Force: req.Force, UserID: req.UserID, IP: req.IP})
}

func (s *Service) Status(ctx context.Context, jobID string) (ports.JobStatus, error) {
	return s.jobs.JobStatus(ctx, jobID)
}
