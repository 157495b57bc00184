package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"bwa/internal/adapters/fetch"
	httpadapter "bwa/internal/adapters/http"
	"bwa/internal/adapters/memory"
	"bwa/internal/adapters/notify"
	pg "bwa/internal/adapters/postgres"
	"bwa/internal/config"
	"bwa/internal/detect"
	"bwa/internal/domain"
	"bwa/internal/logging"
	"bwa/internal/ports"
	compsvc "bwa/internal/services/companies"
	"bwa/internal/services/milestones"
	postsvc "bwa/internal/services/posts"
	profsvc "bwa/internal/services/profiles"
	scansvc "bwa/internal/services/scanner"
	timelinesvc "bwa/internal/services/timeline"
	scanworker "bwa/internal/workers/scanrunner"
)

type storage interface {
	ports.Store
	ports.JobRepository
}

func main() {
	cfg, cfgErr := config.Load()
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrNoDatabase) {
		log.Fatalf("config: %v", cfgErr)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	clock := clockwork.NewRealClock()
	store, closeStore, err := openStorage(ctx, cfg, clock, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := domain.RegistryIDs()
	deriver := milestones.New(registry)
	notifier := notify.NewLogNotifier(logger)
	fetcher := fetch.New(cfg.FetchTimeout, fetch.WithRate(cfg.FetchRatePerSec, cfg.FetchBurst))

	scanner := scansvc.New(scansvc.Deps{
		Store:    store,
		Jobs:     store,
		Fetcher:  fetcher,
		Detector: detect.New(nil),
		Deriver:  deriver,
		Notifier: notifier,
		Clock:    clock,
		Policy:   scansvc.Policy{CacheWindow: cfg.ScanCacheWindow, ForceCooldown: cfg.ScanForceCooldown},
		Logger:   logger.Named("scanner"),
	})
	timelines := timelinesvc.New(store)
	srv := httpadapter.New(
		scanner,
		postsvc.New(store, deriver, notifier, logger.Named("posts")),
		timelines,
		profsvc.New(timelines),
		compsvc.New(),
		logger.Named("http"),
	)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	var workers sync.WaitGroup
	if cfg.ScanWorkers > 0 {
		workers.Add(1)
		go func() {
			defer workers.Done()
			scanworker.Run(ctx, store, scanner, cfg.ScanWorkers, cfg.ScanPollInterval, logger.Named("scanrunner"))
		}()
		logger.Info("scan workers started", zap.Int("workers", cfg.ScanWorkers))
	}

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("env", cfg.Env))

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			cancel()
			workers.Wait()
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	workers.Wait()
	return nil
}

// openStorage connects to Postgres, or falls back to the in-memory store in
// development when no database is configured.
func openStorage(ctx context.Context, cfg config.Config, clock clockwork.Clock, logger *zap.Logger) (storage, func(), error) {
	if cfg.DatabaseURL == "" {
		if !cfg.Development() {
			return nil, nil, config.ErrNoDatabase
		}
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		return memory.New(clock), func() {}, nil
	}

	db, err := pg.Connect(ctx, cfg.DatabaseURL, clock)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}
	return db, db.Close, nil
}
