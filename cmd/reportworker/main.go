package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos_admin_backend/internal/adapters/storage"
	"pos_admin_backend/internal/catalog"
	"pos_admin_backend/internal/events"
	reportservice "pos_admin_backend/internal/reports/service"
	salesrepo "pos_admin_backend/internal/sales/repository"
	"pos_admin_backend/internal/scheduler"
	"pos_admin_backend/platform/config"
	"pos_admin_backend/platform/db"
	"pos_admin_backend/platform/logger"
	"pos_admin_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting report worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	if err := withRetry(ctx, log, "ensure reports bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketReports())
	}); err != nil {
		log.Error("failed to ensure reports bucket exists", "error", err)
		panic("failed to ensure reports bucket exists: " + err.Error())
	}

	// Worker-side report wiring (no HTTP handlers required).
	catalogModule := catalog.NewModule(pool, nil, "", eventBus, val, log)
	reportsSvc := reportservice.New(
		salesrepo.New(pool),
		catalogModule.Service(),
		storageSvc,
		cfg.GetMinioBucketReports(),
		cfg.GetReportBusinessName(),
		eventBus,
		log,
	)

	worker, err := scheduler.NewWorker(cfg, reportsSvc, log)
	if err != nil {
		log.Error("failed to initialize report worker", "error", err)
		panic("failed to initialize report worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
