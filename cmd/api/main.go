package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos_admin_backend/internal/adapters/storage"
	"pos_admin_backend/internal/catalog"
	"pos_admin_backend/internal/events"
	apphttp "pos_admin_backend/internal/http"
	"pos_admin_backend/internal/http/router"
	"pos_admin_backend/internal/notification"
	"pos_admin_backend/internal/reports"
	"pos_admin_backend/internal/sales"
	"pos_admin_backend/internal/scheduler"
	"pos_admin_backend/platform/config"
	"pos_admin_backend/platform/db"
	"pos_admin_backend/platform/logger"
	"pos_admin_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for product images and archived reports (MinIO).
	// Optional: without it, image and report archiving features are off.
	var storageSvc storage.StorageService
	if cfg.IsMinIOEnabled() {
		svc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		storageSvc = svc
		ensureBucket(ctx, log, storageSvc, "product-images", cfg.GetMinioBucketProductImages())
		ensureBucket(ctx, log, storageSvc, "reports", cfg.GetMinioBucketReports())
		log.Info(
			"storage service initialized",
			"productImagesBucket", cfg.GetMinioBucketProductImages(),
			"reportsBucket", cfg.GetMinioBucketReports(),
		)
	} else {
		log.Warn("MINIO_ENDPOINT not configured; product images and report archiving disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module pushes cache invalidations over SSE
	notificationModule := notification.NewModule(eventBus, log)
	defer notificationModule.Hub().Close()

	catalogModule := catalog.NewModule(pool, storageSvc, cfg.GetMinioBucketProductImages(), eventBus, val, log)

	// The sales module builds carts against catalog snapshots
	salesModule := sales.NewModule(pool, catalogModule.Service(), eventBus, val, cfg, log)
	salesModule.StartSessionSweeper(ctx)

	reportsModule := reports.NewModule(
		salesModule.Repository(),
		catalogModule.Service(),
		storageSvc,
		cfg.GetMinioBucketReports(),
		cfg.GetReportBusinessName(),
		eventBus,
		val,
		log,
	)

	// Nightly report scheduling; the worker binary consumes the queue
	if closeScheduler := initReportScheduler(ctx, cfg, log); closeScheduler != nil {
		defer closeScheduler()
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			salesModule,
			reportsModule,
			notificationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReportScheduler(ctx context.Context, cfg config.SchedulerConfig, log *logger.Logger) func() {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; scheduled daily reports disabled")
		return nil
	}

	client, err := scheduler.NewClient(cfg, log)
	if err != nil {
		log.Error("failed to initialize report scheduler client", "error", err)
		return nil
	}

	go client.Run(ctx)
	return func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
