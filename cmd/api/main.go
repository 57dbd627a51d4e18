package main

import (
	"context"
	"crypto/tls"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meteory_backend/internal/auth"
	"meteory_backend/internal/auth/limiter"
	"meteory_backend/internal/calculators"
	"meteory_backend/internal/events"
	"meteory_backend/internal/exports"
	apphttp "meteory_backend/internal/http"
	"meteory_backend/internal/http/router"
	"meteory_backend/internal/leads"
	leadservice "meteory_backend/internal/leads/service"
	"meteory_backend/internal/notification"
	"meteory_backend/internal/scheduler"
	"meteory_backend/internal/storage"
	"meteory_backend/platform/config"
	"meteory_backend/platform/db"
	"meteory_backend/platform/logger"
	"meteory_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

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

	// Redis backs both the login throttle and the follow-up scheduler. Both
	// degrade to disabled when REDIS_URL is not set.
	throttle, closeThrottle := initLoginThrottle(cfg, log)
	if closeThrottle != nil {
		defer closeThrottle()
	}

	followUpScheduler, closeScheduler := initFollowUpScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Object storage for CSV exports (MinIO). Optional: without it the export
	// endpoint streams the file inline instead of returning a download link.
	var exportStore exports.ObjectStore
	if cfg.IsStorageEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure exports bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx, cfg.GetExportsBucket())
		}); err != nil {
			log.Error("failed to ensure exports bucket exists", "error", err, "bucket", cfg.GetExportsBucket())
			panic("failed to ensure exports bucket exists: " + err.Error())
		}
		exportStore = storageSvc
		log.Info("storage service initialized", "exportsBucket", cfg.GetExportsBucket())
	} else {
		log.Warn("MinIO not configured; lead exports will be served inline")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(cfg, log)
	notificationModule.Subscribe(eventBus)

	authModule := auth.NewModule(cfg, cfg, throttle, log)

	calculatorsModule, err := calculators.NewModule(val)
	if err != nil {
		log.Error("failed to initialize calculators module", "error", err)
		panic("failed to initialize calculators module: " + err.Error())
	}

	leadsModule := leads.NewModule(pool, eventBus, followUpScheduler, val, log)

	exportsModule := exports.NewModule(leadsModule.Service(), exportStore, cfg.GetExportsBucket(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			calculatorsModule,
			leadsModule,
			exportsModule,
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

func initLoginThrottle(cfg *config.Config, log *logger.Logger) (*limiter.LoginThrottle, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; login throttling disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to parse REDIS_URL for login throttle", "error", err)
		return nil, nil
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{}
		}
		opt.TLSConfig.InsecureSkipVerify = true
	}

	rdb := redis.NewClient(opt)
	return limiter.New(rdb, log), func() {
		_ = rdb.Close()
	}
}

func initFollowUpScheduler(cfg config.SchedulerConfig, log *logger.Logger) (leadservice.FollowUpScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; lead follow-up reminders disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize follow-up scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
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
