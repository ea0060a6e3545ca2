// Package main - entry point for the Polaris Mentoring Hub API.
//
// The service matches mentees with mentors: users describe what they
// want from mentoring in a seven-step survey, and the engine scores
// every mentor against that survey to produce ranked recommendations.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: scoring, ranking and survey rules without external dependencies
// - Application: use case orchestration (Commands/Queries)
// - Infrastructure: PostgreSQL repositories, Redis cache, event bus
// - Interface: HTTP endpoints
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/polaris-hub/polaris-mentoring-hub/config"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/application/command"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/application/query"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/infrastructure/messaging"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/infrastructure/persistence/postgres"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/infrastructure/persistence/redis"
	httpserver "github.com/polaris-hub/polaris-mentoring-hub/internal/interface/http"
	"github.com/polaris-hub/polaris-mentoring-hub/pkg/logger"
	"github.com/polaris-hub/polaris-mentoring-hub/pkg/retry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting Polaris Mentoring Hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE CONNECTION (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database")

	dbConn, err := retry.DoWithData(ctx, func(ctx context.Context) (*postgres.Connection, error) {
		return postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	}, startupRetryOptions(log, "postgres")...)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRATIONS
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		status, err := migrator.Status(ctx)
		if err != nil {
			log.Warn("failed to get migration status", logger.Err(err))
		} else {
			applied := 0
			for _, m := range status {
				if m.IsApplied {
					applied++
				}
			}
			log.Info("migrations completed",
				logger.Int("applied", applied), logger.Int("total", len(status)))
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var recsCache mentoring.RecommendationsCache
	var redisCache *redis.Cache

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis")

		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		redisCache, err = retry.DoWithData(ctx, func(context.Context) (*redis.Cache, error) {
			return redis.NewCache(redisCfg)
		}, startupRetryOptions(log, "redis")...)
		if err != nil {
			// Recommendations are recomputed per request without Redis.
			log.Warn("failed to connect to Redis, caching disabled", logger.Err(err))
		} else {
			defer redisCache.Close()
			log.Info("Redis connection established")

			if cfg.Features.IsEnabled(config.FeatureRecsCache, nil) {
				recsCache = redis.NewRecommendationsCache(redisCache)
			} else {
				log.Info("recommendations caching disabled by feature flag",
					logger.String("feature", config.FeatureRecsCache))
			}
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories")
	surveyRepo := postgres.NewSurveyRepository(dbConn)
	mentorRepo := postgres.NewMentorRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing event bus")
	busConfig := messaging.DefaultInMemoryEventBusConfig()
	busConfig.Logger = slog.Default()
	busConfig.AsyncMode = true
	eventBus := messaging.NewInMemoryEventBus(busConfig)
	defer func() {
		log.Info("closing event bus")
		_ = eventBus.Close()
	}()

	if recsCache != nil {
		invalidator := messaging.NewCacheInvalidator(recsCache, slog.Default())
		if err := invalidator.Register(eventBus); err != nil {
			return fmt.Errorf("failed to register cache invalidator: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer")

	submitSurveyCmd := command.NewSubmitSurveyHandler(surveyRepo, eventBus, log)
	mySurveyQuery := query.NewGetMySurveyHandler(surveyRepo)

	// The new-mentor boost ships behind a flag; with it off, scores
	// reflect survey fit alone.
	rankerCfg := cfg.Matching.RankerConfig()
	if !cfg.Features.IsEnabled(config.FeatureRecsNewMentorBadge, nil) {
		rankerCfg.BoostMax = 0
		log.Info("new-mentor boost disabled by feature flag",
			logger.String("feature", config.FeatureRecsNewMentorBadge))
	}

	recsQuery, err := query.NewGetRecommendationsHandler(
		surveyRepo, mentorRepo, recsCache, rankerCfg, log)
	if err != nil {
		return fmt.Errorf("failed to build recommendations handler: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing HTTP server")

	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.EnableMetrics = cfg.HTTP.EnableMetrics
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	httpConfig.APIKeyHeader = cfg.HTTP.APIKeyHeader
	httpConfig.AdminAPIKeyHashes = cfg.HTTP.AdminAPIKeyHashes

	httpDeps := httpserver.Dependencies{
		SubmitSurveyHandler:       submitSurveyCmd,
		GetMySurveyHandler:        mySurveyQuery,
		GetRecommendationsHandler: recsQuery,
		Logger:                    log,
		Database:                  dbConn,
	}
	if redisCache != nil {
		httpDeps.Cache = redisCache
	}

	httpServer := httpserver.NewServer(httpConfig, httpDeps)

	// ─────────────────────────────────────────────────────────────────────────
	// 10. START AND GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", logger.String("address", httpServer.Address()))
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	log.Info("Polaris Mentoring Hub is running",
		logger.String("http_address", httpServer.Address()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("service error", logger.Err(err))
		return err
	}

	log.Info("starting graceful shutdown",
		logger.Duration("timeout", cfg.App.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	// Event bus and connections close via defer.
	log.Info("shutdown completed successfully")
	return nil
}

// setupLogger configures structured logging for the application and sets
// the default slog logger so infrastructure packages share the format.
func setupLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
	}

	var handler slog.Handler
	slogOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.App.Debug {
		slogOpts.Level = slog.LevelDebug
	}
	if cfg.Observability.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, slogOpts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, slogOpts)
	}
	slog.SetDefault(slog.New(handler))

	return logger.New(opts)
}

// startupRetryOptions configures patient connection retries with logging.
func startupRetryOptions(log *logger.Logger, target string) []retry.Option {
	return []retry.Option{
		retry.WithMaxAttempts(10),
		retry.WithInitialDelay(500 * time.Millisecond),
		retry.WithMaxDelay(10 * time.Second),
		retry.WithMultiplier(2.0),
		retry.WithJitter(0.2),
		retry.WithRetryIf(func(error) bool { return true }),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.Warn("connection attempt failed, retrying",
				logger.String("target", target),
				logger.Int("attempt", attempt),
				logger.Duration("next_delay", delay),
				logger.Err(err),
			)
		}),
	}
}
