package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/E-Mello/controlefin.app/internal/adapter/export/pdf"
	"github.com/E-Mello/controlefin.app/internal/adapter/export/xlsx"
	httpAdapter "github.com/E-Mello/controlefin.app/internal/adapter/http"
	"github.com/E-Mello/controlefin.app/internal/adapter/http/handler"
	"github.com/E-Mello/controlefin.app/internal/adapter/http/middleware"
	postgresRepo "github.com/E-Mello/controlefin.app/internal/adapter/repository/postgres"
	redisRepo "github.com/E-Mello/controlefin.app/internal/adapter/repository/redis"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/config"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/logger"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/metrics"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/postgres"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/redis"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to PostgreSQL
	connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	cancel()
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Redis is optional: without it there is no snapshot cache and no
	// idempotency.
	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
		redisPinger      handler.Pinger
	)
	if cfg.CacheEnabled() {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		redisPinger = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	} else {
		log.Warn().Msg("REDIS_URL not set; snapshot cache and idempotency disabled")
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Initialize repositories
	retrier := postgresRepo.NewRetrier(postgresRepo.WithLogger(appLogger))
	txManager := postgresRepo.NewTxManager(pool)
	contaRepo := postgresRepo.NewContaRepository(pool, retrier)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	contaUC := usecase.NewContaUseCase(contaRepo, txManager, idGen, cache, appMetrics)
	reportUC := usecase.NewReportUseCase(contaRepo, cache, cfg.SnapshotCacheTTL, appMetrics, xlsx.New(), pdf.New())

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, appMetrics)
		go sweepLimiters(ctx, rateLimiter)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ContaHandler:     handler.NewContaHandler(contaUC, reportUC),
		ReportHandler:    handler.NewReportHandler(reportUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisPinger),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Metrics:          appMetrics,
		Logger:           appLogger,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
	})

	return serve(ctx, newServer(cfg, router), cfg.HTTPShutdownTimeout)
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

func sweepLimiters(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.CleanupLimiters(time.Hour); n > 0 {
				log.Debug().Int("removed", n).Msg("dropped idle rate limiters")
			}
		}
	}
}
