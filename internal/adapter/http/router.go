package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/E-Mello/controlefin.app/internal/adapter/http/handler"
	"github.com/E-Mello/controlefin.app/internal/adapter/http/middleware"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/metrics"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ContaHandler     *handler.ContaHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
	AllowedOrigins   []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Group(func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/contas", func(r chi.Router) {
			r.Post("/", cfg.ContaHandler.Create)
			r.Get("/", cfg.ContaHandler.List)
			r.Get("/{id}", cfg.ContaHandler.Get)
			r.Put("/{id}", cfg.ContaHandler.Update)
			r.Delete("/{id}", cfg.ContaHandler.Delete)
		})

		r.Get("/resumo", cfg.ReportHandler.Summary)
		r.Get("/relatorios/{kind}", cfg.ReportHandler.Report)
	})

	return r
}
