package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/expenses-tracker/internal/adapter/http/handler"
	"github.com/iho/expenses-tracker/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TrackerHandler *handler.TrackerHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger

	// Optional
	Registry    *prometheus.Registry
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))

	if cfg.Registry != nil {
		r.Use(middleware.NewMetrics(cfg.Registry).Wrap)
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", cfg.TrackerHandler.ListEntries)
			r.Post("/", cfg.TrackerHandler.CreateEntry)
			r.Delete("/{id}", cfg.TrackerHandler.DeleteEntry)
		})

		r.Get("/summary", cfg.TrackerHandler.Summary)

		r.Get("/filter", cfg.TrackerHandler.GetFilter)
		r.Put("/filter", cfg.TrackerHandler.SetFilter)

		r.Post("/state/save", cfg.TrackerHandler.SaveState)
	})

	return r
}
