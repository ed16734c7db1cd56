// Package api provides the operational HTTP API of the monitoring daemon.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ohuvaht/ohuvaht/internal/api/handler"
	"github.com/ohuvaht/ohuvaht/internal/api/middleware"
	"github.com/ohuvaht/ohuvaht/internal/catalog"
	"github.com/ohuvaht/ohuvaht/internal/monitoring"
	"github.com/ohuvaht/ohuvaht/internal/provider/resilience"
	"github.com/ohuvaht/ohuvaht/internal/worker"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	ServiceName string
	Logger      zerolog.Logger
	Metrics     *middleware.Metrics
	Service     *monitoring.Service
	Runner      *worker.Runner
	Catalog     *catalog.Catalog
	Registry    *resilience.Registry
}

// NewRouter creates a chi router with all routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "ohuvaht"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry)
	monitoringHandler := handler.NewMonitoringHandler(cfg.Service, cfg.Runner, cfg.Catalog)

	r.Get("/health", opsHandler.HealthCheck)
	r.Get("/version", opsHandler.Version)

	r.Route("/v1", func(r chi.Router) {
		r.With(middleware.RateLimitByIP(middleware.StandardRateLimit)).Group(func(r chi.Router) {
			r.Get("/snapshot", monitoringHandler.GetSnapshot)
			r.Get("/status", monitoringHandler.GetStatuses)
			r.Get("/status/{category}", monitoringHandler.GetCategoryStatus)
			r.Get("/catalog/{category}/stations", monitoringHandler.ListStations)
			r.Get("/catalog/{category}/indicators", monitoringHandler.ListIndicators)
		})

		r.With(middleware.RateLimitByIP(middleware.RefreshRateLimit)).
			Post("/refresh", monitoringHandler.ForceRefresh)
	})

	return r
}
