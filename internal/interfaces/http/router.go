package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molgraph/internal/interfaces/http/handlers"
	"github.com/turtacn/molgraph/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	MoleculeHandler *handlers.MoleculeHandler
	SmilesHandler   *handlers.SmilesHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware
	AuthMiddleware *middleware.AuthMiddleware
	CORSMiddleware *middleware.CORSMiddleware
	RateLimiter    middleware.RateLimiter

	// Infrastructure
	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter constructs the complete HTTP route tree from the given configuration.
// It wires global middleware, public health endpoints, and authenticated API v1
// resource groups into a single http.Handler suitable for use with http.Server.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter, middleware.DefaultRateLimitConfig()))
	}

	// --- Public health endpoints (no auth) ---
	r.Group(func(pub chi.Router) {
		if cfg.HealthHandler != nil {
			pub.Get("/healthz", cfg.HealthHandler.Liveness)
			pub.Get("/readyz", cfg.HealthHandler.Readiness)
			pub.Get("/health", cfg.HealthHandler.Detailed)
		}
	})

	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	// --- API v1 (authenticated) ---
	r.Route("/api/v1", func(api chi.Router) {
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.Authenticate())
		}

		registerMoleculeRoutes(api, cfg.MoleculeHandler)
		registerSmilesRoutes(api, cfg.SmilesHandler)
	})

	return r
}

// registerMoleculeRoutes mounts molecule resource endpoints under /molecules.
func registerMoleculeRoutes(r chi.Router, h *handlers.MoleculeHandler) {
	if h == nil {
		return
	}
	r.Route("/molecules", func(mr chi.Router) {
		mr.Get("/", h.List)
		mr.Post("/", h.Create)

		mr.Route("/{moleculeID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Put("/", h.Update)
			item.Delete("/", h.Delete)
		})

		// Analytical endpoints
		mr.Post("/search/similar", h.SearchSimilar)
		mr.Post("/predict/properties", h.PredictProperties)
	})
}

// registerSmilesRoutes mounts stateless SMILES parsing/canonicalization
// endpoints under /smiles.
func registerSmilesRoutes(r chi.Router, h *handlers.SmilesHandler) {
	if h == nil {
		return
	}
	r.Route("/smiles", func(sr chi.Router) {
		sr.Post("/canonicalize", h.Canonicalize)
	})
}
