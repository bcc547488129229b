// Package api wires the HTTP router serving a finished valuation panel.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/capvalue/internal/api/handler"
	"github.com/albapepper/capvalue/internal/cache"
	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/pipeline"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. db may be nil when reference data was loaded from files.
func NewRouter(panel *pipeline.Panel, stats pipeline.RunStats, appCache *cache.Cache, cfg *config.Config, db handler.Pinger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip
	if cfg.Debug {
		r.Use(middleware.Logger)
	}

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "X-Run-ID", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(panel, stats, appCache, cfg, db)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/meta", h.GetMeta)

		// Players
		r.Get("/players", h.ListPlayers)
		r.Get("/players/{pid}", h.GetPlayer)
		r.Get("/players/{pid}/signing", h.GetSigning)

		// Boards
		r.Get("/draft", h.GetDraftBoard)
		r.Get("/prospects", h.GetProspects)
		r.Get("/market", h.GetMarket)

		// Teams
		r.Get("/teams/value", h.GetTeamValues)
		r.Get("/teams/prospects", h.GetTeamProspects)
	})

	return r
}
