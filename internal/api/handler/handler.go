// Package handler provides HTTP handlers for all API endpoints.
// Handlers read the immutable panel directly; encoded responses are cached
// per run and served with ETags.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/albapepper/capvalue/internal/api/respond"
	"github.com/albapepper/capvalue/internal/cache"
	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/pipeline"
	"github.com/albapepper/capvalue/internal/views"
)

// Pinger checks a backing database. Nil when reference data came from files.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	panel *pipeline.Panel
	stats pipeline.RunStats
	cache *cache.Cache
	cfg   *config.Config
	db    Pinger
}

// New creates a Handler with shared dependencies. db may be nil.
func New(panel *pipeline.Panel, stats pipeline.RunStats, c *cache.Cache, cfg *config.Config, db Pinger) *Handler {
	return &Handler{panel: panel, stats: stats, cache: c, cfg: cfg, db: db}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the loaded panel run.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Cap Value API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"run_id":  h.panel.RunID(),
		"season":  h.panel.Season(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"rows":      h.panel.Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity when reference data is
// loaded from Postgres.
// @Summary Database health check
// @Description Verifies Postgres connectivity. Reports "not_configured" when reference data was loaded from files.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "not_configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// serve answers from the cache when it can, otherwise builds, encodes and
// caches the response. Keys include the query string.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, build func() (interface{}, error)) {
	key := cache.Key(h.panel.RunID(), r.URL.RequestURI())
	body := respond.Body{RunID: h.panel.RunID(), TTL: h.cache.TTL()}

	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		body.Data, body.ETag, body.CacheHit = data, etag, true
		respond.WriteJSON(w, body)
		return
	}

	v, err := build()
	if err != nil {
		writeViewError(w, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}
	body.Data = data
	body.ETag = h.cache.Set(key, data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), body.ETag) {
		respond.WriteNotModified(w, body.ETag)
		return
	}
	respond.WriteJSON(w, body)
}

// badRequest marks query errors so they map to 400.
type badRequest struct {
	code string
	err  error
}

func (e *badRequest) Error() string { return e.err.Error() }
func (e *badRequest) Unwrap() error { return e.err }

func writeViewError(w http.ResponseWriter, err error) {
	var bad *badRequest
	switch {
	case errors.As(err, &bad):
		respond.WriteError(w, http.StatusBadRequest, bad.code, bad.Error())
	case errors.Is(err, views.ErrPlayerNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, views.ErrInvalidSigning):
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SIGNING", err.Error())
	default:
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "INTERNAL", "Request failed", err.Error())
	}
}
