package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/albapepper/capvalue/internal/api/handler"
	"github.com/albapepper/capvalue/internal/api/respond"
	"github.com/albapepper/capvalue/internal/cache"
	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/pipeline"
	"github.com/albapepper/capvalue/internal/pipeline/pipelinetest"
	"github.com/albapepper/capvalue/internal/views"
)

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck(context.Context) error { return f.err }

func testConfig() *config.Config {
	return &config.Config{
		ContractYears:    5,
		SalaryCeiling:    13,
		CORSAllowOrigins: []string{"http://localhost:3000"},
		CacheEnabled:     true,
		CacheTTL:         time.Minute,
	}
}

func newServer(t *testing.T, cfg *config.Config, db handler.Pinger) *httptest.Server {
	t.Helper()
	panel, stats, err := pipeline.Run(context.Background(), pipelinetest.Artifacts(t), pipelinetest.Dataset(),
		pipeline.DefaultOptions(), pipelinetest.Logger())
	if err != nil {
		t.Fatalf("pipeline.Run: %v", err)
	}
	srv := httptest.NewServer(NewRouter(panel, stats, cache.New(cfg.CacheEnabled, cfg.CacheTTL), cfg, db))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestRoutes_Status(t *testing.T) {
	srv := newServer(t, testConfig(), nil)
	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/health", http.StatusOK},
		{"/health/db", http.StatusOK},
		{"/health/cache", http.StatusOK},
		{"/api/v1/meta", http.StatusOK},
		{"/api/v1/players", http.StatusOK},
		{"/api/v1/players?season=2026&team=bos&pos=w", http.StatusOK},
		{"/api/v1/players?pos=F", http.StatusBadRequest},
		{"/api/v1/players?team=XYZ", http.StatusBadRequest},
		{"/api/v1/players?season=next", http.StatusBadRequest},
		{"/api/v1/players/1", http.StatusOK},
		{"/api/v1/players/999", http.StatusNotFound},
		{"/api/v1/players/abc", http.StatusBadRequest},
		{"/api/v1/players/1/signing?years=2&salary=5", http.StatusOK},
		{"/api/v1/players/1/signing?years=9&salary=5", http.StatusBadRequest},
		{"/api/v1/players/1/signing", http.StatusBadRequest},
		{"/api/v1/draft", http.StatusOK},
		{"/api/v1/prospects?team=BOS", http.StatusOK},
		{"/api/v1/market?filter=upcoming-fa", http.StatusOK},
		{"/api/v1/market?filter=bargains", http.StatusBadRequest},
		{"/api/v1/teams/value", http.StatusOK},
		{"/api/v1/teams/prospects", http.StatusOK},
		{"/api/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		resp := get(t, srv, tt.path, nil)
		if resp.StatusCode != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
		if resp.Header.Get("X-Process-Time") == "" {
			t.Errorf("GET %s missing X-Process-Time", tt.path)
		}
	}
}

func TestPlayers_Body(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	var rows []model.RankedSeason
	decode(t, get(t, srv, "/api/v1/players?team=BOS", nil), &rows)
	if len(rows) != 2 {
		t.Fatalf("BOS rows = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Team != "BOS" || r.Season != pipelinetest.Season {
			t.Errorf("row = %+v", r)
		}
	}

	var signing views.Signing
	decode(t, get(t, srv, "/api/v1/players/1/signing?years=2&salary=5", nil), &signing)
	if signing.TotalCost != 10 || len(signing.Seasons) != 2 {
		t.Errorf("signing = %+v", signing)
	}

	var errResp respond.ErrorResponse
	decode(t, get(t, srv, "/api/v1/players/999", nil), &errResp)
	if errResp.Error.Code != "NOT_FOUND" {
		t.Errorf("error code = %q", errResp.Error.Code)
	}
}

func TestETagAndCache(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	first := get(t, srv, "/api/v1/draft", nil)
	etag := first.Header.Get("ETag")
	if etag == "" || first.Header.Get("X-Cache") != "MISS" || first.Header.Get("X-Run-ID") == "" {
		t.Fatalf("first response headers = %v", first.Header)
	}

	second := get(t, srv, "/api/v1/draft", nil)
	if second.Header.Get("X-Cache") != "HIT" || second.Header.Get("ETag") != etag {
		t.Errorf("second response X-Cache=%q ETag=%q", second.Header.Get("X-Cache"), second.Header.Get("ETag"))
	}

	third := get(t, srv, "/api/v1/draft", map[string]string{"If-None-Match": etag})
	if third.StatusCode != http.StatusNotModified {
		t.Errorf("conditional GET = %d, want 304", third.StatusCode)
	}
}

func TestHealthDB(t *testing.T) {
	srv := newServer(t, testConfig(), fakeDB{err: errors.New("down")})
	if resp := get(t, srv, "/health/db", nil); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("unhealthy db = %d, want 503", resp.StatusCode)
	}

	srv = newServer(t, testConfig(), fakeDB{})
	var body map[string]interface{}
	decode(t, get(t, srv, "/health/db", nil), &body)
	if body["database"] != "connected" {
		t.Errorf("body = %v", body)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Hour
	srv := newServer(t, cfg, nil)

	// burst of one, then limited
	if resp := get(t, srv, "/health", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("first request = %d", resp.StatusCode)
	}
	resp := get(t, srv, "/health", nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") != "3600" {
		t.Errorf("Retry-After = %q", resp.Header.Get("Retry-After"))
	}
}
