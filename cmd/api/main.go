// Command api serves a valuation panel over HTTP. The pipeline runs once at
// startup; every request reads the resulting immutable panel.
//
// Usage:
//
//	LEAGUE_EXPORT_PATH=league.json capvalue-api
//	API_PORT=8080 REFERENCE_SOURCE=postgres capvalue-api

// @title Cap Value API
// @version 1.0.0
// @description Read-only valuation panel for a league export: projected ratings, cap value, placeholder salaries, contract value and role rankings over a ten-season horizon.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Cap Value
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/capvalue/internal/api"
	"github.com/albapepper/capvalue/internal/api/handler"
	"github.com/albapepper/capvalue/internal/cache"
	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/pipeline"

	_ "github.com/albapepper/capvalue/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load reference artifacts and the league export
	in, err := pipeline.LoadInputs(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to load inputs", "error", err)
		os.Exit(1)
	}
	defer in.Close()

	// Build the panel
	panel, stats, err := pipeline.Run(ctx, in.Artifacts, in.Dataset, pipeline.OptionsFromConfig(cfg), logger)
	if err != nil {
		logger.Error("Valuation run failed", "error", err)
		os.Exit(1)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled, cfg.CacheTTL)
	go appCache.Run(ctx)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "ttl", cfg.CacheTTL)

	// A nil *db.Pool must not reach the handler as a non-nil interface.
	var pinger handler.Pinger
	if in.DB != nil {
		pinger = in.DB
	}

	// Create router
	router := api.NewRouter(panel, stats, appCache, cfg, pinger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Cap Value API",
			"addr", addr,
			"environment", cfg.Environment,
			"run_id", panel.RunID(),
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
