// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/valuate.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Reference sources
// --------------------------------------------------------------------------

const (
	SourceFiles    = "files"
	SourcePostgres = "postgres"
)

// --------------------------------------------------------------------------
// Table names for the reference schema
// --------------------------------------------------------------------------

const (
	ProgressionTable    = "progression_curves"
	PositionModelsTable = "position_value_models"
	SalaryModelsTable   = "salary_models"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Input
	ExportPath string

	// Reference artifacts
	ReferenceSource    string // files, postgres
	ProgressionPath    string
	PositionModelsPath string
	SalaryModelPath    string
	SalaryModelName    string // row name in salary_models when loading from Postgres

	// Database (reference artifacts only)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Valuation
	HorizonSeasons   int
	ContractYears    int
	PlaceholderScale float64
	SalaryFloor      float64
	SalaryCeiling    float64
	SalaryDivisor    float64
	LeagueTeams      int
	ProspectMaxAge   int

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool
	LogLevel    slog.Level

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ExportPath: envOr("LEAGUE_EXPORT_PATH", ""),

		ReferenceSource:    strings.ToLower(envOr("REFERENCE_SOURCE", SourceFiles)),
		ProgressionPath:    envOr("PROGRESSION_PATH", "data/constants/calculated_progs.csv"),
		PositionModelsPath: envOr("POSITION_MODELS_PATH", "models/ovr_to_cap.json"),
		SalaryModelPath:    envOr("SALARY_MODEL_PATH", "models/salary.json"),
		SalaryModelName:    envOr("SALARY_MODEL_NAME", "xgboost_salary"),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		HorizonSeasons:   envInt("HORIZON_SEASONS", 10),
		ContractYears:    envInt("CONTRACT_YEARS", 5),
		PlaceholderScale: envFloat("PLACEHOLDER_SCALE", 1.25),
		SalaryFloor:      envFloat("SALARY_FLOOR", 0),
		SalaryCeiling:    envFloat("SALARY_CEILING", 13),
		SalaryDivisor:    envFloat("SALARY_DIVISOR", 1000),
		LeagueTeams:      envInt("LEAGUE_TEAMS", 32),
		ProspectMaxAge:   envInt("PROSPECT_MAX_AGE", 21),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", 8000),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),
		LogLevel:    envLevel("LOG_LEVEL", slog.LevelInfo),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8501",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.ReferenceSource {
	case SourceFiles:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when REFERENCE_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("REFERENCE_SOURCE must be %q or %q, got %q", SourceFiles, SourcePostgres, c.ReferenceSource)
	}
	if c.HorizonSeasons < 1 {
		return fmt.Errorf("HORIZON_SEASONS must be positive, got %d", c.HorizonSeasons)
	}
	if c.ContractYears < 1 {
		return fmt.Errorf("CONTRACT_YEARS must be positive, got %d", c.ContractYears)
	}
	if c.SalaryCeiling < c.SalaryFloor {
		return fmt.Errorf("SALARY_CEILING (%g) is below SALARY_FLOOR (%g)", c.SalaryCeiling, c.SalaryFloor)
	}
	if c.SalaryDivisor <= 0 {
		return fmt.Errorf("SALARY_DIVISOR must be positive, got %g", c.SalaryDivisor)
	}
	if c.LeagueTeams < 1 {
		return fmt.Errorf("LEAGUE_TEAMS must be positive, got %d", c.LeagueTeams)
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			return level
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
