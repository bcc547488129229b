package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/db"
	"github.com/albapepper/capvalue/internal/league"
	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/reference"
)

// Inputs is everything one run reads from outside the process.
type Inputs struct {
	Artifacts *reference.Artifacts
	Dataset   *model.Dataset
	DB        *db.Pool // nil unless reference data came from Postgres
}

// Close releases the database pool, if any.
func (in *Inputs) Close() {
	if in.DB != nil {
		in.DB.Close()
	}
}

// LoadInputs reads the reference artifacts from the configured source and
// decodes the league export at cfg.ExportPath.
func LoadInputs(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Inputs, error) {
	if cfg.ExportPath == "" {
		return nil, fmt.Errorf("LEAGUE_EXPORT_PATH is required")
	}
	in := &Inputs{}

	switch cfg.ReferenceSource {
	case config.SourcePostgres:
		logger.Info("Connecting to database...")
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		in.DB = pool
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		in.Artifacts, err = reference.LoadPostgres(ctx, pool.Pool, cfg.SalaryModelName, logger)
		if err != nil {
			in.Close()
			return nil, err
		}
	default:
		art, err := reference.LoadFiles(ctx, reference.FileSources{
			Progression:    cfg.ProgressionPath,
			PositionModels: cfg.PositionModelsPath,
			SalaryModel:    cfg.SalaryModelPath,
		}, logger)
		if err != nil {
			return nil, err
		}
		in.Artifacts = art
	}

	export, err := league.ReadFile(cfg.ExportPath)
	if err != nil {
		in.Close()
		return nil, err
	}
	in.Dataset, err = export.Dataset(cfg.SalaryDivisor)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("convert export: %w", err)
	}
	logger.Info("League export loaded",
		"path", cfg.ExportPath,
		"season", in.Dataset.Season,
		"players", len(export.Players),
		"teams", len(in.Dataset.Teams))
	return in, nil
}
