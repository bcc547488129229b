// Package pipeline runs the valuation stages in order (projection,
// placeholder salaries, contract value, ranking) over one league dataset and
// returns an immutable Panel.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/contract"
	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/placeholder"
	"github.com/albapepper/capvalue/internal/projection"
	"github.com/albapepper/capvalue/internal/ranking"
	"github.com/albapepper/capvalue/internal/reference"
)

// Options holds the calibration constants of one run.
type Options struct {
	Horizon     int
	Calibration placeholder.Calibration
	Ranking     ranking.Options
}

// DefaultOptions returns a ten-season horizon with the default placeholder
// calibration and a 32-team league.
func DefaultOptions() Options {
	return Options{
		Horizon:     projection.DefaultHorizon,
		Calibration: placeholder.DefaultCalibration(),
		Ranking:     ranking.DefaultOptions(),
	}
}

// OptionsFromConfig maps the valuation settings of cfg onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.Horizon = cfg.HorizonSeasons
	opts.Calibration = placeholder.Calibration{
		Scale:   cfg.PlaceholderScale,
		Floor:   cfg.SalaryFloor,
		Ceiling: cfg.SalaryCeiling,
		Years:   cfg.ContractYears,
	}
	opts.Ranking.LeagueTeams = cfg.LeagueTeams
	opts.Ranking.ProspectMaxAge = cfg.ProspectMaxAge
	return opts
}

// Run builds the panel for ds. Any error aborts the run and no partial panel
// is returned. Identical inputs give identical panels apart from the run id.
func Run(ctx context.Context, art *reference.Artifacts, ds *model.Dataset, opts Options, logger *slog.Logger) (*Panel, RunStats, error) {
	start := time.Now()
	stats := RunStats{RunID: uuid.NewString()}

	if err := art.Validate(); err != nil {
		return nil, stats, err
	}
	if ds == nil {
		return nil, stats, errors.New("pipeline: dataset is nil")
	}
	stats.Season = ds.Season
	logger = logger.With("run_id", stats.RunID)
	logger.Info("Valuation run started", "season", ds.Season, "ratings", len(ds.Ratings))

	projector := projection.New(art, opts.Horizon)
	projected, err := projector.Project(ds.Season, ds)
	if err != nil {
		return nil, stats, fmt.Errorf("project ratings: %w", err)
	}
	stats.Players = projected.Players
	stats.SkippedPlayers = projected.SkippedPlayers
	stats.MissingRatings = projected.MissingRatings
	stats.MissingCapValues = projected.MissingCapValues
	stats.RealizedSalaries = projected.RealizedSalaries
	logger.Debug("Projection finished", "rows", len(projected.Rows), "skipped", projected.SkippedPlayers)
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	filled, err := placeholder.New(art.SalaryModel, opts.Calibration).Estimate(projected.Rows)
	if err != nil {
		return nil, stats, fmt.Errorf("estimate placeholder salaries: %w", err)
	}
	stats.Placeholders = filled.Placed
	stats.UnpredictedWindow = filled.Unpredicted
	logger.Debug("Placeholder salaries estimated", "placed", filled.Placed, "unpredicted", filled.Unpredicted)
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	valued := contract.Value(filled.Rows)

	ranked, err := ranking.Rank(valued, ds.Teams, ds.Birthplaces, opts.Ranking)
	if err != nil {
		return nil, stats, fmt.Errorf("rank players: %w", err)
	}
	for _, r := range ranked {
		if r.Season == ds.Season && r.IsProspect {
			stats.Prospects++
		}
	}

	panel := newPanel(stats.RunID, ds, projector.Horizon, ranked)
	stats.Rows = panel.Len()
	stats.Duration = time.Since(start)
	logger.Info("Valuation run finished",
		"duration", stats.Duration.Round(time.Millisecond),
		"summary", stats.Summary())
	return panel, stats, nil
}
