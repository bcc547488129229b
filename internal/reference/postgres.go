package reference

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/db"
	"github.com/albapepper/capvalue/internal/model"
)

// LoadPostgres reads all artifacts from the reference tables. Queries run
// sequentially on the pool; each failure is reported as a *LoadError.
func LoadPostgres(ctx context.Context, pool *pgxpool.Pool, salaryModelName string, logger *slog.Logger) (*Artifacts, error) {
	prog, err := queryProgression(ctx, pool)
	if err != nil {
		return nil, &LoadError{Artifact: ArtifactProgression, Source: config.ProgressionTable, Err: err}
	}

	models, err := queryPositionModels(ctx, pool)
	if err != nil {
		return nil, &LoadError{Artifact: ArtifactPositionModels, Source: config.PositionModelsTable, Err: err}
	}

	var definition []byte
	if err := pool.QueryRow(ctx, db.StmtSalaryModel, salaryModelName).Scan(&definition); err != nil {
		return nil, &LoadError{
			Artifact: ArtifactSalaryModel,
			Source:   fmt.Sprintf("%s[%s]", config.SalaryModelsTable, salaryModelName),
			Err:      err,
		}
	}
	sm, err := ParseSalaryModel(definition)
	if err != nil {
		return nil, &LoadError{Artifact: ArtifactSalaryModel, Source: config.SalaryModelsTable, Err: err}
	}

	ratings, values := prog.Len()
	logger.Info("Reference artifacts loaded",
		"source", "postgres",
		"rating_curves", ratings,
		"value_curves", values,
		"salary_model", salaryModelName)
	return &Artifacts{Progression: prog, PositionModels: models, SalaryModel: sm}, nil
}

// rowSource is the part of pgx.Rows the scanners read.
type rowSource interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func queryProgression(ctx context.Context, pool *pgxpool.Pool) (*Progression, error) {
	rows, err := pool.Query(ctx, db.StmtProgressionCurves)
	if err != nil {
		return nil, fmt.Errorf("query progression curves: %w", err)
	}
	defer rows.Close()
	return scanProgression(rows)
}

// scanProgression reads (pos, age, ovr, variable, value) rows.
func scanProgression(rows rowSource) (*Progression, error) {
	prog := NewProgression()
	for rows.Next() {
		var (
			posCode  string
			age, ovr int
			variable string
			value    float64
		)
		if err := rows.Scan(&posCode, &age, &ovr, &variable, &value); err != nil {
			return nil, fmt.Errorf("scan progression curve: %w", err)
		}
		pos, err := model.ParsePosition(posCode)
		if err != nil {
			return nil, err
		}
		if err := prog.Add(variable, pos, age, ovr, value); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

func queryPositionModels(ctx context.Context, pool *pgxpool.Pool) (PositionModels, error) {
	rows, err := pool.Query(ctx, db.StmtPositionModels)
	if err != nil {
		return PositionModels{}, fmt.Errorf("query position models: %w", err)
	}
	defer rows.Close()
	return scanPositionModels(rows)
}

// scanPositionModels reads (pos, coef, intercept) rows; every position must
// appear exactly once.
func scanPositionModels(rows rowSource) (PositionModels, error) {
	var models PositionModels
	seen := make(map[model.Position]bool)
	for rows.Next() {
		var (
			posCode string
			lm      LinearModel
		)
		if err := rows.Scan(&posCode, &lm.Coef, &lm.Intercept); err != nil {
			return PositionModels{}, fmt.Errorf("scan position model: %w", err)
		}
		pos, err := model.ParsePosition(posCode)
		if err != nil {
			return PositionModels{}, err
		}
		if seen[pos] {
			return PositionModels{}, fmt.Errorf("duplicate model for %s", pos)
		}
		if err := models.Set(pos, lm); err != nil {
			return PositionModels{}, err
		}
		seen[pos] = true
	}
	if err := rows.Err(); err != nil {
		return PositionModels{}, err
	}
	for _, pos := range model.Positions {
		if !seen[pos] {
			return PositionModels{}, fmt.Errorf("missing model for %s", pos)
		}
	}
	return models, nil
}
