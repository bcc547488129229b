// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking. The pool only serves reference artifacts;
// the valuation panel itself is never written back.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/capvalue/internal/config"
)

// Prepared statement names.
const (
	StmtHealthCheck       = "health_check"
	StmtProgressionCurves = "reference_progression_curves"
	StmtPositionModels    = "reference_position_models"
	StmtSalaryModel       = "reference_salary_model"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, StmtHealthCheck).Scan(&n)
}

// Statements returns every statement registered on new connections.
func Statements() map[string]string {
	return map[string]string{
		StmtHealthCheck: "SELECT 1",

		StmtProgressionCurves: "SELECT pos, age, ovr, variable, value FROM " + config.ProgressionTable +
			" ORDER BY pos, age, ovr, variable",
		StmtPositionModels: "SELECT pos, coef, intercept FROM " + config.PositionModelsTable + " ORDER BY pos",
		StmtSalaryModel:    "SELECT definition FROM " + config.SalaryModelsTable + " WHERE name = $1",
	}
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements() {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
