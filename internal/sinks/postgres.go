package sinks

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/config"
	"github.com/wonny/marketdesk/pkg/logger"
)

// Repository persists run history to PostgreSQL. Opt-in: without
// DATABASE_URL the pipeline runs without it.
// ⭐ SSOT: 스크리닝 이력 저장은 여기서만
type Repository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewRepository connects the run-history repository and ensures its
// schema. Returns (nil, nil) when no database is configured.
func NewRepository(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Repository, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	r := &Repository{pool: pool, logger: log}
	if err := r.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

// Close releases the connection pool
func (r *Repository) Close() {
	if r != nil && r.pool != nil {
		r.pool.Close()
	}
}

// Name identifies the sink in logs
func (r *Repository) Name() string { return "postgres" }

func (r *Repository) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS screening_rows (
			screen_date     DATE         NOT NULL,
			ticker          TEXT         NOT NULL,
			sector          TEXT,
			value_score     INT          NOT NULL,
			growth_score    INT          NOT NULL,
			technical_score INT          NOT NULL,
			upside_score    INT          NOT NULL,
			beat_probability TEXT        NOT NULL,
			confidence      TEXT         NOT NULL,
			current_price   DOUBLE PRECISION,
			upside_to_target_pct DOUBLE PRECISION,
			headlines       TEXT,
			created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			PRIMARY KEY (screen_date, ticker)
		)
	`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure screening_rows schema: %w", err)
	}
	return nil
}

// Emit saves the run's rows: delete-then-insert per date inside one
// transaction so re-runs of the same day stay idempotent
func (r *Repository) Emit(ctx context.Context, rows []contracts.Row, date time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	day := date.Format("2006-01-02")

	if _, err := tx.Exec(ctx, "DELETE FROM screening_rows WHERE screen_date = $1", day); err != nil {
		return fmt.Errorf("delete old rows: %w", err)
	}

	query := `
		INSERT INTO screening_rows (
			screen_date, ticker, sector,
			value_score, growth_score, technical_score, upside_score,
			beat_probability, confidence,
			current_price, upside_to_target_pct, headlines
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, row := range rows {
		s := row.Score
		_, err := tx.Exec(ctx, query,
			day, s.Ticker, s.Sector,
			s.ValueScore, s.GrowthScore, s.TechnicalScore, s.UpsideScore,
			s.EarningsBeatProbability, s.ConfidenceLevel,
			row.CurrentPrice, row.UpsideToTargetPct, row.Headlines,
		)
		if err != nil {
			return fmt.Errorf("insert row for %s: %w", s.Ticker, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit run history: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"date": day,
		"rows": len(rows),
	}).Info("Run history saved")

	return nil
}
