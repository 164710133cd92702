package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seenimoa/secanalyzer/internal/config"
	"github.com/seenimoa/secanalyzer/pkg/models"
)

const createReportsTable = `
CREATE TABLE IF NOT EXISTS analysis_reports (
	ticker       TEXT        NOT NULL,
	period_end   TEXT        NOT NULL DEFAULT '',
	report_type  TEXT        NOT NULL,
	company_name TEXT,
	document     JSONB       NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (ticker, period_end)
)`

const upsertReport = `
INSERT INTO analysis_reports (ticker, period_end, report_type, company_name, document, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (ticker, period_end) DO UPDATE SET
	report_type  = EXCLUDED.report_type,
	company_name = EXCLUDED.company_name,
	document     = EXCLUDED.document,
	updated_at   = EXCLUDED.updated_at`

// execer is the part of *pgxpool.Pool the store uses.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres stores each result as a JSONB row.
type Postgres struct {
	pool *pgxpool.Pool
	db   execer
}

// NewPostgres opens a pool and makes sure the reports table exists.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig) (*Postgres, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if _, err := pool.Exec(ctx, createReportsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create analysis_reports: %w", err)
	}
	return &Postgres{pool: pool, db: pool}, nil
}

// Upsert inserts or replaces the row for the result's ticker and period.
func (p *Postgres) Upsert(ctx context.Context, r *models.AnalysisResult) error {
	if r == nil {
		return ErrNilResult
	}
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = p.db.Exec(ctx, upsertReport,
		r.Meta.Ticker,
		periodKey(r),
		r.Meta.ReportType,
		r.Meta.CompanyName,
		doc,
		r.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("postgres upsert %s: %w", r.Meta.Ticker, err)
	}
	return nil
}

func (p *Postgres) Name() string { return BackendPostgres }

func (p *Postgres) Close(context.Context) error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
