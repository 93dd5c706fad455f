package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS duis_analysis_runs (
	id           UUID PRIMARY KEY,
	unit         TEXT NOT NULL,
	graph_hash   TEXT NOT NULL,
	config_hash  TEXT NOT NULL,
	rule_ids     TEXT[] NOT NULL DEFAULT '{}',
	findings     INTEGER NOT NULL DEFAULT 0,
	max_severity TEXT,
	summary      JSONB NOT NULL DEFAULT '{}',
	report       JSONB,
	cached       BOOLEAN NOT NULL DEFAULT FALSE,
	duration_ms  BIGINT NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS duis_analysis_runs_unit_idx ON duis_analysis_runs (unit, created_at DESC);
`

// RunRepository handles PostgreSQL operations for analysis runs
type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, runsSchema); err != nil {
		return fmt.Errorf("failed to create duis_analysis_runs: %w", err)
	}
	return nil
}

func (r *RunRepository) Create(ctx context.Context, run *domain.AnalysisRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		summaryJSON = []byte("{}")
	}
	var reportJSON []byte
	if run.Report != nil {
		if reportJSON, err = json.Marshal(run.Report); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
	}

	var maxSeverity sql.NullString
	if run.MaxSeverity != "" {
		maxSeverity = sql.NullString{String: string(run.MaxSeverity), Valid: true}
	}

	query := `
		INSERT INTO duis_analysis_runs (
			id, unit, graph_hash, config_hash, rule_ids, findings,
			max_severity, summary, report, cached, duration_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	var createdAt time.Time
	err = r.db.QueryRowContext(ctx, query,
		run.ID,
		run.Unit,
		run.GraphHash,
		run.ConfigHash,
		pq.Array(ruleStrings(run.RuleIDs)),
		run.Findings,
		maxSeverity,
		summaryJSON,
		reportJSON,
		run.Cached,
		run.DurationMs,
	).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("analysis run %s already exists: %w", run.ID, err)
		}
		return fmt.Errorf("failed to create analysis run: %w", err)
	}
	run.CreatedAt = createdAt
	return nil
}

const selectRun = `
	SELECT id, unit, graph_hash, config_hash, rule_ids, findings,
	       max_severity, summary, report, cached, duration_ms, created_at
	FROM duis_analysis_runs
`

func (r *RunRepository) GetByID(ctx context.Context, id string) (*domain.AnalysisRun, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRunNotFound
	}
	row := r.db.QueryRowContext(ctx, selectRun+" WHERE id = $1", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}
	return run, nil
}

// ListByUnit returns the newest runs of unit first. Reports are omitted.
func (r *RunRepository) ListByUnit(ctx context.Context, unit string, limit int) ([]*domain.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, selectRun+" WHERE unit = $1 ORDER BY created_at DESC LIMIT $2", unit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var out []*domain.AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		run.Report = nil
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	return out, nil
}

func (r *RunRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*domain.AnalysisRun, error) {
	var (
		run         domain.AnalysisRun
		ruleIDs     []string
		maxSeverity sql.NullString
		summaryJSON []byte
		reportJSON  []byte
	)
	err := s.Scan(
		&run.ID,
		&run.Unit,
		&run.GraphHash,
		&run.ConfigHash,
		pq.Array(&ruleIDs),
		&run.Findings,
		&maxSeverity,
		&summaryJSON,
		&reportJSON,
		&run.Cached,
		&run.DurationMs,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, id := range ruleIDs {
		run.RuleIDs = append(run.RuleIDs, domain.RuleID(id))
	}
	if maxSeverity.Valid {
		run.MaxSeverity = domain.Severity(maxSeverity.String)
	}
	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &run.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}
	}
	if len(reportJSON) > 0 {
		var rep domain.Report
		if err := json.Unmarshal(reportJSON, &rep); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report: %w", err)
		}
		run.Report = &rep
	}
	return &run, nil
}

func ruleStrings(ids []domain.RuleID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
