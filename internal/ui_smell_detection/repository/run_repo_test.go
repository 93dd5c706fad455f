package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/repository"
)

const runID = "6f1c2a9e-3b1d-4c43-9a55-2f6c1d8b7e10"

var runColumns = []string{
	"id", "unit", "graph_hash", "config_hash", "rule_ids", "findings",
	"max_severity", "summary", "report", "cached", "duration_ms", "created_at",
}

func setupRunRepo(t *testing.T) (*repository.RunRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewRunRepository(db), mock
}

func TestRunRepository_Create(t *testing.T) {
	repo, mock := setupRunRepo(t)
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("assigns an id and stores the run", func(t *testing.T) {
		run := &domain.AnalysisRun{
			Unit:        "src/App.jsx",
			GraphHash:   "abc",
			ConfigHash:  "cfg",
			RuleIDs:     []domain.RuleID{domain.RuleLargeComponent, domain.RuleNestedView},
			Findings:    2,
			MaxSeverity: domain.SeverityWarning,
			Summary:     map[domain.RuleID]int{domain.RuleLargeComponent: 2},
			DurationMs:  12,
		}

		mock.ExpectQuery(`INSERT INTO duis_analysis_runs`).
			WithArgs(
				sqlmock.AnyArg(), "src/App.jsx", "abc", "cfg", sqlmock.AnyArg(), 2,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), false, int64(12),
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

		require.NoError(t, repo.Create(context.Background(), run))
		assert.NotEmpty(t, run.ID)
		assert.Equal(t, created, run.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports duplicate ids", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO duis_analysis_runs`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key"})

		err := repo.Create(context.Background(), &domain.AnalysisRun{ID: runID, Unit: "u"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunRepository_GetByID(t *testing.T) {
	repo, mock := setupRunRepo(t)
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("decodes arrays and json", func(t *testing.T) {
		rows := sqlmock.NewRows(runColumns).AddRow(
			runID, "src/App.jsx", "abc", "cfg", "{large_component,nested_view}", 3,
			"warning", []byte(`{"large_component":3}`), []byte(`{"unit":"src/App.jsx","findings":[],"summary":{}}`),
			true, int64(5), created,
		)
		mock.ExpectQuery(`SELECT (.+) FROM duis_analysis_runs WHERE id = \$1`).
			WithArgs(runID).
			WillReturnRows(rows)

		run, err := repo.GetByID(context.Background(), runID)
		require.NoError(t, err)
		assert.Equal(t, []domain.RuleID{domain.RuleLargeComponent, domain.RuleNestedView}, run.RuleIDs)
		assert.Equal(t, domain.SeverityWarning, run.MaxSeverity)
		assert.Equal(t, 3, run.Summary[domain.RuleLargeComponent])
		require.NotNil(t, run.Report)
		assert.Equal(t, "src/App.jsx", run.Report.Unit)
		assert.True(t, run.Cached)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing run", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM duis_analysis_runs WHERE id = \$1`).
			WithArgs(runID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id never reaches the database", func(t *testing.T) {
		_, err := repo.GetByID(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunRepository_ListByUnit(t *testing.T) {
	repo, mock := setupRunRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(runColumns).
		AddRow(runID, "src/App.jsx", "abc", "cfg", "{}", 0, nil, []byte(`{}`), []byte(`{"unit":"src/App.jsx"}`), false, int64(1), now).
		AddRow("0b5e7f7e-9f7c-4b0e-8d7e-1a2b3c4d5e6f", "src/App.jsx", "abd", "cfg", "{inefficient_list}", 1, "warning", []byte(`{"inefficient_list":1}`), nil, false, int64(2), now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT (.+) FROM duis_analysis_runs WHERE unit = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("src/App.jsx", 50).
		WillReturnRows(rows)

	runs, err := repo.ListByUnit(context.Background(), "src/App.jsx", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Nil(t, runs[0].Report)
	assert.Empty(t, runs[0].MaxSeverity)
	assert.Equal(t, []domain.RuleID{domain.RuleInefficientList}, runs[1].RuleIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_EnsureSchema(t *testing.T) {
	repo, mock := setupRunRepo(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS duis_analysis_runs`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
