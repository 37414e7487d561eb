package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
)

const (
	// HistoryLimit is how many runs are kept; older rows are pruned on insert.
	HistoryLimit = 500

	defaultHistoryPage = 50
)

type reportRunRepository struct {
	db *DB
}

func NewReportRunRepository(db *DB) repository.ReportRunRepository {
	return &reportRunRepository{db: db}
}

func (r *reportRunRepository) SaveRun(ctx context.Context, run *domain.ReportRun) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO report_runs (
				id, kind, filters, row_count, revenue,
				file_name, object_key, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := tx.ExecContext(ctx, query,
			run.ID,
			run.Kind,
			run.Filters,
			run.RowCount,
			run.Revenue,
			run.FileName,
			run.ObjectKey,
			run.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert report run: %w", err)
		}

		prune := `
			DELETE FROM report_runs
			WHERE id NOT IN (
				SELECT id FROM report_runs ORDER BY created_at DESC LIMIT $1
			)
		`
		if _, err := tx.ExecContext(ctx, prune, HistoryLimit); err != nil {
			return fmt.Errorf("failed to prune report runs: %w", err)
		}
		return nil
	})
}

func (r *reportRunRepository) ListRuns(ctx context.Context, limit int) ([]domain.ReportRun, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryPage
	case limit > HistoryLimit:
		limit = HistoryLimit
	}
	query := `
		SELECT id, kind, filters, row_count, revenue, file_name, object_key, created_at
		FROM report_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	runs := []domain.ReportRun{}
	if err := sqlx.SelectContext(ctx, r.db, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list report runs: %w", err)
	}
	return runs, nil
}
