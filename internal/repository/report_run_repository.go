// backend-go/internal/repository/report_run_repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// ReportRunRepository keeps the export history.
type ReportRunRepository interface {
	SaveRun(ctx context.Context, run *domain.ReportRun) error
	ListRuns(ctx context.Context, limit int) ([]domain.ReportRun, error)
}

// NoopReportRunRepository is used when no database is configured.
type NoopReportRunRepository struct{}

func (NoopReportRunRepository) SaveRun(ctx context.Context, run *domain.ReportRun) error {
	return nil
}

func (NoopReportRunRepository) ListRuns(ctx context.Context, limit int) ([]domain.ReportRun, error) {
	return []domain.ReportRun{}, nil
}

var _ ReportRunRepository = NoopReportRunRepository{}
