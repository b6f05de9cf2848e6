package out

import (
	"context"

	"factoryerp/internal/modules/reporting/domain"
)

// Source reads the backend's report endpoints.
type Source interface {
	ProductionChart(ctx context.Context) (domain.ChartDataset, error)
	WorkerHistory(ctx context.Context, workerID string) ([]domain.HistoryRecord, error)
	Attendance(ctx context.Context) ([]domain.AttendanceSummary, error)
	Downtime(ctx context.Context) ([]domain.DowntimeRecord, error)
	MaterialFlow(ctx context.Context) ([]domain.MaterialFlow, error)
}

type Exporter interface {
	Export(ctx context.Context, path string, book domain.Workbook) error
}
