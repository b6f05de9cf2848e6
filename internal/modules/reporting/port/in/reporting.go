package in

import (
	"context"

	"factoryerp/internal/modules/reporting/dto"
)

type Usecase interface {
	ProductionChart(ctx context.Context) (dto.ChartOutput, error)
	WorkerHistory(ctx context.Context, workerID string) (dto.HistoryOutput, error)
	Attendance(ctx context.Context) ([]dto.AttendanceOutput, error)
	Downtime(ctx context.Context) ([]dto.DowntimeOutput, error)
	MaterialFlow(ctx context.Context) ([]dto.MaterialFlowOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
