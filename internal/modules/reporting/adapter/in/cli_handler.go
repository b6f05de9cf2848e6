package in

import (
	"context"

	"factoryerp/internal/modules/reporting/dto"
	reportin "factoryerp/internal/modules/reporting/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ProductionChart(ctx context.Context) (dto.ChartOutput, error) {
	return h.usecase.ProductionChart(ctx)
}

func (h CLIHandler) WorkerHistory(ctx context.Context, workerID string) (dto.HistoryOutput, error) {
	return h.usecase.WorkerHistory(ctx, workerID)
}

func (h CLIHandler) Attendance(ctx context.Context) ([]dto.AttendanceOutput, error) {
	return h.usecase.Attendance(ctx)
}

func (h CLIHandler) Downtime(ctx context.Context) ([]dto.DowntimeOutput, error) {
	return h.usecase.Downtime(ctx)
}

func (h CLIHandler) MaterialFlow(ctx context.Context) ([]dto.MaterialFlowOutput, error) {
	return h.usecase.MaterialFlow(ctx)
}

func (h CLIHandler) Export(ctx context.Context, path, workerID string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Path: path, WorkerID: workerID})
}
