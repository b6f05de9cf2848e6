package usecase

import (
	"context"
	"fmt"
	"strings"

	"factoryerp/internal/modules/reporting/domain"
	"factoryerp/internal/modules/reporting/dto"
	reportin "factoryerp/internal/modules/reporting/port/in"
	reportout "factoryerp/internal/modules/reporting/port/out"
	"factoryerp/internal/modules/reporting/service"
	"factoryerp/internal/platform/clock"
	apperrors "factoryerp/internal/platform/errors"
)

type Interactor struct {
	svc      *service.ReportService
	exporter reportout.Exporter
	clock    clock.Clock
}

func NewInteractor(svc *service.ReportService, exporter reportout.Exporter, clk clock.Clock) reportin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{svc: svc, exporter: exporter, clock: clk}
}

func (i *Interactor) ProductionChart(ctx context.Context) (dto.ChartOutput, error) {
	d, err := i.svc.Chart(ctx)
	if err != nil {
		return dto.ChartOutput{}, err
	}
	return toChartOutput(d), nil
}

func (i *Interactor) WorkerHistory(ctx context.Context, workerID string) (dto.HistoryOutput, error) {
	rows, err := i.svc.History(ctx, workerID)
	if err != nil {
		return dto.HistoryOutput{}, err
	}
	out := dto.HistoryOutput{WorkerID: strings.TrimSpace(workerID), Rows: make([]dto.HistoryRowOutput, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.HistoryRowOutput{
			Date:       r.Date,
			ItemName:   r.ItemName,
			Target:     r.Target,
			Actual:     r.Actual,
			Efficiency: r.Efficiency(),
		})
	}
	return out, nil
}

func (i *Interactor) Attendance(ctx context.Context) ([]dto.AttendanceOutput, error) {
	rows, err := i.svc.Attendance(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AttendanceOutput{Section: r.Section, Present: r.Present})
	}
	return out, nil
}

func (i *Interactor) Downtime(ctx context.Context) ([]dto.DowntimeOutput, error) {
	rows, err := i.svc.Downtime(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DowntimeOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DowntimeOutput(r))
	}
	return out, nil
}

func (i *Interactor) MaterialFlow(ctx context.Context) ([]dto.MaterialFlowOutput, error) {
	rows, err := i.svc.MaterialFlow(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialFlowOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MaterialFlowOutput{
			FromSection: r.FromSection,
			ToSection:   r.ToSection,
			Output:      r.Output,
			Input:       r.Input,
			Discrepancy: r.Discrepancy,
			Flagged:     r.Flagged(),
		})
	}
	return out, nil
}

// Export writes the chart, plus one worker's history when WorkerID is set,
// to a workbook at Path.
func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: output path is required", apperrors.ErrInvalidInput)
	}
	chart, err := i.svc.Chart(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	book := domain.Workbook{GeneratedAt: i.clock.Now(), Chart: chart}
	if strings.TrimSpace(input.WorkerID) != "" {
		history, err := i.svc.History(ctx, input.WorkerID)
		if err != nil {
			return dto.ExportOutput{}, err
		}
		book.WorkerID = strings.TrimSpace(input.WorkerID)
		book.History = history
	}
	if err := i.exporter.Export(ctx, input.Path, book); err != nil {
		return dto.ExportOutput{}, fmt.Errorf("export report: %w", err)
	}
	return dto.ExportOutput{Path: input.Path, Items: chart.Len(), HistoryRows: len(book.History)}, nil
}

func toChartOutput(d domain.ChartDataset) dto.ChartOutput {
	out := dto.ChartOutput{Peak: d.Peak(), TargetColor: domain.ColorTarget, Bars: make([]dto.BarOutput, 0, d.Len())}
	for idx, label := range d.Labels {
		status := d.StatusAt(idx)
		out.Bars = append(out.Bars, dto.BarOutput{
			Label:  label,
			Target: d.Targets[idx],
			Actual: d.Actuals[idx],
			Status: string(status),
			Color:  status.Color(),
		})
	}
	return out
}
