package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"factoryerp/internal/modules/reporting/domain"
	reportout "factoryerp/internal/modules/reporting/port/out"
)

// ReportService fetches report data and logs every failed fetch. Nothing is
// retried.
type ReportService struct {
	source reportout.Source
	logger *zap.Logger
}

func NewReportService(source reportout.Source, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{source: source, logger: logger}
}

func (s *ReportService) Chart(ctx context.Context) (domain.ChartDataset, error) {
	d, err := s.source.ProductionChart(ctx)
	if err == nil {
		err = d.Validate()
	}
	if err != nil {
		return domain.ChartDataset{}, s.failed("production chart", err)
	}
	return d, nil
}

func (s *ReportService) History(ctx context.Context, workerID string) ([]domain.HistoryRecord, error) {
	id, err := domain.ParseWorkerID(workerID)
	if err != nil {
		return nil, err
	}
	rows, err := s.source.WorkerHistory(ctx, id)
	if err != nil {
		return nil, s.failed("worker history", err, zap.String("worker_id", id))
	}
	return rows, nil
}

func (s *ReportService) Attendance(ctx context.Context) ([]domain.AttendanceSummary, error) {
	rows, err := s.source.Attendance(ctx)
	if err != nil {
		return nil, s.failed("attendance report", err)
	}
	return rows, nil
}

func (s *ReportService) Downtime(ctx context.Context) ([]domain.DowntimeRecord, error) {
	rows, err := s.source.Downtime(ctx)
	if err != nil {
		return nil, s.failed("downtime report", err)
	}
	return rows, nil
}

func (s *ReportService) MaterialFlow(ctx context.Context) ([]domain.MaterialFlow, error) {
	rows, err := s.source.MaterialFlow(ctx)
	if err != nil {
		return nil, s.failed("material flow report", err)
	}
	return rows, nil
}

func (s *ReportService) failed(what string, err error, fields ...zap.Field) error {
	s.logger.Error("report fetch failed", append(fields, zap.String("report", what), zap.Error(err))...)
	return fmt.Errorf("load %s: %w", what, err)
}
