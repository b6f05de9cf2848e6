package out

import (
	"context"

	"factoryerp/internal/modules/reporting/domain"
	reportout "factoryerp/internal/modules/reporting/port/out"
	"factoryerp/internal/platform/httpapi"
)

type HTTPSource struct {
	client *httpapi.Client
}

func NewHTTPSource(client *httpapi.Client) reportout.Source {
	return &HTTPSource{client: client}
}

type chartPayload struct {
	Labels  []string  `json:"labels"`
	Targets []float64 `json:"targets"`
	Actuals []float64 `json:"actuals"`
}

type historyPayload struct {
	History []struct {
		Date     string  `json:"date"`
		ItemName string  `json:"item_name"`
		Target   float64 `json:"target"`
		Actual   float64 `json:"actual"`
	} `json:"history"`
}

type attendancePayload struct {
	Data []struct {
		Section string `json:"section"`
		Present int    `json:"present"`
	} `json:"data"`
}

type downtimePayload struct {
	Data []struct {
		Machine       string  `json:"machine"`
		StartTime     string  `json:"start_time"`
		EndTime       string  `json:"end_time"`
		DurationHours float64 `json:"duration_hours"`
		Remarks       string  `json:"remarks"`
		IsLong        bool    `json:"is_long"`
	} `json:"data"`
}

type flowPayload struct {
	Data []struct {
		FromSection string  `json:"from_section"`
		ToSection   string  `json:"to_section"`
		Output      float64 `json:"output"`
		Input       float64 `json:"input"`
		Discrepancy float64 `json:"discrepancy"`
		HasIssue    bool    `json:"has_issue"`
	} `json:"data"`
}

func (s *HTTPSource) ProductionChart(ctx context.Context) (domain.ChartDataset, error) {
	p := chartPayload{}
	if err := s.client.GetJSON(ctx, "/api/reports/production", &p); err != nil {
		return domain.ChartDataset{}, err
	}
	return domain.ChartDataset{Labels: p.Labels, Targets: p.Targets, Actuals: p.Actuals}, nil
}

func (s *HTTPSource) WorkerHistory(ctx context.Context, workerID string) ([]domain.HistoryRecord, error) {
	p := historyPayload{}
	if err := s.client.GetJSON(ctx, "/api/worker_history/"+workerID, &p); err != nil {
		return nil, err
	}
	out := make([]domain.HistoryRecord, 0, len(p.History))
	for _, h := range p.History {
		out = append(out, domain.HistoryRecord{Date: h.Date, ItemName: h.ItemName, Target: h.Target, Actual: h.Actual})
	}
	return out, nil
}

func (s *HTTPSource) Attendance(ctx context.Context) ([]domain.AttendanceSummary, error) {
	p := attendancePayload{}
	if err := s.client.GetJSON(ctx, "/api/reports/attendance", &p); err != nil {
		return nil, err
	}
	out := make([]domain.AttendanceSummary, 0, len(p.Data))
	for _, a := range p.Data {
		out = append(out, domain.AttendanceSummary{Section: a.Section, Present: a.Present})
	}
	return out, nil
}

func (s *HTTPSource) Downtime(ctx context.Context) ([]domain.DowntimeRecord, error) {
	p := downtimePayload{}
	if err := s.client.GetJSON(ctx, "/api/reports/downtime", &p); err != nil {
		return nil, err
	}
	out := make([]domain.DowntimeRecord, 0, len(p.Data))
	for _, d := range p.Data {
		out = append(out, domain.DowntimeRecord{
			Machine:       d.Machine,
			StartTime:     d.StartTime,
			EndTime:       d.EndTime,
			DurationHours: d.DurationHours,
			Remarks:       d.Remarks,
			IsLong:        d.IsLong,
		})
	}
	return out, nil
}

func (s *HTTPSource) MaterialFlow(ctx context.Context) ([]domain.MaterialFlow, error) {
	p := flowPayload{}
	if err := s.client.GetJSON(ctx, "/api/reports/material_flow", &p); err != nil {
		return nil, err
	}
	out := make([]domain.MaterialFlow, 0, len(p.Data))
	for _, f := range p.Data {
		out = append(out, domain.MaterialFlow{
			FromSection: f.FromSection,
			ToSection:   f.ToSection,
			Output:      f.Output,
			Input:       f.Input,
			Discrepancy: f.Discrepancy,
			HasIssue:    f.HasIssue,
		})
	}
	return out, nil
}
