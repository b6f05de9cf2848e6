package dto

type BarOutput struct {
	Label  string
	Target float64
	Actual float64
	// Status is "shortfall" or "met"; Color is the matching hex colour.
	Status string
	Color  string
}

type ChartOutput struct {
	Bars        []BarOutput
	Peak        float64
	TargetColor string
}

type HistoryRowOutput struct {
	Date       string
	ItemName   string
	Target     float64
	Actual     float64
	Efficiency string
}

type HistoryOutput struct {
	WorkerID string
	Rows     []HistoryRowOutput
}

type AttendanceOutput struct {
	Section string
	Present int
}

type DowntimeOutput struct {
	Machine       string
	StartTime     string
	EndTime       string
	DurationHours float64
	Remarks       string
	IsLong        bool
}

type MaterialFlowOutput struct {
	FromSection string
	ToSection   string
	Output      float64
	Input       float64
	Discrepancy float64
	Flagged     bool
}

type ExportInput struct {
	Path     string
	WorkerID string
}

type ExportOutput struct {
	Path        string
	Items       int
	HistoryRows int
}
