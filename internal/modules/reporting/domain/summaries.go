package domain

import "math"

// Flow discrepancies at or below this many kilograms are not flagged.
const FlowTolerance = 0.1

type AttendanceSummary struct {
	Section string
	Present int
}

type DowntimeRecord struct {
	Machine       string
	StartTime     string
	EndTime       string
	DurationHours float64
	Remarks       string
	IsLong        bool
}

// MaterialFlow compares what one section produced with what the next one
// consumed today.
type MaterialFlow struct {
	FromSection string
	ToSection   string
	Output      float64
	Input       float64
	Discrepancy float64
	HasIssue    bool
}

// Flagged trusts the server flag but also catches discrepancies it sent
// without one.
func (m MaterialFlow) Flagged() bool {
	return m.HasIssue || math.Abs(m.Discrepancy) > FlowTolerance
}
