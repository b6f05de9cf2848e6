package domain

import "time"

// Workbook is everything written by one export.
type Workbook struct {
	GeneratedAt time.Time
	Chart       ChartDataset
	WorkerID    string
	History     []HistoryRecord
}
