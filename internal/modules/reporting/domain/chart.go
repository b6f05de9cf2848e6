package domain

import (
	"fmt"

	apperrors "factoryerp/internal/platform/errors"
)

type BarStatus string

const (
	StatusShortfall BarStatus = "shortfall"
	StatusMet       BarStatus = "met"
)

// Colours of the two chart series. The actual bar switches between the
// shortfall and met colours per data point.
const (
	ColorTarget    = "#36A2EB"
	ColorShortfall = "#FF6384"
	ColorMet       = "#4BC0C0"
)

// ChartDataset is aggregate production per item, as received.
type ChartDataset struct {
	Labels  []string
	Targets []float64
	Actuals []float64
}

func (d ChartDataset) Validate() error {
	if len(d.Targets) != len(d.Labels) || len(d.Actuals) != len(d.Labels) {
		return fmt.Errorf("%w: chart has %d labels, %d targets, %d actuals",
			apperrors.ErrInvalidInput, len(d.Labels), len(d.Targets), len(d.Actuals))
	}
	return nil
}

func (d ChartDataset) Len() int {
	return len(d.Labels)
}

// StatusAt reports a shortfall only when actual is strictly below target.
func (d ChartDataset) StatusAt(i int) BarStatus {
	if d.Actuals[i] < d.Targets[i] {
		return StatusShortfall
	}
	return StatusMet
}

func (d ChartDataset) Statuses() []BarStatus {
	out := make([]BarStatus, d.Len())
	for i := range out {
		out[i] = d.StatusAt(i)
	}
	return out
}

// Peak is the largest value across both series, or 0 for an empty chart.
func (d ChartDataset) Peak() float64 {
	peak := 0.0
	for i := range d.Labels {
		peak = max(peak, d.Targets[i], d.Actuals[i])
	}
	return peak
}

func (s BarStatus) Color() string {
	if s == StatusShortfall {
		return ColorShortfall
	}
	return ColorMet
}
