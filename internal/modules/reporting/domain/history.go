package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "factoryerp/internal/platform/errors"
)

// EfficiencyUnavailable is shown instead of a percentage when target is 0.
const EfficiencyUnavailable = "N/A"

var hundred = decimal.NewFromInt(100)

// HistoryRecord is one production log line for a worker.
type HistoryRecord struct {
	Date     string
	ItemName string
	Target   float64
	Actual   float64
}

// Efficiency is actual/target as a percentage with one decimal place.
func (r HistoryRecord) Efficiency() string {
	target := decimal.NewFromFloat(r.Target)
	if target.IsZero() {
		return EfficiencyUnavailable
	}
	return decimal.NewFromFloat(r.Actual).Div(target).Mul(hundred).StringFixed(1) + "%"
}

// ParseWorkerID accepts the positive integer ids the history route expects.
func ParseWorkerID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return "", fmt.Errorf("%w: worker id must be a positive integer, got %q", apperrors.ErrInvalidInput, raw)
	}
	return strconv.FormatInt(id, 10), nil
}
