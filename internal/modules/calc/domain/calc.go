package domain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const shiftHours = 8

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	eight       = decimal.NewFromInt(shiftHours)
)

// OvertimeHours converts output above target into hours, assuming the target
// is one shift's worth of work. Non-positive targets and output at or below
// target yield "0.00".
func OvertimeHours(actual, target int64) string {
	if target <= 0 || actual <= target {
		return decimal.Zero.StringFixed(2)
	}
	extra := decimal.NewFromInt(actual).Sub(decimal.NewFromInt(target))
	perHour := decimal.NewFromInt(target).Div(eight)
	return extra.Div(perHour).StringFixed(2)
}

// OvertimeHoursFromInput applies OvertimeHours to raw field text. Text that
// does not start with an integer counts as 0.
func OvertimeHoursFromInput(actualRaw, targetRaw string) string {
	actual, _ := ParseLooseInt(actualRaw)
	target, _ := ParseLooseInt(targetRaw)
	return OvertimeHours(actual, target)
}

// Wastage is input minus output, unclamped.
func Wastage(input, output decimal.Decimal) string {
	return input.Sub(output).StringFixed(2)
}

// WastageFromInput applies Wastage to raw field text. Text that does not
// start with a number counts as 0.
func WastageFromInput(inputRaw, outputRaw string) string {
	input, _ := ParseLooseDecimal(inputRaw)
	output, _ := ParseLooseDecimal(outputRaw)
	return Wastage(input, output)
}

// ParseLooseInt reads the leading base-10 integer of s, ignoring leading
// whitespace and any trailing text ("12.7kg" is 12). ok is false when s has
// no integer prefix or it overflows int64.
func ParseLooseInt(s string) (int64, bool) {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseLooseDecimal reads the leading decimal number of s, with the same
// prefix rules as ParseLooseInt.
func ParseLooseDecimal(s string) (decimal.Decimal, bool) {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
