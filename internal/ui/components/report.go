package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	reportdto "factoryerp/internal/modules/reporting/dto"
	"factoryerp/internal/ui/theme"
)

const barGlyph = "█"

// BarLength scales value against peak onto at most width cells. Any positive
// value gets at least one cell so small bars stay visible.
func BarLength(value, peak float64, width int) int {
	if value <= 0 || peak <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(value / peak * float64(width)))
	return min(max(n, 1), width)
}

// RenderChart draws the target and actual bars for every item. The actual
// bar takes the shortfall or met colour of its data point.
func RenderChart(chart reportdto.ChartOutput, width int) string {
	if len(chart.Bars) == 0 {
		return theme.Muted.Render("No production data yet.")
	}
	labelW := 0
	for _, b := range chart.Bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
	}
	barW := max(width-labelW-12, 10)

	target := lipgloss.NewStyle().Foreground(theme.ChartTarget)
	var sb strings.Builder
	sb.WriteString(target.Render(barGlyph+" Target") + "  " +
		lipgloss.NewStyle().Foreground(theme.ChartShortfall).Render(barGlyph+" Shortfall") + "  " +
		lipgloss.NewStyle().Foreground(theme.ChartMet).Render(barGlyph+" Met") + "\n\n")
	for _, b := range chart.Bars {
		actual := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
		label := b.Label + strings.Repeat(" ", labelW-lipgloss.Width(b.Label))
		sb.WriteString(fmt.Sprintf("%s %s %s\n", label,
			target.Render(strings.Repeat(barGlyph, BarLength(b.Target, chart.Peak, barW))), number(b.Target)))
		sb.WriteString(fmt.Sprintf("%s %s %s\n", strings.Repeat(" ", labelW),
			actual.Render(strings.Repeat(barGlyph, BarLength(b.Actual, chart.Peak, barW))), number(b.Actual)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderHistory lays out a worker's production log with its efficiency
// column.
func RenderHistory(h reportdto.HistoryOutput) string {
	if len(h.Rows) == 0 {
		return theme.Muted.Render("No history for worker " + h.WorkerID + ".")
	}
	rows := make([][]string, 0, len(h.Rows))
	for _, r := range h.Rows {
		rows = append(rows, []string{r.Date, r.ItemName, number(r.Target), number(r.Actual), r.Efficiency})
	}
	return grid([]string{"Date", "Item", "Target", "Actual", "Efficiency"}, rows, nil)
}

func RenderAttendance(rows []reportdto.AttendanceOutput) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Section, strconv.Itoa(r.Present)})
	}
	return grid([]string{"Section", "Present"}, data, nil)
}

func RenderDowntime(rows []reportdto.DowntimeOutput) string {
	data := make([][]string, 0, len(rows))
	long := map[int]bool{}
	for i, r := range rows {
		data = append(data, []string{r.Machine, r.StartTime, r.EndTime, strconv.FormatFloat(r.DurationHours, 'f', 2, 64), r.Remarks})
		long[i] = r.IsLong
	}
	return grid([]string{"Machine", "Start", "End", "Hours", "Remarks"}, data, long)
}

func RenderMaterialFlow(rows []reportdto.MaterialFlowOutput) string {
	data := make([][]string, 0, len(rows))
	flagged := map[int]bool{}
	for i, r := range rows {
		data = append(data, []string{
			r.FromSection + " → " + r.ToSection,
			number(r.Output),
			number(r.Input),
			strconv.FormatFloat(r.Discrepancy, 'f', 2, 64),
		})
		flagged[i] = r.Flagged
	}
	return grid([]string{"Flow", "Output", "Input", "Discrepancy"}, data, flagged)
}

// grid renders a bordered table; rows marked in hot are highlighted.
func grid(headers []string, rows [][]string, hot map[int]bool) string {
	if len(rows) == 0 {
		return theme.Muted.Render("Nothing to show.")
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Surface1)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cell.Foreground(theme.Sapphire).Bold(true)
			case hot[row]:
				return cell.Foreground(theme.Red)
			}
			return cell.Foreground(theme.Text)
		}).
		String()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
