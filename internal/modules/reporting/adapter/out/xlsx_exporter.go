package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"factoryerp/internal/modules/reporting/domain"
	reportout "factoryerp/internal/modules/reporting/port/out"
)

const (
	SheetProduction = "Production"
	historyPrefix   = "Worker "
)

var (
	productionHeader = []any{"Item", "Target", "Actual", "Status"}
	historyHeader    = []any{"Date", "Item", "Target", "Actual", "Efficiency"}
)

// XLSXExporter writes report workbooks with excelize.
type XLSXExporter struct{}

func NewXLSXExporter() reportout.Exporter {
	return XLSXExporter{}
}

func HistorySheet(workerID string) string {
	return historyPrefix + workerID
}

func (XLSXExporter) Export(ctx context.Context, path string, book domain.Workbook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: "factoryerp",
		Title:   "Production report",
		Created: book.GeneratedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("set properties: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3b82f6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	status := map[domain.BarStatus]int{}
	for _, s := range []domain.BarStatus{domain.StatusShortfall, domain.StatusMet} {
		id, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{s.Color()}, Pattern: 1}})
		if err != nil {
			return fmt.Errorf("status style: %w", err)
		}
		status[s] = id
	}

	if err := f.SetSheetName("Sheet1", SheetProduction); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := writeRow(f, SheetProduction, 1, productionHeader, header); err != nil {
		return err
	}
	chart := book.Chart
	for i, label := range chart.Labels {
		row := i + 2
		s := chart.StatusAt(i)
		if err := writeRow(f, SheetProduction, row, []any{label, chart.Targets[i], chart.Actuals[i], string(s)}, 0); err != nil {
			return err
		}
		cell := fmt.Sprintf("D%d", row)
		if err := f.SetCellStyle(SheetProduction, cell, cell, status[s]); err != nil {
			return fmt.Errorf("style %s: %w", cell, err)
		}
	}
	if chart.Len() > 0 {
		if err := addBarChart(f, chart.Len()); err != nil {
			return err
		}
	}

	if book.WorkerID != "" {
		sheet := HistorySheet(book.WorkerID)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create %s: %w", sheet, err)
		}
		if err := writeRow(f, sheet, 1, historyHeader, header); err != nil {
			return err
		}
		for i, r := range book.History {
			if err := writeRow(f, sheet, i+2, []any{r.Date, r.ItemName, r.Target, r.Actual, r.Efficiency()}, 0); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	if style == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func addBarChart(f *excelize.File, rows int) error {
	last := rows + 1
	ref := func(col string) string {
		return fmt.Sprintf("%s!$%s$2:$%s$%d", quoteSheet(SheetProduction), col, col, last)
	}
	return f.AddChart(SheetProduction, "F2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       quoteSheet(SheetProduction) + "!$B$1",
				Categories: ref("A"),
				Values:     ref("B"),
				Fill:       excelize.Fill{Type: "pattern", Color: []string{domain.ColorTarget}, Pattern: 1},
			},
			{
				Name:       quoteSheet(SheetProduction) + "!$C$1",
				Categories: ref("A"),
				Values:     ref("C"),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Target vs Actual"}},
	})
}

func quoteSheet(name string) string {
	if strings.ContainsAny(name, " -") {
		return "'" + name + "'"
	}
	return name
}
