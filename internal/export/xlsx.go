package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
)

const (
	summarySheet    = "Summary"
	pointsSheet     = "Points"
	compositesSheet = "Composites"
)

// WriteXLSX writes a workbook with a summary sheet and one sheet per series group.
func WriteXLSX(w io.Writer, snap *models.Snapshot) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Gas flow snapshot")
	_ = f.SetCellValue(summarySheet, "A3", "Indicator")
	_ = f.SetCellValue(summarySheet, "B3", snap.View.Indicator.String())
	_ = f.SetCellValue(summarySheet, "A4", "Unit")
	_ = f.SetCellValue(summarySheet, "B4", series.UnitLabel(snap.View))
	_ = f.SetCellValue(summarySheet, "A5", "Alignment")
	_ = f.SetCellValue(summarySheet, "B5", snap.View.Align.String())
	_ = f.SetCellValue(summarySheet, "A6", "Period")
	_ = f.SetCellValue(summarySheet, "B6", period(snap))
	_ = f.SetCellValue(summarySheet, "A7", "Fetched")
	_ = f.SetCellValue(summarySheet, "B7", snap.FetchedAt.Format("2006-01-02 15:04:05"))
	_ = f.SetCellValue(summarySheet, "A8", "Batch")
	_ = f.SetCellValue(summarySheet, "B8", snap.BatchID)
	_ = f.SetCellValue(summarySheet, "A9", "Factor")
	_ = f.SetCellValue(summarySheet, "B9", snap.Factor)

	row := 11
	for _, c := range snap.Composites {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), c.Series.Name)
		if c.OK() {
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%d days, %d dropped", len(c.Series.Points), c.Dropped()))
		} else {
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), c.Err.Error())
		}
		row++
	}

	if err := writeSheet(f, pointsSheet, newTable(snap.Points)); err != nil {
		return err
	}
	if cols := compositeColumns(snap); len(cols) > 0 {
		if err := writeSheet(f, compositesSheet, newTable(cols)); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, t table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	_ = f.SetCellValue(sheet, "A1", "Date")
	for i, c := range t.columns {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(sheet, cell, c.Name)
	}

	for r, d := range t.dates {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r+2), d.String())
		for i := range t.columns {
			v, ok := t.value(i, d)
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+2, r+2)
			if err != nil {
				return err
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	return nil
}
