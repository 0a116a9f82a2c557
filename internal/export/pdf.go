package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
)

const (
	pdfDateWidth  = 28.0
	pdfPageWidth  = 277.0
	pdfMaxColumns = 6
)

// WritePDF writes a landscape report with one table per series group.
// Groups wider than the page are split into several tables.
func WritePDF(w io.Writer, snap *models.Snapshot) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Gas flow snapshot")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Indicator: %s", snap.View.Indicator))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Unit: %s", series.UnitLabel(snap.View))))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Alignment: %s", snap.View.Align))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", period(snap)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Fetched: %s (batch %s)", snap.FetchedAt.Format("2006-01-02 15:04"), snap.BatchID))
	pdf.Ln(8)

	for _, c := range snap.Composites {
		if !c.OK() {
			pdf.Cell(0, 6, tr(fmt.Sprintf("%s: %s", c.Series.Name, c.Err)))
			pdf.Ln(5)
		}
	}

	writePDFTable(pdf, tr, "Points", newTable(snap.Points))
	if cols := compositeColumns(snap); len(cols) > 0 {
		writePDFTable(pdf, tr, "Composites", newTable(cols))
	}

	return pdf.Output(w)
}

func writePDFTable(pdf *gofpdf.Fpdf, tr func(string) string, heading string, t table) {
	for start := 0; start < len(t.columns); start += pdfMaxColumns {
		end := min(start+pdfMaxColumns, len(t.columns))
		colWidth := (pdfPageWidth - pdfDateWidth) / float64(end-start)

		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, heading)
		pdf.Ln(8)

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(pdfDateWidth, 6, "Date", "1", 0, "C", false, 0, "")
		for _, c := range t.columns[start:end] {
			pdf.CellFormat(colWidth, 6, tr(c.Name), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, d := range t.dates {
			pdf.CellFormat(pdfDateWidth, 5, d.Display(), "1", 0, "C", false, 0, "")
			for i := start; i < end; i++ {
				text := ""
				if v, ok := t.value(i, d); ok {
					text = series.FormatValue(v)
				}
				pdf.CellFormat(colWidth, 5, text, "1", 0, "R", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}
}
