// Package export writes dashboard snapshots to files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
)

// ErrNoData is returned when a snapshot has nothing to export.
var ErrNoData = errors.New("snapshot has no data to export")

// Format is an export file format.
type Format int

const (
	FormatXLSX Format = iota
	FormatPDF
	FormatHTML
	FormatPNG
)

var formats = []Format{FormatXLSX, FormatPDF, FormatHTML, FormatPNG}

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "XLSX"
	case FormatPDF:
		return "PDF"
	case FormatHTML:
		return "HTML"
	case FormatPNG:
		return "PNG"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatPDF:
		return "pdf"
	case FormatHTML:
		return "html"
	case FormatPNG:
		return "png"
	default:
		return "bin"
	}
}

// Next cycles through the supported formats.
func (f Format) Next() Format {
	for i, candidate := range formats {
		if candidate == f {
			return formats[(i+1)%len(formats)]
		}
	}
	return FormatXLSX
}

// Write renders snap in format f to w.
func Write(w io.Writer, snap *models.Snapshot, f Format) error {
	if !snap.HasData() {
		return ErrNoData
	}

	switch f {
	case FormatXLSX:
		return WriteXLSX(w, snap)
	case FormatPDF:
		return WritePDF(w, snap)
	case FormatHTML:
		return WriteHTML(w, snap)
	case FormatPNG:
		return WritePNG(w, snap)
	default:
		return fmt.Errorf("unsupported export format %d", f)
	}
}

// Exporter writes snapshots into a directory.
type Exporter struct {
	dir string
}

// New creates an exporter writing into dir.
func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes snap to a new file and returns its path.
func (e *Exporter) Export(snap *models.Snapshot, f Format) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, snap, f); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", f, err)
	}

	if err := os.MkdirAll(e.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, Filename(snap, f))
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// Filename returns the export file name for snap.
func Filename(snap *models.Snapshot, f Format) string {
	batch := snap.BatchID
	if len(batch) > 8 {
		batch = batch[:8]
	}
	if batch == "" {
		batch = "snapshot"
	}
	return fmt.Sprintf("gasflow-%s-%s.%s", snap.FetchedAt.Format("20060102-150405"), batch, f.Extension())
}

// table lays out named series as rows over their union date axis.
type table struct {
	dates   []models.CalendarDate
	columns []models.NamedSeries
	index   []map[models.CalendarDate]float64
}

func newTable(columns []models.NamedSeries) table {
	t := table{
		dates:   series.UnionDates(columns...),
		columns: columns,
		index:   make([]map[models.CalendarDate]float64, len(columns)),
	}
	for i, c := range columns {
		t.index[i] = c.Index()
	}
	return t
}

func (t table) value(col int, date models.CalendarDate) (float64, bool) {
	v, ok := t.index[col][date]
	return v, ok
}

// compositeColumns returns the composites that computed successfully.
func compositeColumns(snap *models.Snapshot) []models.NamedSeries {
	var out []models.NamedSeries
	for _, c := range snap.Composites {
		if c.OK() {
			out = append(out, c.Series.AsNamed())
		}
	}
	return out
}

func title(snap *models.Snapshot) string {
	return fmt.Sprintf("%s in %s", snap.View.Indicator, series.UnitLabel(snap.View))
}

func period(snap *models.Snapshot) string {
	return fmt.Sprintf("%s - %s", snap.From.Display(), snap.To.Display())
}
