// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
)

// chartPalette is cycled through for multi-series charts. Legends derive their
// colors from the same entries.
var chartPalette = []asciigraph.AnsiColor{
	asciigraph.DodgerBlue,
	asciigraph.DarkOrange,
	asciigraph.LimeGreen,
	asciigraph.Orchid,
	asciigraph.Gold,
	asciigraph.Turquoise,
}

// SeriesColor returns the lipgloss color matching chart line i.
func SeriesColor(i int) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(int(chartPalette[i%len(chartPalette)])))
}

// ChartOptions controls the size and caption of a series chart.
type ChartOptions struct {
	Width   int
	Height  int
	Caption string
}

// RenderSeriesChart plots every non-empty series on a shared date axis.
// Dates missing from a series are left as gaps rather than interpolated.
func RenderSeriesChart(list []models.NamedSeries, opts ChartOptions) string {
	var plotted []models.NamedSeries
	for _, s := range list {
		if hasFinite(s) {
			plotted = append(plotted, s)
		}
	}
	if len(plotted) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	width := max(opts.Width, 20)
	height := max(opts.Height, 3)

	dates := series.UnionDates(plotted...)
	data := make([][]float64, len(plotted))
	colors := make([]asciigraph.AnsiColor, len(plotted))
	for i, s := range plotted {
		idx := s.Index()
		row := make([]float64, len(dates))
		for j, d := range dates {
			v, ok := idx[d]
			if !ok || math.IsInf(v, 0) {
				v = math.NaN()
			}
			row[j] = v
		}
		data[i] = row
		colors[i] = chartPalette[colorIndex(list, s.Name)%len(chartPalette)]
	}

	caption := DateRangeCaption(dates)
	if opts.Caption != "" {
		caption = opts.Caption + "  " + caption
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// colorIndex keeps a series' color stable when empty siblings are skipped.
func colorIndex(list []models.NamedSeries, name string) int {
	for i, s := range list {
		if s.Name == name {
			return i
		}
	}
	return 0
}

func hasFinite(s models.NamedSeries) bool {
	for _, p := range s.Points {
		if !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0) {
			return true
		}
	}
	return false
}

// DateRangeCaption formats the first and last date as DD.MM.YYYY.
func DateRangeCaption(dates []models.CalendarDate) string {
	switch len(dates) {
	case 0:
		return ""
	case 1:
		return dates[0].Display()
	default:
		return fmt.Sprintf("%s – %s", dates[0].Display(), dates[len(dates)-1].Display())
	}
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// LegendFor builds legend entries in chart color order.
func LegendFor(list []models.NamedSeries) []LegendItem {
	items := make([]LegendItem, len(list))
	for i, s := range list {
		items[i] = LegendItem{Label: s.Name, Color: SeriesColor(i)}
	}
	return items
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline of the last width values.
// Non-finite values render as blanks.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteRune(' ')
			continue
		}
		level := 0
		if hi > lo {
			level = int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
		}
		b.WriteRune(sparkChars[level])
	}
	return b.String()
}

// RenderLatestTable lists the most recent value of each series with its date
// and a sparkline of the preceding days.
func RenderLatestTable(list []models.NamedSeries, view models.ViewConfig, sparkWidth int) string {
	if len(list) == 0 {
		return ""
	}

	nameWidth := len("Series")
	for _, s := range list {
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth + 2)
	dateCol := lipgloss.NewStyle().Width(12)
	valueCol := lipgloss.NewStyle().Width(16).Align(lipgloss.Right)

	header := styles.TableHeaderStyle.Render(
		nameCol.Render("  Series") + dateCol.Render("Date") + valueCol.Render("Latest") + "  Trend",
	)
	rows := []string{header}

	for i, s := range list {
		marker := lipgloss.NewStyle().Foreground(SeriesColor(i)).Render("■ ")
		last, ok := s.Last()
		date, value := "–", "–"
		if ok {
			date = last.Date.Display()
			value = series.FormatWithUnit(last.Value, view)
		}
		rows = append(rows,
			nameCol.Render(marker+s.Name)+
				dateCol.Render(date)+
				valueCol.Render(value)+
				"  "+RenderSparkline(s.Values(), sparkWidth),
		)
	}

	return strings.Join(rows, "\n")
}
