package export

import (
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
)

// WriteHTML writes an interactive page with a line chart per series group.
func WriteHTML(w io.Writer, snap *models.Snapshot) error {
	page := components.NewPage()
	page.PageTitle = "Gas flow"

	page.AddCharts(lineChart(snap, "Points", newTable(snap.Points)))
	if cols := compositeColumns(snap); len(cols) > 0 {
		page.AddCharts(lineChart(snap, "Composites", newTable(cols)))
	}

	return page.Render(w)
}

func lineChart(snap *models.Snapshot, heading string, t table) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1000px",
			Height: "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    heading + ": " + title(snap),
			Subtitle: period(snap),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Date",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: series.UnitLabel(snap.View),
		}),
	)

	xAxis := make([]string, len(t.dates))
	for i, d := range t.dates {
		xAxis[i] = d.Display()
	}
	line.SetXAxis(xAxis)

	for i, c := range t.columns {
		data := make([]opts.LineData, len(t.dates))
		for j, d := range t.dates {
			v, ok := t.value(i, d)
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				// "-" leaves a gap in the line
				data[j] = opts.LineData{Value: "-"}
				continue
			}
			data[j] = opts.LineData{Value: v}
		}
		line.AddSeries(c.Name, data)
	}

	return line
}
