package export

import (
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
)

// WritePNG renders the point series and successful composites as one chart.
func WritePNG(w io.Writer, snap *models.Snapshot) error {
	columns := append(append([]models.NamedSeries{}, snap.Points...), compositeColumns(snap)...)

	var chartSeries []chart.Series
	for _, c := range columns {
		ts := chart.TimeSeries{Name: c.Name}
		for _, p := range c.Points {
			if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
				continue
			}
			ts.XValues = append(ts.XValues, p.Date.Time())
			ts.YValues = append(ts.YValues, p.Value)
		}
		if len(ts.XValues) == 0 {
			continue
		}
		chartSeries = append(chartSeries, ts)
	}
	if len(chartSeries) == 0 {
		return ErrNoData
	}

	graph := chart.Chart{
		Title:  title(snap),
		Width:  1200,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           period(snap),
			ValueFormatter: chart.TimeValueFormatterWithFormat("02.01.06"),
		},
		YAxis: chart.YAxis{
			Name: series.UnitLabel(snap.View),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return series.FormatValue(f)
				}
				return ""
			},
		},
		Series: chartSeries,
	}
	graph.XAxis.Range, graph.YAxis.Range = paddedRanges(chartSeries)
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// paddedRanges returns explicit axis ranges for data that spans a single day
// or a single value, where go-chart cannot derive a non-zero range itself.
// A nil range is derived from the data.
func paddedRanges(list []chart.Series) (x, y chart.Range) {
	var first time.Time
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range list {
		ts, ok := s.(chart.TimeSeries)
		if !ok {
			continue
		}
		for i, t := range ts.XValues {
			if first.IsZero() {
				first = t
			}
			v := chart.TimeToFloat64(t)
			minX, maxX = math.Min(minX, v), math.Max(maxX, v)
			minY, maxY = math.Min(minY, ts.YValues[i]), math.Max(maxY, ts.YValues[i])
		}
	}
	if first.IsZero() {
		return nil, nil
	}

	if minX == maxX {
		x = &chart.ContinuousRange{
			Min: chart.TimeToFloat64(first.Add(-12 * time.Hour)),
			Max: chart.TimeToFloat64(first.Add(12 * time.Hour)),
		}
	}
	if minY == maxY {
		lo, hi := math.Min(0, minY), math.Max(0, maxY)
		if lo == hi {
			hi = 1
		}
		y = &chart.ContinuousRange{Min: lo, Max: hi}
	}
	return x, y
}
