package series

import (
	"math"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

// Combiner reduces the member values of one date to a single value.
type Combiner func(values []float64) float64

// Sum adds all values. NaN in any input propagates to the result.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Combine applies combiner to the members' values on each date. A date on which
// a member has no point is skipped, as is any non-finite result.
func Combine(name string, members []models.NamedSeries, dates []models.CalendarDate, combiner Combiner) models.CompositeSeries {
	indexes := make([]map[models.CalendarDate]float64, len(members))
	names := make([]string, len(members))
	for i, m := range members {
		indexes[i] = m.Index()
		names[i] = m.Name
	}

	points := make([]models.Point, 0, len(dates))

dateLoop:
	for _, d := range dates {
		// combiner may retain values
		values := make([]float64, len(members))
		for i, idx := range indexes {
			v, ok := idx[d]
			if !ok {
				continue dateLoop
			}
			values[i] = v
		}
		points = append(points, models.Point{Date: d, Value: combiner(values)})
	}

	return models.CompositeSeries{
		Name:    name,
		Members: names,
		Points:  FilterFinite(points),
	}
}

// FilterFinite drops points whose value is NaN or infinite. Missing data is
// never imputed.
func FilterFinite(points []models.Point) []models.Point {
	out := make([]models.Point, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Lookup resolves names against index in the order given.
func Lookup(index map[string]models.NamedSeries, names ...string) ([]models.NamedSeries, error) {
	out := make([]models.NamedSeries, 0, len(names))
	for _, n := range names {
		s, ok := index[n]
		if !ok {
			return nil, &UnknownSeriesError{Name: n}
		}
		out = append(out, s)
	}
	return out, nil
}

// Aggregate resolves members by name, aligns them per mode and sums them.
// With validate set, trust-first axes are checked against every member first.
func Aggregate(name string, index map[string]models.NamedSeries, memberNames []string, mode models.AlignMode, validate bool) (models.CompositeSeries, int, error) {
	members, err := Lookup(index, memberNames...)
	if err != nil {
		return models.CompositeSeries{Name: name}, 0, err
	}

	dates, err := AlignDates(mode, members...)
	if err != nil {
		return models.CompositeSeries{Name: name}, 0, err
	}

	if validate && mode == models.AlignTrustFirst {
		if err := ValidateAxes(dates, members...); err != nil {
			return models.CompositeSeries{Name: name}, len(dates), err
		}
	}

	return Combine(name, members, dates, Sum), len(dates), nil
}
