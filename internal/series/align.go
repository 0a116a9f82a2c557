// Package series aligns, converts and combines daily time series.
//
// Everything here is pure and synchronous: inputs are never mutated and every
// call recomputes its result from the series it is given.
package series

import (
	"slices"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

// IntersectDates returns the dates present in every series, ordered as in the
// first series. Any empty series yields an empty result.
func IntersectDates(series ...models.NamedSeries) ([]models.CalendarDate, error) {
	if len(series) < 2 {
		return nil, ErrTooFewSeries
	}

	for _, s := range series {
		if len(s.Points) == 0 {
			return []models.CalendarDate{}, nil
		}
	}

	// count how many of the remaining series contain each date
	seen := make(map[models.CalendarDate]int, len(series[0].Points))
	for _, p := range series[0].Points {
		seen[p.Date] = 0
	}
	for _, s := range series[1:] {
		for _, p := range s.Points {
			if _, ok := seen[p.Date]; ok {
				seen[p.Date]++
			}
		}
	}

	want := len(series) - 1
	dates := make([]models.CalendarDate, 0, len(series[0].Points))
	for _, p := range series[0].Points {
		if seen[p.Date] == want {
			dates = append(dates, p.Date)
		}
	}
	return dates, nil
}

// FirstAxis returns the first series' dates unchanged, trusting that every other
// member covers them. Pair it with ValidateAxes to check that assumption.
func FirstAxis(series ...models.NamedSeries) ([]models.CalendarDate, error) {
	if len(series) < 2 {
		return nil, ErrTooFewSeries
	}
	return series[0].Dates(), nil
}

// AlignDates builds the composite date axis according to mode.
func AlignDates(mode models.AlignMode, series ...models.NamedSeries) ([]models.CalendarDate, error) {
	if mode == models.AlignTrustFirst {
		return FirstAxis(series...)
	}
	return IntersectDates(series...)
}

// ValidateAxes checks that every series has a point on every date.
// It returns an *AxisMismatchError for the first gap found.
func ValidateAxes(dates []models.CalendarDate, series ...models.NamedSeries) error {
	for _, s := range series {
		idx := s.Index()
		for _, d := range dates {
			if _, ok := idx[d]; !ok {
				return &AxisMismatchError{Series: s.Name, Date: d}
			}
		}
	}
	return nil
}

// UnionDates returns every date present in any series, ascending. It is the
// display axis for charts and tables, never the composite axis.
func UnionDates(series ...models.NamedSeries) []models.CalendarDate {
	seen := make(map[models.CalendarDate]struct{})
	for _, s := range series {
		for _, p := range s.Points {
			seen[p.Date] = struct{}{}
		}
	}

	dates := make([]models.CalendarDate, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}
