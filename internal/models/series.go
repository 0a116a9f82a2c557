// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical day-precision layout used by the transparency feed.
const DateLayout = "2006-01-02"

// CalendarDate is a date truncated to day precision in its canonical YYYY-MM-DD form.
// The string form is used for comparison and as a map key.
type CalendarDate string

// ParseCalendarDate parses a YYYY-MM-DD string into a CalendarDate.
func ParseCalendarDate(s string) (CalendarDate, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return CalendarDate(s), nil
}

// DateFromTime truncates t to its calendar day.
func DateFromTime(t time.Time) CalendarDate {
	return CalendarDate(t.Format(DateLayout))
}

// DateFromPeriod converts an ISO date-time string to its calendar date by keeping the
// first ten characters.
func DateFromPeriod(periodFrom string) (CalendarDate, error) {
	if len(periodFrom) < len(DateLayout) {
		return "", fmt.Errorf("period %q is shorter than a date", periodFrom)
	}
	return ParseCalendarDate(periodFrom[:len(DateLayout)])
}

// Time returns the date at midnight UTC. Invalid dates yield the zero time.
func (d CalendarDate) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// String returns the canonical form.
func (d CalendarDate) String() string {
	return string(d)
}

// Display formats the date as DD.MM.YYYY for axis captions.
func (d CalendarDate) Display() string {
	t := d.Time()
	if t.IsZero() {
		return string(d)
	}
	return t.Format("02.01.2006")
}

// Point is a single (date, value) observation.
type Point struct {
	Date  CalendarDate
	Value float64
}

// NamedSeries is a series of points ordered by date ascending with unique dates.
type NamedSeries struct {
	Name   string
	Points []Point
}

// Dates returns the ordered date sequence of the series.
func (s NamedSeries) Dates() []CalendarDate {
	dates := make([]CalendarDate, len(s.Points))
	for i, p := range s.Points {
		dates[i] = p.Date
	}
	return dates
}

// Values returns the ordered values of the series.
func (s NamedSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// ValueAt scans the series for date. Callers looking up many dates should use Index.
func (s NamedSeries) ValueAt(date CalendarDate) (float64, bool) {
	for _, p := range s.Points {
		if p.Date == date {
			return p.Value, true
		}
	}
	return 0, false
}

// Index returns a date -> value map for the series.
func (s NamedSeries) Index() map[CalendarDate]float64 {
	idx := make(map[CalendarDate]float64, len(s.Points))
	for _, p := range s.Points {
		idx[p.Date] = p.Value
	}
	return idx
}

// Len returns the number of points.
func (s NamedSeries) Len() int {
	return len(s.Points)
}

// Last returns the most recent point.
func (s NamedSeries) Last() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// CompositeSeries is a derived series summing several members over their aligned dates.
type CompositeSeries struct {
	Name    string
	Members []string
	Points  []Point
}

// AsNamed returns the composite as a plain named series.
func (c CompositeSeries) AsNamed() NamedSeries {
	return NamedSeries{Name: c.Name, Points: c.Points}
}

// XY is one chart coordinate.
type XY struct {
	X CalendarDate `json:"x"`
	Y float64      `json:"y"`
}

// ChartSeries is the shape consumed by chart renderers.
type ChartSeries struct {
	ID   string `json:"id"`
	Data []XY   `json:"data"`
}

// ToChart converts a named series into its chart representation.
func (s NamedSeries) ToChart() ChartSeries {
	data := make([]XY, len(s.Points))
	for i, p := range s.Points {
		data[i] = XY{X: p.Date, Y: p.Value}
	}
	return ChartSeries{ID: s.Name, Data: data}
}
