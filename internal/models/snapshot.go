package models

import "time"

// CompositeResult holds a computed composite or the reason it could not be built.
type CompositeResult struct {
	Err         error
	Series      CompositeSeries
	AlignedDays int
}

// OK reports whether the composite was computed.
func (c CompositeResult) OK() bool {
	return c.Err == nil
}

// Dropped returns how many aligned dates were removed by the validity filter.
func (c CompositeResult) Dropped() int {
	return c.AlignedDays - len(c.Series.Points)
}

// Snapshot is one fully resolved dashboard computation. It is never mutated after
// construction; a toggle or refresh produces a new snapshot.
type Snapshot struct {
	FetchedAt  time.Time
	BatchID    string
	From       CalendarDate
	To         CalendarDate
	Points     []NamedSeries
	Composites []CompositeResult
	View       ViewConfig
	Factor     float64
}

// HasData reports whether any point carries at least one observation.
func (s *Snapshot) HasData() bool {
	if s == nil {
		return false
	}
	for _, p := range s.Points {
		if p.Len() > 0 {
			return true
		}
	}
	return false
}

// TotalPoints returns the number of observations across all point series.
func (s *Snapshot) TotalPoints() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, p := range s.Points {
		total += p.Len()
	}
	return total
}
