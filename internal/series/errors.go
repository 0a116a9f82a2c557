package series

import (
	"errors"
	"fmt"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

var (
	// ErrUnknownSeries is returned when a series is referenced by a name that was
	// never fetched or configured.
	ErrUnknownSeries = errors.New("configuration error: unknown series name")

	// ErrTooFewSeries is returned when alignment is requested for fewer than two series.
	ErrTooFewSeries = errors.New("alignment needs at least two series")

	// ErrAxisMismatch is returned when a member lacks a date of the chosen axis.
	ErrAxisMismatch = errors.New("axis mismatch")
)

// UnknownSeriesError names the series that could not be resolved.
type UnknownSeriesError struct {
	Name string
}

func (e *UnknownSeriesError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownSeries.Error(), e.Name)
}

// Is lets errors.Is match ErrUnknownSeries.
func (e *UnknownSeriesError) Is(target error) bool {
	return target == ErrUnknownSeries
}

// AxisMismatchError reports the first date of an axis missing from a member series.
type AxisMismatchError struct {
	Series string
	Date   models.CalendarDate
}

func (e *AxisMismatchError) Error() string {
	return fmt.Sprintf("%s: %q has no value on %s", ErrAxisMismatch.Error(), e.Series, e.Date)
}

// Is lets errors.Is match ErrAxisMismatch.
func (e *AxisMismatchError) Is(target error) bool {
	return target == ErrAxisMismatch
}
