package series

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

var printer = message.NewPrinter(language.German)

// FormatValue renders v in German notation with three significant digits,
// e.g. 12.345 -> "12,3".
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "–"
	}
	return printer.Sprint(number.Decimal(v, number.Precision(3)))
}

// UnitLabel returns the axis label for a view's unit and rate.
func UnitLabel(view models.ViewConfig) string {
	switch {
	case view.IsVolume() && view.IsHourlyAverage():
		return "Mio. m³/h"
	case view.IsVolume():
		return "Mio. m³/d"
	case view.IsHourlyAverage():
		return "GWh/h"
	default:
		return "GWh/d"
	}
}

// FormatWithUnit combines FormatValue and UnitLabel.
func FormatWithUnit(v float64, view models.ViewConfig) string {
	return FormatValue(v) + " " + UnitLabel(view)
}
