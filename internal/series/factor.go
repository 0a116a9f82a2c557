package series

import "github.com/j-veylop/gasflow-dashboard-tui/internal/models"

// kWh per day to GWh per hour, the base every factor is derived from.
const baseDivisor = 24 * 1_000_000

// volumeMultiplier is the fixed energy to volume ratio used by the dashboard.
const volumeMultiplier = 2.2

// SelectFactor returns the scalar applied to every raw kWh/d value.
//
//	energy, daily:         1/1e6
//	energy, hourly avg:    1/24e6
//	volume, daily:         2.2/24e6
//	volume, hourly avg:    2.2/(24*24e6)
//
// The value is computed as a single division so results are exact to the last bit.
func SelectFactor(unitIsVolume, isHourlyAverage bool) float64 {
	switch {
	case !unitIsVolume && !isHourlyAverage:
		return 24.0 / baseDivisor
	case !unitIsVolume && isHourlyAverage:
		return 1.0 / baseDivisor
	case unitIsVolume && !isHourlyAverage:
		return volumeMultiplier / baseDivisor
	default:
		return volumeMultiplier / (24 * baseDivisor)
	}
}

// FactorFor returns the factor for a view's unit and rate toggles.
func FactorFor(view models.ViewConfig) float64 {
	return SelectFactor(view.IsVolume(), view.IsHourlyAverage())
}

// Scale returns a copy of s with every value multiplied by factor.
func Scale(s models.NamedSeries, factor float64) models.NamedSeries {
	points := make([]models.Point, len(s.Points))
	for i, p := range s.Points {
		points[i] = models.Point{Date: p.Date, Value: p.Value * factor}
	}
	return models.NamedSeries{Name: s.Name, Points: points}
}
