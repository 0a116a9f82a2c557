package models

import "fmt"

// Indicator is the metric type requested from the transparency feed.
type Indicator int

const (
	// IndicatorPhysicalFlow requests measured physical flows.
	IndicatorPhysicalFlow Indicator = iota
	// IndicatorAllocation requests allocated quantities.
	IndicatorAllocation
)

// String returns the display name of the indicator.
func (i Indicator) String() string {
	switch i {
	case IndicatorPhysicalFlow:
		return "Physical Flow"
	case IndicatorAllocation:
		return "Allocation"
	default:
		return "Unknown"
	}
}

// QueryValue returns the indicator as the feed expects it before URL encoding.
// "Physical Flow" is sent on the wire as "Physical+Flow".
func (i Indicator) QueryValue() string {
	return i.String()
}

// Unit selects energy or volume values.
type Unit int

const (
	// UnitEnergy shows energy quantities.
	UnitEnergy Unit = iota
	// UnitVolume shows volume quantities.
	UnitVolume
)

// String returns the display name of the unit.
func (u Unit) String() string {
	if u == UnitVolume {
		return "Volume"
	}
	return "Energy"
}

// Rate selects per-day totals or the hourly average of each day.
type Rate int

const (
	// RateDaily shows the quantity per day.
	RateDaily Rate = iota
	// RateHourlyAverage shows the hourly average over each day.
	RateHourlyAverage
)

// String returns the display name of the rate.
func (r Rate) String() string {
	if r == RateHourlyAverage {
		return "Hourly avg"
	}
	return "Daily"
}

// AlignMode selects how composite date axes are built.
type AlignMode int

const (
	// AlignStrict intersects the date sets of all members.
	AlignStrict AlignMode = iota
	// AlignTrustFirst uses the first member's dates as the axis.
	AlignTrustFirst
)

// String returns the display name of the alignment mode.
func (a AlignMode) String() string {
	if a == AlignTrustFirst {
		return "Trust first"
	}
	return "Strict"
}

// ViewConfig is the immutable set of toggles a dashboard view is computed from.
// Each toggle returns a new value; nothing is mutated in place.
type ViewConfig struct {
	Indicator    Indicator
	Unit         Unit
	Rate         Rate
	Align        AlignMode
	ValidateAxes bool
}

// DefaultViewConfig returns physical flow in energy per day with strict alignment.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		Indicator:    IndicatorPhysicalFlow,
		Unit:         UnitEnergy,
		Rate:         RateDaily,
		Align:        AlignStrict,
		ValidateAxes: true,
	}
}

// ToggleIndicator switches between physical flow and allocation.
func (v ViewConfig) ToggleIndicator() ViewConfig {
	if v.Indicator == IndicatorPhysicalFlow {
		v.Indicator = IndicatorAllocation
	} else {
		v.Indicator = IndicatorPhysicalFlow
	}
	return v
}

// ToggleUnit switches between energy and volume.
func (v ViewConfig) ToggleUnit() ViewConfig {
	if v.Unit == UnitEnergy {
		v.Unit = UnitVolume
	} else {
		v.Unit = UnitEnergy
	}
	return v
}

// ToggleRate switches between daily totals and hourly averages.
func (v ViewConfig) ToggleRate() ViewConfig {
	if v.Rate == RateDaily {
		v.Rate = RateHourlyAverage
	} else {
		v.Rate = RateDaily
	}
	return v
}

// ToggleAlign switches between strict intersection and trusting the first member.
func (v ViewConfig) ToggleAlign() ViewConfig {
	if v.Align == AlignStrict {
		v.Align = AlignTrustFirst
	} else {
		v.Align = AlignStrict
	}
	return v
}

// ToggleValidation turns the axis validation step on or off.
func (v ViewConfig) ToggleValidation() ViewConfig {
	v.ValidateAxes = !v.ValidateAxes
	return v
}

// IsVolume reports whether values are shown as volumes.
func (v ViewConfig) IsVolume() bool {
	return v.Unit == UnitVolume
}

// IsHourlyAverage reports whether values are shown as hourly averages.
func (v ViewConfig) IsHourlyAverage() bool {
	return v.Rate == RateHourlyAverage
}

// String summarises the toggles for captions and logs.
func (v ViewConfig) String() string {
	validation := "off"
	if v.ValidateAxes {
		validation = "on"
	}
	return fmt.Sprintf("%s · %s · %s · align %s · validation %s",
		v.Indicator, v.Unit, v.Rate, v.Align, validation)
}
