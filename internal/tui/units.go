package tui

import (
	"fmt"

	"runcoach/internal/config"
)

const milesPerKm = 0.621371

// Units provides unit conversion and formatting based on user preferences.
// The rest of the app speaks miles and seconds-per-mile; conversion happens
// only at display time.
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatDistance formats a distance stored in miles to the preferred unit
func (u Units) FormatDistance(miles float64) string {
	if u.IsMiles() {
		return fmt.Sprintf("%.1f mi", miles)
	}
	return fmt.Sprintf("%.1f km", miles/milesPerKm)
}

// FormatPace formats a pace stored in seconds per mile to the preferred unit
func (u Units) FormatPace(secPerMile float64) string {
	if secPerMile <= 0 {
		return "-"
	}

	paceSeconds := secPerMile
	if !u.IsMiles() {
		paceSeconds = secPerMile * milesPerKm
	}

	total := int(paceSeconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatPaceWithUnit formats pace with the unit label
func (u Units) FormatPaceWithUnit(secPerMile float64) string {
	pace := u.FormatPace(secPerMile)
	if pace == "-" {
		return pace
	}
	return pace + "/" + u.DistanceLabel()
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit != "km"
}
