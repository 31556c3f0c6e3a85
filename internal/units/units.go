// Package units converts the pipeline's SI results into the units a report is printed in
package units

// Unit systems
const (
	Metric = "metric"
	US     = "US"
)

// Conversion factors
const (
	MilesPerKm   = 0.621371
	FeetPerMeter = 3.28084
)

// System returns the name of the unit system selected by metric
func System(metric bool) string {
	if metric {
		return Metric
	}
	return US
}

// Horizontal converts a distance in meters to km or miles
func Horizontal(meters float64, metric bool) (float64, string) {
	if metric {
		return meters / 1000.0, "km"
	}
	return (meters / 1000.0) * MilesPerKm, "mi"
}

// Vertical converts a height in meters to meters or feet
func Vertical(meters float64, metric bool) (float64, string) {
	if metric {
		return meters, "m"
	}
	return meters * FeetPerMeter, "ft"
}
