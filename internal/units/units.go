// Package units converts between the distance units used by the search.
package units

const (
	// KilometersPerMile is the conversion factor used for the search radius.
	KilometersPerMile = 1.60934
	// MetersPerMile is the conversion factor used for provider distances.
	MetersPerMile = 1609.34
)

// KilometersFromMiles converts a whole number of miles to kilometers.
func KilometersFromMiles(miles int) float64 {
	return float64(miles) * KilometersPerMile
}

// MilesFromMeters converts meters to miles.
func MilesFromMeters(meters float64) float64 {
	return meters / MetersPerMile
}
