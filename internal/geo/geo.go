// Package geo holds the coordinate type shared by search parameters and
// rental providers, along with great-circle distance math.
package geo

import (
	"fmt"
	"math"

	"github.com/mmcloughlin/geohash"

	"rentalsearch/internal/units"
)

const (
	// earthRadiusMeters is the IUGG mean Earth radius.
	earthRadiusMeters = 6371008.8

	// LogCellPrecision is the geohash length used when a location is written
	// to logs. Five characters is roughly a 5km cell.
	LogCellPrecision = 5
)

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Valid reports whether the coordinate lies within the WGS84 ranges.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180 &&
		!math.IsNaN(c.Latitude) && !math.IsNaN(c.Longitude)
}

// DistanceMeters returns the haversine distance to other.
func (c Coordinate) DistanceMeters(other Coordinate) float64 {
	lat1 := radians(c.Latitude)
	lat2 := radians(other.Latitude)
	dLat := lat2 - lat1
	dLon := radians(other.Longitude - c.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}

// DistanceMiles returns the haversine distance to other in miles.
func (c Coordinate) DistanceMiles(other Coordinate) float64 {
	return units.MilesFromMeters(c.DistanceMeters(other))
}

// Cell returns the geohash of the coordinate at the given precision.
func (c Coordinate) Cell(precision uint) string {
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}

// String renders the coordinate as "lat,lon".
func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.Latitude, c.Longitude)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
