package format

import (
	"fmt"
	"math"
)

// RoundToPrecision rounds v to the given number of digits after the decimal
// point, half away from zero.
func RoundToPrecision(v float64, digits int) float64 {
	divisor := math.Pow(10, float64(digits))
	return math.Round(v*divisor) / divisor
}

// Distance renders a distance in miles rounded to one decimal, e.g.
// "1.2 miles" or "1.0 mile".
func Distance(miles float64) string {
	rounded := RoundToPrecision(miles, 1)
	unit := "miles"
	if rounded == 1.0 {
		unit = "mile"
	}
	return fmt.Sprintf("%.1f %s", rounded, unit)
}
