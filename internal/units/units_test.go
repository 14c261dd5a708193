package units

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestKilometersFromMiles(t *testing.T) {
	tests := []struct {
		miles int
		want  float64
	}{
		{0, 0},
		{1, 1.60934},
		{30, 48.2802},
		{100, 160.934},
	}

	for _, tt := range tests {
		got := KilometersFromMiles(tt.miles)
		if math.Abs(got-tt.want) > epsilon {
			t.Errorf("KilometersFromMiles(%d) = %v, want %v", tt.miles, got, tt.want)
		}
	}
}

func TestMilesFromMeters(t *testing.T) {
	tests := []struct {
		meters float64
		want   float64
	}{
		{0, 0},
		{1609.34, 1},
		{16093.4, 10},
		{804.67, 0.5},
	}

	for _, tt := range tests {
		got := MilesFromMeters(tt.meters)
		if math.Abs(got-tt.want) > epsilon {
			t.Errorf("MilesFromMeters(%v) = %v, want %v", tt.meters, got, tt.want)
		}
	}
}
