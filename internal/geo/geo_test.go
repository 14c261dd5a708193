package geo

import (
	"math"
	"testing"
)

func TestDistanceMilesMatchesKnownPair(t *testing.T) {
	branch := Coordinate{Latitude: 35.23097, Longitude: -114.03685}
	center := Coordinate{Latitude: 35.07057, Longitude: -114.58937}

	got := branch.DistanceMiles(center)
	if math.Abs(got-33.12) > 0.01 {
		t.Fatalf("expected ~33.12 miles, got %v", got)
	}
}

func TestDistanceIsSymmetricAndZeroForSamePoint(t *testing.T) {
	a := Coordinate{Latitude: 35.1504, Longitude: -114.57632}
	b := Coordinate{Latitude: 35.16553, Longitude: -114.55673}

	if d := a.DistanceMeters(a); d != 0 {
		t.Fatalf("expected zero distance to self, got %v", d)
	}
	if math.Abs(a.DistanceMeters(b)-b.DistanceMeters(a)) > 1e-9 {
		t.Fatalf("distance is not symmetric")
	}
}

func TestDistanceOrderingNearVersusFar(t *testing.T) {
	center := Coordinate{Latitude: 35.1504, Longitude: -114.57632}
	near := Coordinate{Latitude: 35.15, Longitude: -114.5567}
	far := Coordinate{Latitude: 35.16553, Longitude: -114.55673}

	if center.DistanceMiles(near) >= center.DistanceMiles(far) {
		t.Fatalf("expected %v to be closer than %v", near, far)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		c    Coordinate
		want bool
	}{
		{Coordinate{0, 0}, true},
		{Coordinate{90, 180}, true},
		{Coordinate{-90, -180}, true},
		{Coordinate{90.1, 0}, false},
		{Coordinate{0, -180.5}, false},
		{Coordinate{math.NaN(), 0}, false},
	}

	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.want {
			t.Errorf("Coordinate%v.Valid() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestCellPrefixesAgree(t *testing.T) {
	c := Coordinate{Latitude: 35.1504, Longitude: -114.57632}

	coarse := c.Cell(LogCellPrecision)
	fine := c.Cell(9)

	if len(coarse) != LogCellPrecision {
		t.Fatalf("expected %d characters, got %q", LogCellPrecision, coarse)
	}
	if fine[:LogCellPrecision] != coarse {
		t.Fatalf("expected %q to prefix %q", coarse, fine)
	}
}
