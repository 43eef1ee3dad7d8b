package utils

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestHaversineKm(t *testing.T) {
	johannesburg := orb.Point{28.0473, -26.2041}
	durban := orb.Point{31.0218, -29.8587}

	got := HaversineKm(johannesburg, durban)
	// Road signs say ~495 km great-circle.
	if math.Abs(got-495) > 15 {
		t.Errorf("JHB-DBN distance = %.1f km, expected about 495", got)
	}

	if d := HaversineKm(johannesburg, johannesburg); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		lat, lng float64
		want     bool
	}{
		{-26.2, 28.0, true},
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, 181, false},
		{-91, 0, false},
	}
	for _, tt := range tests {
		if got := ValidCoordinate(tt.lat, tt.lng); got != tt.want {
			t.Errorf("ValidCoordinate(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
		}
	}
}
