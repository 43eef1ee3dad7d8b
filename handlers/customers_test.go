package handlers

import (
	"math"
	"testing"

	"p9e.in/fleetops/models"
)

func TestRouteDistanceKm(t *testing.T) {
	johannesburg := &models.Location{Name: "Johannesburg", Latitude: -26.2041, Longitude: 28.0473}
	durban := &models.Location{Name: "Durban", Latitude: -29.8587, Longitude: 31.0218}
	noCoords := &models.Location{Name: "Unmapped Depot"}

	t.Run("both endpoints mapped", func(t *testing.T) {
		got := routeDistanceKm(models.Route{From: johannesburg, To: durban})
		if got == nil {
			t.Fatal("expected a distance, got nil")
		}
		if math.Abs(*got-495) > 15 {
			t.Errorf("distance = %.1f km, want about 495 km", *got)
		}
	})

	t.Run("endpoint without coordinates", func(t *testing.T) {
		if got := routeDistanceKm(models.Route{From: johannesburg, To: noCoords}); got != nil {
			t.Errorf("expected nil, got %.1f", *got)
		}
	})

	t.Run("endpoint not preloaded", func(t *testing.T) {
		if got := routeDistanceKm(models.Route{From: johannesburg}); got != nil {
			t.Errorf("expected nil, got %.1f", *got)
		}
	})
}

func TestWrapRoutes(t *testing.T) {
	johannesburg := &models.Location{Name: "Johannesburg", Latitude: -26.2041, Longitude: 28.0473}
	durban := &models.Location{Name: "Durban", Latitude: -29.8587, Longitude: 31.0218}

	routes := []models.Route{
		{From: johannesburg, To: durban},
		{From: johannesburg, To: &models.Location{Name: "Unmapped"}},
	}
	out := wrapRoutes(routes)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].DistanceKm == nil {
		t.Error("mapped route should carry a distance")
	}
	if out[1].DistanceKm != nil {
		t.Error("route to an unmapped location should omit the distance")
	}
}
