package geo

import (
	"context"
	"math"
	"testing"

	"carpool/internal/domain"
)

func TestHaversineMeters_KnownDistance(t *testing.T) {
	t.Parallel()

	// Paris to London, roughly 344km great-circle.
	got := HaversineMeters(48.8566, 2.3522, 51.5074, -0.1278)

	if math.Abs(got-343900) > 2000 {
		t.Errorf("expected about 343.9km, got %.0fm", got)
	}
}

func TestHaversineMeters_Symmetry(t *testing.T) {
	t.Parallel()

	ab := HaversineMeters(12.9716, 77.5946, 13.0827, 80.2707)
	ba := HaversineMeters(13.0827, 80.2707, 12.9716, 77.5946)

	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestHaversineMeters_ZeroForSamePoint(t *testing.T) {
	t.Parallel()

	if got := HaversineMeters(45.0, 90.0, 45.0, 90.0); got != 0 {
		t.Errorf("expected 0 for identical points, got %v", got)
	}
}

func TestHaversine_ImplementsDistance(t *testing.T) {
	t.Parallel()

	var d Distance = NewHaversine()

	got, err := d.Meters(context.Background(), domain.Location{Lat: 0, Lng: 0}, domain.Location{Lat: 0, Lng: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One degree of longitude at the equator is about 111.2km.
	if math.Abs(got-111195) > 500 {
		t.Errorf("expected about 111.2km, got %.0fm", got)
	}
}
