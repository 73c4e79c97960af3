package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"carpool/internal/domain"
)

// RoutedDistance resolves distances through the Google Maps Directions
// API, yielding driving distance rather than straight-line distance.
type RoutedDistance struct {
	client *maps.Client
}

// NewRoutedDistance creates a RoutedDistance with the given API key.
func NewRoutedDistance(apiKey string) (*RoutedDistance, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RoutedDistance{client: client}, nil
}

// Meters returns the driving distance of the first route leg between
// a and b. Driving mode is assumed.
func (r *RoutedDistance) Meters(ctx context.Context, a, b domain.Location) (float64, error) {
	req := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", a.Lat, a.Lng),
		Destination: fmt.Sprintf("%f,%f", b.Lat, b.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := r.client.Directions(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no route found")
	}

	return float64(routes[0].Legs[0].Distance.Meters), nil
}

var _ Distance = (*RoutedDistance)(nil)
