package redis

import (
	"context"

	"carpool/internal/domain"
)

// RideGeoStoreInterface defines the interface for the ride geo index.
type RideGeoStoreInterface interface {
	IndexRide(ctx context.Context, rideID string, source domain.Location) error
	NearbyRideIDs(ctx context.Context, center domain.Location, radiusMeters float64) ([]string, error)
	RemoveRide(ctx context.Context, rideID string) error
}

// Ensure concrete types implement interfaces.
var _ RideGeoStoreInterface = (*RideGeoStore)(nil)
