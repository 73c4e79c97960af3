package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"carpool/internal/domain"
)

const rideLocationKey = "rides:locations"

// RideGeoStore indexes ride source locations in Redis for radius queries.
type RideGeoStore struct {
	client *redis.Client
}

// NewRideGeoStore creates a new RideGeoStore.
func NewRideGeoStore(client *redis.Client) *RideGeoStore {
	return &RideGeoStore{client: client}
}

// IndexRide stores a ride's source location using GEOADD.
func (s *RideGeoStore) IndexRide(ctx context.Context, rideID string, source domain.Location) error {
	return s.client.GeoAdd(ctx, rideLocationKey, &redis.GeoLocation{
		Name:      rideID,
		Longitude: source.Lng,
		Latitude:  source.Lat,
	}).Err()
}

// NearbyRideIDs returns the IDs of rides whose source lies within
// radiusMeters of the center, nearest first.
func (s *RideGeoStore) NearbyRideIDs(ctx context.Context, center domain.Location, radiusMeters float64) ([]string, error) {
	results, err := s.client.GeoRadius(ctx, rideLocationKey, center.Lng, center.Lat, &redis.GeoRadiusQuery{
		Radius: radiusMeters,
		Unit:   "m",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Name)
	}

	return ids, nil
}

// RemoveRide removes a ride from the geo index.
func (s *RideGeoStore) RemoveRide(ctx context.Context, rideID string) error {
	return s.client.ZRem(ctx, rideLocationKey, rideID).Err()
}
