package redis

import (
	"context"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// GeoSearcher implements repository.RideSearcher on top of the Redis
// geo index: GEORADIUS narrows to candidate ride IDs, then the ride
// rows are hydrated and date-filtered in one SQL query.
type GeoSearcher struct {
	geo   RideGeoStoreInterface
	rides repository.RideRepository
}

// NewGeoSearcher creates a new GeoSearcher.
func NewGeoSearcher(geo RideGeoStoreInterface, rides repository.RideRepository) *GeoSearcher {
	return &GeoSearcher{geo: geo, rides: rides}
}

// FindNearby returns rides within radiusMeters of center on date.
func (s *GeoSearcher) FindNearby(ctx context.Context, center domain.Location, radiusMeters float64, date time.Time) ([]*domain.Ride, error) {
	ids, err := s.geo.NearbyRideIDs(ctx, center, radiusMeters)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, nil
	}

	return s.rides.GetByIDsOnDate(ctx, ids, date)
}

// Ensure GeoSearcher implements repository.RideSearcher.
var _ repository.RideSearcher = (*GeoSearcher)(nil)
