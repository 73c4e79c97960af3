package geo

import (
	"context"
	"math"

	"carpool/internal/domain"
)

// Distance computes the distance in meters between two points.
// Implementations must be symmetric, non-negative, and return zero
// only when the points are equal.
type Distance interface {
	Meters(ctx context.Context, a, b domain.Location) (float64, error)
}

const earthRadiusMeters = 6371000.0

// Haversine computes great-circle distances. It never fails and needs
// no external service, which makes it the default Distance provider.
type Haversine struct{}

// NewHaversine creates a new Haversine distance provider.
func NewHaversine() *Haversine {
	return &Haversine{}
}

// Meters returns the great-circle distance between a and b. Identical
// points yield exactly zero, untouched by rounding in the trig path.
func (h *Haversine) Meters(_ context.Context, a, b domain.Location) (float64, error) {
	if a.Equal(b) {
		return 0, nil
	}
	return HaversineMeters(a.Lat, a.Lng, b.Lat, b.Lng), nil
}

// HaversineMeters returns the great-circle distance in meters between
// two points given in decimal degrees.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Ensure interface is satisfied.
var _ Distance = (*Haversine)(nil)
