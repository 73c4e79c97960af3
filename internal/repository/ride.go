package repository

import (
	"context"
	"time"

	"carpool/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetByIDsOnDate retrieves the rides among ids that travel on the
	// given calendar date. Missing IDs are skipped, not errors.
	GetByIDsOnDate(ctx context.Context, ids []string, date time.Time) ([]*domain.Ride, error)

	// ReserveSeats decrements seats_available by seats only if enough
	// seats remain, and reports whether the decrement applied. The
	// check and the decrement are a single atomic statement.
	ReserveSeats(ctx context.Context, id string, seats int) (bool, error)

	// Delete removes a ride. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// RideSearcher finds published rides near a point on a given date.
// The returned set is unordered; empty is a valid result.
type RideSearcher interface {
	FindNearby(ctx context.Context, center domain.Location, radiusMeters float64, date time.Time) ([]*domain.Ride, error)
}
