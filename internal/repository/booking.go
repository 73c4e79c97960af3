package repository

import (
	"context"

	"carpool/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetWithRide retrieves a booking joined with its ride.
	GetWithRide(ctx context.Context, id string) (*domain.Booking, *domain.Ride, error)
}

// ConfirmOutcome is the result of an atomic confirmation attempt.
type ConfirmOutcome int

const (
	// ConfirmApplied means the seats were reserved and the booking
	// transitioned to CONFIRMED.
	ConfirmApplied ConfirmOutcome = iota

	// ConfirmNoCapacity means the ride did not have enough seats at
	// commit time. Nothing was changed.
	ConfirmNoCapacity

	// ConfirmNotPending means the booking had already left PENDING.
	// Nothing was changed.
	ConfirmNotPending
)

// BookingConfirmer commits a seat reservation. Implementations must
// re-validate capacity against the current committed value inside one
// isolated transaction: decrement the ride's seats and flip the
// booking to CONFIRMED together, or change nothing at all.
type BookingConfirmer interface {
	ConfirmBooking(ctx context.Context, bookingID, rideID string, seats int) (ConfirmOutcome, error)
}
