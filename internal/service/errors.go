package service

import "errors"

var (
	// ErrInvalidSource is returned when the source location is out of range.
	ErrInvalidSource = errors.New("invalid source location")

	// ErrInvalidDestination is returned when the destination location is out of range.
	ErrInvalidDestination = errors.New("invalid destination location")

	// ErrInvalidLocation is returned when a search center is out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidSeatCount is returned when a seat count is below 1.
	ErrInvalidSeatCount = errors.New("seat count must be at least 1")

	// ErrInvalidRadius is returned when a search radius is not positive.
	ErrInvalidRadius = errors.New("search radius must be positive")

	// ErrInvalidDate is returned when a travel date is missing.
	ErrInvalidDate = errors.New("travel date is required")

	// ErrInvalidRideID is returned when a ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidBookingID is returned when a booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrBookingNotPending is returned when confirming a booking that
	// has already been confirmed or rejected.
	ErrBookingNotPending = errors.New("booking is not in pending status")

	// ErrInsufficientSeats is returned when a ride cannot seat the
	// booking. The booking stays pending; the caller decides whether
	// to retry or reject.
	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrDistanceUnavailable is returned when the distance provider fails.
	ErrDistanceUnavailable = errors.New("distance provider unavailable")

	// ErrSearchUnavailable is returned when the ride search collaborator fails.
	ErrSearchUnavailable = errors.New("ride search unavailable")

	// ErrCollaboratorTimeout is returned when a collaborator call
	// exceeds its deadline. Safe for the caller to retry with backoff.
	ErrCollaboratorTimeout = errors.New("collaborator call timed out")
)
