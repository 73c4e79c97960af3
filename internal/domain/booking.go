package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusRejected  BookingStatus = "REJECTED"
)

// Booking represents a rider's request for seats on a ride.
// Status moves one way only: PENDING to CONFIRMED or REJECTED.
type Booking struct {
	ID          string
	RideID      string
	SeatsBooked int
	Status      BookingStatus
	CreatedAt   time.Time
}

// IsPending reports whether the booking can still be confirmed.
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}
