package domain

import "time"

// Ride represents a published ride offer with a fixed seat capacity.
// SeatsAvailable is only ever decremented, and only by a successful
// booking confirmation.
type Ride struct {
	ID             string
	Source         Location
	Destination    Location
	Date           time.Time // calendar date of travel, midnight UTC
	SeatsTotal     int
	SeatsAvailable int
	CreatedAt      time.Time
}

// HasCapacity reports whether the ride can still seat the requested count.
func (r *Ride) HasCapacity(seats int) bool {
	return r.SeatsAvailable >= seats
}
