package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, ride_id, seats_booked, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.RideID,
		booking.SeatsBooked,
		booking.Status,
		booking.CreatedAt,
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT id, ride_id, seats_booked, status, created_at
		FROM bookings WHERE id = $1
	`

	var booking domain.Booking
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.RideID,
		&booking.SeatsBooked,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &booking, nil
}

// GetWithRide retrieves a booking joined with its ride in one round trip.
func (r *BookingRepository) GetWithRide(ctx context.Context, id string) (*domain.Booking, *domain.Ride, error) {
	query := `
		SELECT b.id, b.ride_id, b.seats_booked, b.status, b.created_at,
		       r.id, r.source_lat, r.source_lng, r.destination_lat, r.destination_lng,
		       r.ride_date, r.seats_total, r.seats_available, r.created_at
		FROM bookings b
		JOIN rides r ON r.id = b.ride_id
		WHERE b.id = $1
	`

	var booking domain.Booking
	var ride domain.Ride
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.RideID,
		&booking.SeatsBooked,
		&booking.Status,
		&booking.CreatedAt,
		&ride.ID,
		&ride.Source.Lat,
		&ride.Source.Lng,
		&ride.Destination.Lat,
		&ride.Destination.Lng,
		&ride.Date,
		&ride.SeatsTotal,
		&ride.SeatsAvailable,
		&ride.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, repository.ErrNotFound
		}
		return nil, nil, err
	}

	return &booking, &ride, nil
}

// updateStatusFromPending flips the booking out of PENDING. The status
// guard in the WHERE clause makes a second confirm on the same booking
// a no-op reported through the row count.
func (r *BookingRepository) updateStatusFromPending(ctx context.Context, id string, status domain.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2
		WHERE id = $1 AND status = $3
	`

	result, err := r.q.ExecContext(ctx, query, id, status, domain.BookingStatusPending)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// Ensure BookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*BookingRepository)(nil)
