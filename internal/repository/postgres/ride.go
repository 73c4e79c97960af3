package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
// It also implements repository.RideSearcher using the earthdistance
// extension (requires CREATE EXTENSION cube, earthdistance).
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, source_lat, source_lng, destination_lat, destination_lng, ride_date, seats_total, seats_available, created_at`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.Source.Lat,
		ride.Source.Lng,
		ride.Destination.Lat,
		ride.Destination.Lng,
		ride.Date,
		ride.SeatsTotal,
		ride.SeatsAvailable,
		ride.CreatedAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return ride, nil
}

// GetByIDsOnDate retrieves the rides among ids that travel on date.
func (r *RideRepository) GetByIDsOnDate(ctx context.Context, ids []string, date time.Time) ([]*domain.Ride, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = ANY($1) AND ride_date = $2`

	rows, err := r.q.QueryContext(ctx, query, pq.Array(ids), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRides(rows)
}

// FindNearby returns rides whose source lies within radiusMeters of
// center and whose travel date matches.
func (r *RideRepository) FindNearby(ctx context.Context, center domain.Location, radiusMeters float64, date time.Time) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE ride_date = $4
		  AND earth_distance(ll_to_earth(source_lat, source_lng), ll_to_earth($1, $2)) <= $3
	`

	rows, err := r.q.QueryContext(ctx, query, center.Lat, center.Lng, radiusMeters, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRides(rows)
}

// ReserveSeats atomically decrements seats_available if enough seats
// remain. The row count tells us whether the decrement applied; a
// concurrent confirm that drained the seats first simply yields zero
// rows here.
func (r *RideRepository) ReserveSeats(ctx context.Context, id string, seats int) (bool, error) {
	query := `
		UPDATE rides
		SET seats_available = seats_available - $2
		WHERE id = $1 AND seats_available >= $2
	`

	result, err := r.q.ExecContext(ctx, query, id, seats)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// Delete removes a ride by ID.
func (r *RideRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM rides WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	err := row.Scan(
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
		return nil, err
	}
	return &ride, nil
}

func collectRides(rows *sql.Rows) ([]*domain.Ride, error) {
	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Ensure interfaces are satisfied.
var (
	_ repository.RideRepository = (*RideRepository)(nil)
	_ repository.RideSearcher   = (*RideRepository)(nil)
)
