package postgres

import (
	"context"
	"database/sql"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// Confirmer commits booking confirmations in a single transaction.
type Confirmer struct {
	db *sql.DB
}

// NewConfirmer creates a new Confirmer.
func NewConfirmer(db *sql.DB) *Confirmer {
	return &Confirmer{db: db}
}

// ConfirmBooking reserves seats and transitions the booking to
// CONFIRMED atomically. Both updates are guarded conditional
// statements, so a stale read before this call cannot oversell the
// ride: the decrement re-validates against the committed row and two
// racing confirms serialize on the row lock, with the loser seeing
// zero rows affected.
func (c *Confirmer) ConfirmBooking(ctx context.Context, bookingID, rideID string, seats int) (outcome repository.ConfirmOutcome, err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Create transaction-scoped repositories.
	txRideRepo := NewRideRepositoryWithTx(tx)
	txBookingRepo := NewBookingRepositoryWithTx(tx)

	reserved, err := txRideRepo.ReserveSeats(ctx, rideID, seats)
	if err != nil {
		return 0, err
	}
	if !reserved {
		_ = tx.Rollback()
		return repository.ConfirmNoCapacity, nil
	}

	confirmed, err := txBookingRepo.updateStatusFromPending(ctx, bookingID, domain.BookingStatusConfirmed)
	if err != nil {
		return 0, err
	}
	if !confirmed {
		// A concurrent confirm already moved the booking out of
		// PENDING. Roll back so the seat decrement is undone.
		_ = tx.Rollback()
		return repository.ConfirmNotPending, nil
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return repository.ConfirmApplied, nil
}

// Ensure Confirmer implements repository.BookingConfirmer.
var _ repository.BookingConfirmer = (*Confirmer)(nil)
