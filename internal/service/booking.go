package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carpool/internal/repository"
)

// BookingService confirms pending bookings against ride capacity.
type BookingService struct {
	bookingRepo repository.BookingRepository
	confirmer   repository.BookingConfirmer
	timeout     time.Duration
}

// NewBookingService creates a new BookingService.
func NewBookingService(bookingRepo repository.BookingRepository, confirmer repository.BookingConfirmer, timeout time.Duration) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		confirmer:   confirmer,
		timeout:     timeout,
	}
}

// Confirm validates and commits a seat reservation for the booking.
//
// The read below may be stale by commit time, so it only drives the
// cheap failure paths. The authoritative capacity check is the
// conditional decrement inside the confirmer's transaction, which
// re-validates against the committed row. An insufficient-capacity
// booking is left PENDING, never auto-rejected.
func (s *BookingService) Confirm(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return ErrInvalidBookingID
	}

	callCtx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	booking, ride, err := s.bookingRepo.GetWithRide(callCtx, bookingID)
	if err != nil {
		return wrapStorageErr(err)
	}

	if !booking.IsPending() {
		return ErrBookingNotPending
	}

	if !ride.HasCapacity(booking.SeatsBooked) {
		return ErrInsufficientSeats
	}

	outcome, err := s.confirmer.ConfirmBooking(callCtx, booking.ID, booking.RideID, booking.SeatsBooked)
	if err != nil {
		return wrapStorageErr(err)
	}

	switch outcome {
	case repository.ConfirmApplied:
		return nil
	case repository.ConfirmNoCapacity:
		return ErrInsufficientSeats
	case repository.ConfirmNotPending:
		return ErrBookingNotPending
	default:
		return fmt.Errorf("unexpected confirm outcome %d", outcome)
	}
}

func (s *BookingService) collaboratorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// wrapStorageErr tags deadline failures so callers can tell transient
// faults from everything else. Other errors pass through unchanged
// with their original message.
func wrapStorageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrCollaboratorTimeout, err)
	}
	return err
}
