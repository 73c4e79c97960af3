package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/service"
)

func TestConfirm_ConcurrentBookingsLastSeat(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(1)
	f.addPendingBooking("booking-a", 1)
	f.addPendingBooking("booking-b", 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, id := range []string{"booking-a", "booking-b"} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = f.svc.Confirm(context.Background(), id)
		}(i, id)
	}
	wg.Wait()

	var confirmed, refused int
	for _, err := range results {
		switch {
		case err == nil:
			confirmed++
		case errors.Is(err, service.ErrInsufficientSeats):
			refused++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if confirmed != 1 || refused != 1 {
		t.Fatalf("expected exactly one winner for the last seat, got %d confirmed, %d refused", confirmed, refused)
	}

	if got := f.rides.GetRide("ride-1").SeatsAvailable; got != 0 {
		t.Errorf("expected 0 seats remaining, got %d", got)
	}

	// The loser must still be confirmable once capacity returns.
	var pending int
	for _, id := range []string{"booking-a", "booking-b"} {
		if f.bookings.GetBooking(id).Status == domain.BookingStatusPending {
			pending++
		}
	}
	if pending != 1 {
		t.Errorf("expected the refused booking to remain PENDING, got %d pending", pending)
	}
}

func TestConfirm_ConcurrentConfirmsNeverOversell(t *testing.T) {
	t.Parallel()

	const (
		seatsAvailable = 5
		bookingCount   = 20
	)

	f := newBookingFixture(seatsAvailable)
	ids := make([]string, bookingCount)
	for i := range ids {
		ids[i] = fmt.Sprintf("booking-%d", i)
		f.addPendingBooking(ids[i], 1)
	}

	var wg sync.WaitGroup
	results := make([]error, bookingCount)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = f.svc.Confirm(context.Background(), id)
		}(i, id)
	}
	wg.Wait()

	var confirmed int
	for i, err := range results {
		switch {
		case err == nil:
			confirmed++
		case errors.Is(err, service.ErrInsufficientSeats):
		default:
			t.Fatalf("booking %s: unexpected error: %v", ids[i], err)
		}
	}

	if confirmed != seatsAvailable {
		t.Errorf("expected %d confirmations, got %d", seatsAvailable, confirmed)
	}

	ride := f.rides.GetRide("ride-1")
	if ride.SeatsAvailable != 0 {
		t.Errorf("expected 0 seats remaining, got %d", ride.SeatsAvailable)
	}
	if ride.SeatsAvailable < 0 {
		t.Fatalf("capacity went negative: %d", ride.SeatsAvailable)
	}

	// Confirmed statuses must match seats consumed exactly.
	var statusConfirmed int
	for _, id := range ids {
		if f.bookings.GetBooking(id).Status == domain.BookingStatusConfirmed {
			statusConfirmed++
		}
	}
	if statusConfirmed != confirmed {
		t.Errorf("confirmed statuses (%d) disagree with successful calls (%d)", statusConfirmed, confirmed)
	}
}

func TestConfirm_ConcurrentConfirmsOfSameBooking(t *testing.T) {
	t.Parallel()

	const attempts = 10

	f := newBookingFixture(4)
	f.addPendingBooking("booking-1", 2)

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.svc.Confirm(context.Background(), "booking-1")
		}(i)
	}
	wg.Wait()

	var confirmed int
	for _, err := range results {
		switch {
		case err == nil:
			confirmed++
		case errors.Is(err, service.ErrBookingNotPending):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if confirmed != 1 {
		t.Errorf("expected exactly one successful confirm, got %d", confirmed)
	}
	if got := f.rides.GetRide("ride-1").SeatsAvailable; got != 2 {
		t.Errorf("seats decremented %d times, want once (2 remaining, got %d)", 4-got, got)
	}
}
