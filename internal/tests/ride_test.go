package tests

import (
	"context"
	"errors"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

func publishRequest() service.PublishRideRequest {
	return service.PublishRideRequest{
		Source:      domain.Location{Lat: 12.9716, Lng: 77.5946},
		Destination: domain.Location{Lat: 13.0827, Lng: 80.2707},
		Date:        rideDate,
		SeatsTotal:  3,
	}
}

func TestPublishRide_Success(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	bookingRepo := NewMockBookingRepository(rideRepo)
	geoStore := NewMockGeoStore()

	svc := service.NewRideService(rideRepo, bookingRepo, geoStore)

	ride, err := svc.PublishRide(context.Background(), publishRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.ID == "" {
		t.Error("expected generated ride ID")
	}
	if ride.SeatsAvailable != ride.SeatsTotal {
		t.Errorf("new ride must have all seats available, got %d of %d", ride.SeatsAvailable, ride.SeatsTotal)
	}

	stored := rideRepo.GetRide(ride.ID)
	if stored == nil {
		t.Fatal("ride not persisted")
	}

	ids, err := geoStore.NearbyRideIDs(context.Background(), ride.Source, 100)
	if err != nil {
		t.Fatalf("geo lookup: %v", err)
	}
	if len(ids) != 1 || ids[0] != ride.ID {
		t.Errorf("ride not indexed for search, got %v", ids)
	}
}

func TestPublishRide_WithoutGeoIndex(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), nil)

	ride, err := svc.PublishRide(context.Background(), publishRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rideRepo.GetRide(ride.ID) == nil {
		t.Fatal("ride not persisted")
	}
}

func TestPublishRide_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), nil)
	ctx := context.Background()

	req := publishRequest()
	req.Source.Lat = 95
	if _, err := svc.PublishRide(ctx, req); !errors.Is(err, service.ErrInvalidSource) {
		t.Errorf("expected ErrInvalidSource, got %v", err)
	}

	req = publishRequest()
	req.Destination.Lng = -195
	if _, err := svc.PublishRide(ctx, req); !errors.Is(err, service.ErrInvalidDestination) {
		t.Errorf("expected ErrInvalidDestination, got %v", err)
	}

	req = publishRequest()
	req.SeatsTotal = 0
	if _, err := svc.PublishRide(ctx, req); !errors.Is(err, service.ErrInvalidSeatCount) {
		t.Errorf("expected ErrInvalidSeatCount, got %v", err)
	}

	if rideRepo.CreateCallCount != 0 {
		t.Errorf("invalid requests must not reach storage, Create called %d times", rideRepo.CreateCallCount)
	}
}

func TestPublishRide_IndexFailureSurfaces(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	geoStore := NewMockGeoStore()
	geoStore.IndexError = errors.New("redis down")

	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), geoStore)

	if _, err := svc.PublishRide(context.Background(), publishRequest()); err == nil {
		t.Fatal("expected error when geo indexing fails")
	}
}

func TestCancelRide_RemovesRideAndIndexEntry(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	geoStore := NewMockGeoStore()
	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), geoStore)

	ride, err := svc.PublishRide(context.Background(), publishRequest())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if err := svc.CancelRide(context.Background(), ride.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetRide(context.Background(), ride.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after cancel, got %v", err)
	}

	ids, err := geoStore.NearbyRideIDs(context.Background(), ride.Source, 100)
	if err != nil {
		t.Fatalf("geo lookup: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("cancelled ride still indexed for search: %v", ids)
	}
}

func TestCancelRide_UnknownRide(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), NewMockGeoStore())

	if err := svc.CancelRide(context.Background(), "no-such-ride"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.CancelRide(context.Background(), ""); !errors.Is(err, service.ErrInvalidRideID) {
		t.Errorf("expected ErrInvalidRideID, got %v", err)
	}
}

func TestCreateBooking_Success(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	bookingRepo := NewMockBookingRepository(rideRepo)
	svc := service.NewRideService(rideRepo, bookingRepo, nil)

	ride, err := svc.PublishRide(context.Background(), publishRequest())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	booking, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		RideID:      ride.ID,
		SeatsBooked: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("new booking must be PENDING, got %s", booking.Status)
	}

	// Creation never touches capacity; that happens at confirmation.
	if got := rideRepo.GetRide(ride.ID).SeatsAvailable; got != ride.SeatsTotal {
		t.Errorf("seats changed at booking creation, got %d", got)
	}
}

func TestCreateBooking_UnknownRide(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), nil)

	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		RideID:      "no-such-ride",
		SeatsBooked: 1,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBooking_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), nil)
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, service.CreateBookingRequest{RideID: "", SeatsBooked: 1}); !errors.Is(err, service.ErrInvalidRideID) {
		t.Errorf("expected ErrInvalidRideID, got %v", err)
	}
	if _, err := svc.CreateBooking(ctx, service.CreateBookingRequest{RideID: "ride-1", SeatsBooked: 0}); !errors.Is(err, service.ErrInvalidSeatCount) {
		t.Errorf("expected ErrInvalidSeatCount, got %v", err)
	}
}

func TestGetRide_UnknownID(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), nil)

	if _, err := svc.GetRide(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetRide(context.Background(), ""); !errors.Is(err, service.ErrInvalidRideID) {
		t.Errorf("expected ErrInvalidRideID, got %v", err)
	}
}

func TestGetBooking_UnknownID(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockBookingRepository(rideRepo), nil)

	if _, err := svc.GetBooking(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetBooking(context.Background(), ""); !errors.Is(err, service.ErrInvalidBookingID) {
		t.Errorf("expected ErrInvalidBookingID, got %v", err)
	}
}
