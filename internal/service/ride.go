package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// RideService handles ride publishing and booking creation.
type RideService struct {
	rideRepo    repository.RideRepository
	bookingRepo repository.BookingRepository
	geoIndex    redis.RideGeoStoreInterface // nil when the SQL searcher is active
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository, bookingRepo repository.BookingRepository, geoIndex redis.RideGeoStoreInterface) *RideService {
	return &RideService{
		rideRepo:    rideRepo,
		bookingRepo: bookingRepo,
		geoIndex:    geoIndex,
	}
}

// PublishRideRequest contains the parameters for publishing a ride.
type PublishRideRequest struct {
	Source      domain.Location
	Destination domain.Location
	Date        time.Time
	SeatsTotal  int
}

// PublishRide creates a ride with all seats available and indexes its
// source location for radius search.
func (s *RideService) PublishRide(ctx context.Context, req PublishRideRequest) (*domain.Ride, error) {
	if !req.Source.Valid() {
		return nil, ErrInvalidSource
	}
	if !req.Destination.Valid() {
		return nil, ErrInvalidDestination
	}
	if req.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if req.SeatsTotal < 1 {
		return nil, ErrInvalidSeatCount
	}

	ride := &domain.Ride{
		ID:             uuid.New().String(),
		Source:         req.Source,
		Destination:    req.Destination,
		Date:           req.Date,
		SeatsTotal:     req.SeatsTotal,
		SeatsAvailable: req.SeatsTotal,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	if s.geoIndex != nil {
		if err := s.geoIndex.IndexRide(ctx, ride.ID, ride.Source); err != nil {
			// The ride row exists but searches will miss it; surface
			// the failure rather than publish a half-indexed ride.
			return nil, err
		}
	}

	return ride, nil
}

// CancelRide withdraws a published ride: the row is deleted first, so
// a ride that lingers in the geo index after a partial failure shows
// up as a candidate that hydration skips, never as a ghost result.
func (s *RideService) CancelRide(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidRideID
	}

	if err := s.rideRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.geoIndex != nil {
		if err := s.geoIndex.RemoveRide(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// GetRide retrieves a ride by ID.
func (s *RideService) GetRide(ctx context.Context, id string) (*domain.Ride, error) {
	if id == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, id)
}

// CreateBookingRequest contains the parameters for requesting seats.
type CreateBookingRequest struct {
	RideID      string
	SeatsBooked int
}

// CreateBooking creates a pending booking for a ride. Capacity is not
// checked here; that happens at confirmation time.
func (s *RideService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.SeatsBooked < 1 {
		return nil, ErrInvalidSeatCount
	}

	// Verify the ride exists so the booking never dangles.
	if _, err := s.rideRepo.GetByID(ctx, req.RideID); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:          uuid.New().String(),
		RideID:      req.RideID,
		SeatsBooked: req.SeatsBooked,
		Status:      domain.BookingStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetBooking retrieves a booking by ID.
func (s *RideService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, ErrInvalidBookingID
	}
	return s.bookingRepo.GetByID(ctx, id)
}
