package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/service"
)

var rideDate = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

func makeRide(id string, source domain.Location, date time.Time) *domain.Ride {
	return &domain.Ride{
		ID:             id,
		Source:         source,
		Destination:    domain.Location{Lat: 13.0827, Lng: 80.2707},
		Date:           date,
		SeatsTotal:     4,
		SeatsAvailable: 4,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestFindNearby_ReturnsRidesWithinRadius(t *testing.T) {
	t.Parallel()

	center := domain.Location{Lat: 12.9716, Lng: 77.5946}

	searcher := NewMockRideSearcher()
	// Roughly 1km north of center.
	searcher.AddRide(makeRide("near", domain.Location{Lat: 12.9806, Lng: 77.5946}, rideDate))
	// Roughly 55km away.
	searcher.AddRide(makeRide("far", domain.Location{Lat: 13.4716, Lng: 77.5946}, rideDate))
	// In radius but on another date.
	searcher.AddRide(makeRide("off-date", domain.Location{Lat: 12.9750, Lng: 77.5946}, rideDate.AddDate(0, 0, 1)))

	svc := service.NewMatchingService(searcher, 0)

	rides, err := svc.FindNearby(context.Background(), center, 10, rideDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rides) != 1 {
		t.Fatalf("expected 1 ride, got %d", len(rides))
	}
	if rides[0].ID != "near" {
		t.Errorf("expected ride 'near', got %q", rides[0].ID)
	}
}

func TestFindNearby_EmptyResultIsNotAnError(t *testing.T) {
	t.Parallel()

	svc := service.NewMatchingService(NewMockRideSearcher(), 0)

	rides, err := svc.FindNearby(context.Background(), domain.Location{Lat: 0, Lng: 0}, 5, rideDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rides) != 0 {
		t.Errorf("expected no rides, got %d", len(rides))
	}
}

func TestFindNearby_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	svc := service.NewMatchingService(NewMockRideSearcher(), 0)
	ctx := context.Background()

	if _, err := svc.FindNearby(ctx, domain.Location{Lat: -91, Lng: 0}, 5, rideDate); !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("expected ErrInvalidLocation, got %v", err)
	}
	if _, err := svc.FindNearby(ctx, domain.Location{Lat: 0, Lng: 0}, 0, rideDate); !errors.Is(err, service.ErrInvalidRadius) {
		t.Errorf("expected ErrInvalidRadius for zero radius, got %v", err)
	}
	if _, err := svc.FindNearby(ctx, domain.Location{Lat: 0, Lng: 0}, -3, rideDate); !errors.Is(err, service.ErrInvalidRadius) {
		t.Errorf("expected ErrInvalidRadius for negative radius, got %v", err)
	}
	if _, err := svc.FindNearby(ctx, domain.Location{Lat: 0, Lng: 0}, 5, time.Time{}); !errors.Is(err, service.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestFindNearby_SearchBackendFailure(t *testing.T) {
	t.Parallel()

	searcher := NewMockRideSearcher()
	searcher.Err = errors.New("index unreachable")

	svc := service.NewMatchingService(searcher, 0)

	_, err := svc.FindNearby(context.Background(), domain.Location{Lat: 0, Lng: 0}, 5, rideDate)
	if !errors.Is(err, service.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestFindNearby_SearchBackendTimeout(t *testing.T) {
	t.Parallel()

	searcher := NewMockRideSearcher()
	searcher.Block = true

	svc := service.NewMatchingService(searcher, 20*time.Millisecond)

	_, err := svc.FindNearby(context.Background(), domain.Location{Lat: 0, Lng: 0}, 5, rideDate)
	if !errors.Is(err, service.ErrCollaboratorTimeout) {
		t.Fatalf("expected ErrCollaboratorTimeout, got %v", err)
	}
}

func TestGeoSearcher_HydratesCandidatesFromRepository(t *testing.T) {
	t.Parallel()

	center := domain.Location{Lat: 12.9716, Lng: 77.5946}

	rideRepo := NewMockRideRepository()
	geoStore := NewMockGeoStore()

	near := makeRide("near", domain.Location{Lat: 12.9806, Lng: 77.5946}, rideDate)
	rideRepo.AddRide(near)
	if err := geoStore.IndexRide(context.Background(), near.ID, near.Source); err != nil {
		t.Fatalf("index: %v", err)
	}

	offDate := makeRide("off-date", domain.Location{Lat: 12.9750, Lng: 77.5946}, rideDate.AddDate(0, 0, 1))
	rideRepo.AddRide(offDate)
	if err := geoStore.IndexRide(context.Background(), offDate.ID, offDate.Source); err != nil {
		t.Fatalf("index: %v", err)
	}

	// Indexed but never persisted; hydration must skip it.
	if err := geoStore.IndexRide(context.Background(), "phantom", domain.Location{Lat: 12.9720, Lng: 77.5946}); err != nil {
		t.Fatalf("index: %v", err)
	}

	searcher := redis.NewGeoSearcher(geoStore, rideRepo)

	rides, err := searcher.FindNearby(context.Background(), center, 10000, rideDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rides) != 1 {
		t.Fatalf("expected 1 ride, got %d", len(rides))
	}
	if rides[0].ID != "near" {
		t.Errorf("expected ride 'near', got %q", rides[0].ID)
	}
}

func TestGeoSearcher_EmptyIndexSkipsHydration(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(makeRide("near", domain.Location{Lat: 12.9806, Lng: 77.5946}, rideDate))

	searcher := redis.NewGeoSearcher(NewMockGeoStore(), rideRepo)

	rides, err := searcher.FindNearby(context.Background(), domain.Location{Lat: 12.9716, Lng: 77.5946}, 10000, rideDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rides != nil {
		t.Errorf("expected nil result from empty index, got %v", rides)
	}
}
