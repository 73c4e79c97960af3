package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"carpool/internal/domain"
	"carpool/internal/geo"
	"carpool/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount       int32
	ReserveSeatsCallCount int32

	// Error injection
	CreateError       error
	ReserveSeatsError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetByIDsOnDate(ctx context.Context, ids []string, date time.Time) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, id := range ids {
		ride, ok := m.rides[id]
		if !ok || !ride.Date.Equal(date) {
			continue
		}
		copy := *ride
		result = append(result, &copy)
	}
	return result, nil
}

// ReserveSeats performs the conditional decrement under the lock, the
// in-memory analog of the guarded UPDATE.
func (m *MockRideRepository) ReserveSeats(ctx context.Context, id string, seats int) (bool, error) {
	atomic.AddInt32(&m.ReserveSeatsCallCount, 1)
	if m.ReserveSeatsError != nil {
		return false, m.ReserveSeatsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return false, nil
	}
	if ride.SeatsAvailable < seats {
		return false, nil
	}
	ride.SeatsAvailable -= seats
	return true, nil
}

func (m *MockRideRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rides, id)
	return nil
}

// GetRide returns the ride by ID (for test assertions).
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[id]
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
// It joins against a MockRideRepository for GetWithRide.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	rides    *MockRideRepository

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError      error
	GetWithRideError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository(rides *MockRideRepository) *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
		rides:    rides,
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetWithRide(ctx context.Context, id string) (*domain.Booking, *domain.Ride, error) {
	if m.GetWithRideError != nil {
		return nil, nil, m.GetWithRideError
	}
	booking, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ride, err := m.rides.GetByID(ctx, booking.RideID)
	if err != nil {
		return nil, nil, err
	}
	return booking, ride, nil
}

// GetBooking returns the booking by ID (for test assertions).
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// ──────────────────────────────────────────────
// MOCK CONFIRMER
// ──────────────────────────────────────────────

// MockConfirmer is an in-memory BookingConfirmer. Its mutex plays the
// role of the database row lock: concurrent confirms serialize here,
// and the capacity re-check happens against the current state, not
// the caller's earlier read.
type MockConfirmer struct {
	mu       sync.Mutex
	rides    *MockRideRepository
	bookings *MockBookingRepository

	ConfirmCallCount int32
	ConfirmError     error
}

// NewMockConfirmer creates a new mock confirmer over the given stores.
func NewMockConfirmer(rides *MockRideRepository, bookings *MockBookingRepository) *MockConfirmer {
	return &MockConfirmer{rides: rides, bookings: bookings}
}

func (m *MockConfirmer) ConfirmBooking(ctx context.Context, bookingID, rideID string, seats int) (repository.ConfirmOutcome, error) {
	atomic.AddInt32(&m.ConfirmCallCount, 1)
	if m.ConfirmError != nil {
		return 0, m.ConfirmError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	booking := m.bookings.GetBooking(bookingID)
	if booking == nil || booking.Status != domain.BookingStatusPending {
		return repository.ConfirmNotPending, nil
	}

	applied, err := m.rides.ReserveSeats(ctx, rideID, seats)
	if err != nil {
		return 0, err
	}
	if !applied {
		return repository.ConfirmNoCapacity, nil
	}

	m.bookings.mu.Lock()
	m.bookings.bookings[bookingID].Status = domain.BookingStatusConfirmed
	m.bookings.mu.Unlock()

	return repository.ConfirmApplied, nil
}

// ──────────────────────────────────────────────
// MOCK DISTANCE PROVIDER
// ──────────────────────────────────────────────

// MockDistance is a mock geo.Distance returning a fixed value.
type MockDistance struct {
	Meters64 float64
	Err      error

	// Block makes the call wait for context cancellation, simulating
	// a hung provider for timeout tests.
	Block bool
}

func (m *MockDistance) Meters(ctx context.Context, a, b domain.Location) (float64, error) {
	if m.Block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Meters64, nil
}

// ──────────────────────────────────────────────
// MOCK RIDE SEARCHER
// ──────────────────────────────────────────────

// MockRideSearcher is a mock RideSearcher that filters its ride set by
// great-circle distance and date, mimicking the real index.
type MockRideSearcher struct {
	mu    sync.RWMutex
	rides []*domain.Ride

	Err error

	// Block makes the call wait for context cancellation, simulating
	// a hung index for timeout tests.
	Block bool
}

// NewMockRideSearcher creates a new mock searcher.
func NewMockRideSearcher() *MockRideSearcher {
	return &MockRideSearcher{}
}

// AddRide adds a ride to the searchable set.
func (m *MockRideSearcher) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides = append(m.rides, ride)
}

func (m *MockRideSearcher) FindNearby(ctx context.Context, center domain.Location, radiusMeters float64, date time.Time) ([]*domain.Ride, error) {
	if m.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, ride := range m.rides {
		dist := geo.HaversineMeters(center.Lat, center.Lng, ride.Source.Lat, ride.Source.Lng)
		if dist <= radiusMeters && ride.Date.Equal(date) {
			copy := *ride
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK GEO STORE
// ──────────────────────────────────────────────

// MockGeoStore is an in-memory ride geo index.
type MockGeoStore struct {
	mu        sync.RWMutex
	locations map[string]domain.Location

	IndexError error
	RadiusErr  error
}

// NewMockGeoStore creates a new mock geo store.
func NewMockGeoStore() *MockGeoStore {
	return &MockGeoStore{locations: make(map[string]domain.Location)}
}

func (m *MockGeoStore) IndexRide(ctx context.Context, rideID string, source domain.Location) error {
	if m.IndexError != nil {
		return m.IndexError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[rideID] = source
	return nil
}

func (m *MockGeoStore) NearbyRideIDs(ctx context.Context, center domain.Location, radiusMeters float64) ([]string, error) {
	if m.RadiusErr != nil {
		return nil, m.RadiusErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, loc := range m.locations {
		if geo.HaversineMeters(center.Lat, center.Lng, loc.Lat, loc.Lng) <= radiusMeters {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MockGeoStore) RemoveRide(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, rideID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK CLOCK
// ──────────────────────────────────────────────

// MockClock is a Clock pinned to a fixed instant.
type MockClock struct {
	Time time.Time
}

func (c MockClock) Now() time.Time { return c.Time }

// AtHour returns a MockClock pinned to the given UTC hour.
func AtHour(hour int) MockClock {
	return MockClock{Time: time.Date(2025, 6, 16, hour, 30, 0, 0, time.UTC)}
}
