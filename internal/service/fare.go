package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carpool/internal/domain"
	"carpool/internal/geo"
)

// FarePolicy contains the pricing parameters for fare quotes.
type FarePolicy struct {
	BaseFare     float64        // Flat component of every fare
	PerKmRate    float64        // Charge per kilometer
	SurgeFactor  float64        // Multiplier applied during rush hours
	Timezone     *time.Location // Reference timezone for the rush-hour windows
	MorningStart int            // First surging hour of the morning window, inclusive
	MorningEnd   int            // Last surging hour of the morning window, inclusive
	EveningStart int            // First surging hour of the evening window, inclusive
	EveningEnd   int            // Last surging hour of the evening window, inclusive
}

// DefaultFarePolicy returns the default pricing configuration.
// Rush-hour windows are evaluated in UTC unless the deployment
// configures another reference timezone.
func DefaultFarePolicy() FarePolicy {
	return FarePolicy{
		BaseFare:     2.0,
		PerKmRate:    0.5,
		SurgeFactor:  1.5,
		Timezone:     time.UTC,
		MorningStart: 7,
		MorningEnd:   9,
		EveningStart: 16,
		EveningEnd:   18,
	}
}

// isRushHour reports whether the given hour falls in a surge window.
func (p FarePolicy) isRushHour(hour int) bool {
	return (hour >= p.MorningStart && hour <= p.MorningEnd) ||
		(hour >= p.EveningStart && hour <= p.EveningEnd)
}

// FareService computes itemized fare quotes.
type FareService struct {
	distance geo.Distance
	clock    Clock
	policy   FarePolicy
	timeout  time.Duration
}

// NewFareService creates a new FareService.
func NewFareService(distance geo.Distance, clock Clock, policy FarePolicy, timeout time.Duration) *FareService {
	if clock == nil {
		clock = SystemClock{}
	}
	if policy.Timezone == nil {
		policy.Timezone = time.UTC
	}
	return &FareService{
		distance: distance,
		clock:    clock,
		policy:   policy,
		timeout:  timeout,
	}
}

// Quote computes a fare for the trip. It is a pure function of the
// distance, the seat count, and the current hour: repeated calls with
// the same inputs yield the same quote. No state is touched.
func (s *FareService) Quote(ctx context.Context, source, destination domain.Location, seats int) (*domain.FareQuote, error) {
	if !source.Valid() {
		return nil, ErrInvalidSource
	}
	if !destination.Valid() {
		return nil, ErrInvalidDestination
	}
	if seats < 1 {
		return nil, ErrInvalidSeatCount
	}

	callCtx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	distanceMeters, err := s.distance.Meters(callCtx, source, destination)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrCollaboratorTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrDistanceUnavailable, err)
	}

	distanceKm := distanceMeters / 1000
	totalFare := (s.policy.BaseFare + distanceKm*s.policy.PerKmRate) * float64(seats)

	surgeMultiplier := 1.0
	hour := s.clock.Now().In(s.policy.Timezone).Hour()
	if s.policy.isRushHour(hour) {
		surgeMultiplier = s.policy.SurgeFactor
	}

	return &domain.FareQuote{
		BaseFare:        s.policy.BaseFare,
		DistanceKm:      distanceKm,
		PerKmRate:       s.policy.PerKmRate,
		Seats:           seats,
		SurgeMultiplier: surgeMultiplier,
		TotalFare:       totalFare,
		FinalFare:       totalFare * surgeMultiplier,
	}, nil
}

func (s *FareService) collaboratorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
