package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// DefaultSearchRadiusKm is applied when a search does not specify a radius.
const DefaultSearchRadiusKm = 10.0

// MatchingService finds published rides near a rider's location.
type MatchingService struct {
	searcher repository.RideSearcher
	timeout  time.Duration
}

// NewMatchingService creates a new MatchingService.
func NewMatchingService(searcher repository.RideSearcher, timeout time.Duration) *MatchingService {
	return &MatchingService{searcher: searcher, timeout: timeout}
}

// FindNearby returns every ride within maxDistanceKm of location on
// the given date. The searcher owns inclusion; no extra filtering,
// scoring, or deduplication happens here. An empty result is not an
// error.
func (s *MatchingService) FindNearby(ctx context.Context, location domain.Location, maxDistanceKm float64, date time.Time) ([]*domain.Ride, error) {
	if !location.Valid() {
		return nil, ErrInvalidLocation
	}
	if maxDistanceKm <= 0 {
		return nil, ErrInvalidRadius
	}
	if date.IsZero() {
		return nil, ErrInvalidDate
	}

	callCtx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	rides, err := s.searcher.FindNearby(callCtx, location, maxDistanceKm*1000, date)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrCollaboratorTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	return rides, nil
}

func (s *MatchingService) collaboratorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
