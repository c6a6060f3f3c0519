package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
)

// tripRepository keeps collaborative trips in memory, indexed by code.
// Stored values are copies so callers cannot mutate them in place.
type tripRepository struct {
	trips map[string]*domain.Trip // TripCode -> Trip
	mu    sync.RWMutex
}

func NewTripRepository() domain.TripRepository {
	return &tripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

func cloneTrip(t *domain.Trip) *domain.Trip {
	out := *t
	out.Members = append([]string{}, t.Members...)
	out.Itinerary = t.Itinerary.Clone()
	return &out
}

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if trip == nil || trip.TripCode == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trips[trip.TripCode]; exists {
		return domain.ErrTripCodeTaken
	}

	r.trips[trip.TripCode] = cloneTrip(trip)
	return nil
}

func (r *tripRepository) GetByCode(ctx context.Context, tripCode string) (*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, exists := r.trips[tripCode]
	if !exists {
		return nil, domain.ErrTripNotFound
	}
	return cloneTrip(trip), nil
}

func (r *tripRepository) AddMember(ctx context.Context, tripCode string, userID string) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, exists := r.trips[tripCode]
	if !exists {
		return nil, domain.ErrTripNotFound
	}

	trip.AddMember(userID)
	return cloneTrip(trip), nil
}

func (r *tripRepository) UpdateItinerary(ctx context.Context, tripCode string, itinerary domain.Itinerary) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, exists := r.trips[tripCode]
	if !exists {
		return nil, domain.ErrTripNotFound
	}

	trip.Itinerary = itinerary.Clone()
	trip.UpdatedAt = time.Now().UTC()
	return cloneTrip(trip), nil
}

func (r *tripRepository) ListByMember(ctx context.Context, userID string) ([]domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trips := []domain.Trip{}
	for _, trip := range r.trips {
		if trip.IsMember(userID) {
			trips = append(trips, *cloneTrip(trip))
		}
	}

	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}
