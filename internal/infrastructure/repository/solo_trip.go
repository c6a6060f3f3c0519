package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/hilthontt/tripsync/internal/domain"
)

type soloTripRepository struct {
	trips map[string]*domain.SoloTrip // ID -> SoloTrip
	mu    sync.RWMutex
}

func NewSoloTripRepository() domain.SoloTripRepository {
	return &soloTripRepository{
		trips: make(map[string]*domain.SoloTrip),
	}
}

func cloneSoloTrip(t *domain.SoloTrip) *domain.SoloTrip {
	out := *t
	out.Itinerary = t.Itinerary.Clone()
	return &out
}

func (r *soloTripRepository) Create(ctx context.Context, trip *domain.SoloTrip) error {
	if trip == nil || trip.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.trips[trip.ID] = cloneSoloTrip(trip)
	return nil
}

func (r *soloTripRepository) GetByID(ctx context.Context, id string) (*domain.SoloTrip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, exists := r.trips[id]
	if !exists {
		return nil, domain.ErrSoloTripNotFound
	}
	return cloneSoloTrip(trip), nil
}

func (r *soloTripRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.SoloTrip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trips := []domain.SoloTrip{}
	for _, trip := range r.trips {
		if trip.OwnerID == ownerID {
			trips = append(trips, *cloneSoloTrip(trip))
		}
	}

	sort.Slice(trips, func(i, j int) bool {
		return trips[i].StartDate.Before(trips[j].StartDate)
	})
	return trips, nil
}

func (r *soloTripRepository) Update(ctx context.Context, trip *domain.SoloTrip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trips[trip.ID]; !exists {
		return domain.ErrSoloTripNotFound
	}
	r.trips[trip.ID] = cloneSoloTrip(trip)
	return nil
}

func (r *soloTripRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trips[id]; !exists {
		return domain.ErrSoloTripNotFound
	}
	delete(r.trips, id)
	return nil
}
