package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/samber/lo"
)

type UseCase interface {
	Create(ctx context.Context, identity domain.Identity, in domain.SoloTripInput) (*domain.SoloTrip, error)
	List(ctx context.Context, identity domain.Identity) (*TripList, error)
	Get(ctx context.Context, identity domain.Identity, id string) (*domain.SoloTrip, error)
	Update(ctx context.Context, identity domain.Identity, id string, in domain.SoloTripInput) (*domain.SoloTrip, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
}

type TripList struct {
	CurrentTrips []domain.SoloTrip
	PastTrips    []domain.SoloTrip
}

type useCase struct {
	trips  domain.SoloTripRepository
	logger logging.Logger
	now    func() time.Time
}

func NewUseCase(trips domain.SoloTripRepository, logger logging.Logger) UseCase {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &useCase{
		trips:  trips,
		logger: logger,
		now:    time.Now,
	}
}

func (uc *useCase) Create(ctx context.Context, identity domain.Identity, in domain.SoloTripInput) (*domain.SoloTrip, error) {
	trip, err := domain.NewSoloTrip(identity.UserID, in)
	if err != nil {
		return nil, err
	}

	if err := uc.trips.Create(ctx, trip); err != nil {
		uc.logger.Error(logging.MongoDB, logging.Insert, "failed to save trip", map[logging.ExtraKey]any{
			logging.UserID:       identity.UserID,
			logging.ErrorMessage: err.Error(),
		})
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}
	return trip, nil
}

// List splits the caller's trips into those still running and those whose
// end date has passed.
func (uc *useCase) List(ctx context.Context, identity domain.Identity) (*TripList, error) {
	trips, err := uc.trips.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	now := uc.now()
	return &TripList{
		CurrentTrips: lo.Filter(trips, func(t domain.SoloTrip, _ int) bool { return !t.IsPast(now) }),
		PastTrips:    lo.Filter(trips, func(t domain.SoloTrip, _ int) bool { return t.IsPast(now) }),
	}, nil
}

// Get hides trips owned by someone else behind ErrSoloTripNotFound.
func (uc *useCase) Get(ctx context.Context, identity domain.Identity, id string) (*domain.SoloTrip, error) {
	trip, err := uc.trips.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip %s: %w", id, err)
	}
	if trip.OwnerID != identity.UserID {
		return nil, domain.ErrSoloTripNotFound
	}
	return trip, nil
}

func (uc *useCase) Update(ctx context.Context, identity domain.Identity, id string, in domain.SoloTripInput) (*domain.SoloTrip, error) {
	trip, err := uc.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if err := trip.Replace(in); err != nil {
		return nil, err
	}

	if err := uc.trips.Update(ctx, trip); err != nil {
		uc.logger.Error(logging.MongoDB, logging.Update, "failed to update trip", map[logging.ExtraKey]any{
			logging.UserID:       identity.UserID,
			logging.ErrorMessage: err.Error(),
		})
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	return trip, nil
}

func (uc *useCase) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := uc.Get(ctx, identity, id); err != nil {
		return err
	}

	if err := uc.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}
