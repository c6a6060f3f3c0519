package collaboration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/events"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/validate"
	"github.com/hilthontt/tripsync/internal/infrastructure/ws"
)

const defaultCodeAttempts = 5

// Broadcaster is the part of the realtime hub the session protocol drives.
type Broadcaster interface {
	JoinRoom(connectionID, tripCode string)
	BroadcastUpdate(tripCode string, payload ws.ItineraryPayload, excludeConnectionID string)
	BroadcastMembershipEvent(tripCode, kind string, details any, excludeConnectionID string)
}

type UseCase interface {
	CreateTrip(ctx context.Context, tripName string, identity domain.Identity, connectionID string) (*domain.Trip, error)
	JoinTrip(ctx context.Context, tripCode string, identity domain.Identity, connectionID string) (*JoinResult, error)
	UpdateItinerary(ctx context.Context, in UpdateInput) (domain.Itinerary, error)
	GetTrip(ctx context.Context, tripCode string, identity domain.Identity) (*domain.Trip, error)
	ListTrips(ctx context.Context, identity domain.Identity) (*TripList, error)
	IsMember(ctx context.Context, tripCode, userID string) (bool, error)
}

type JoinResult struct {
	TripName   string
	TripCode   string
	Itinerary  domain.Itinerary
	MemberName string
}

// UpdateInput carries an itinerary update. A nil Days or Activities means the
// field was absent from the request.
type UpdateInput struct {
	TripCode     string
	Identity     domain.Identity
	Days         []string
	Activities   map[string][]string
	ConnectionID string
}

type TripList struct {
	CurrentTrips []domain.Trip
	PastTrips    []domain.Trip
}

type Options struct {
	CodeAttempts uint
	Now          func() time.Time
}

type useCase struct {
	trips     domain.TripRepository
	users     domain.UserRepository
	hub       Broadcaster
	publisher events.TripPublisher
	logger    logging.Logger

	codeAttempts uint
	now          func() time.Time
}

func NewUseCase(
	trips domain.TripRepository,
	users domain.UserRepository,
	hub Broadcaster,
	publisher events.TripPublisher,
	logger logging.Logger,
	opts Options,
) UseCase {
	if publisher == nil {
		publisher = events.NewNopTripPublisher()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.CodeAttempts == 0 {
		opts.CodeAttempts = defaultCodeAttempts
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &useCase{
		trips:        trips,
		users:        users,
		hub:          hub,
		publisher:    publisher,
		logger:       logger,
		codeAttempts: opts.CodeAttempts,
		now:          opts.Now,
	}
}

var (
	tripNameRule = validate.TripName()
	tripCodeRule = validate.Field("tripCode", validate.Required())
)

func invalid(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

func (uc *useCase) CreateTrip(ctx context.Context, tripName string, identity domain.Identity, connectionID string) (*domain.Trip, error) {
	if err := tripNameRule(tripName); err != nil {
		return nil, invalid(err)
	}

	trip, err := domain.NewTrip(tripName, identity.UserID)
	if err != nil {
		return nil, err
	}

	err = retry.Do(
		func() error {
			err := uc.trips.Create(ctx, trip)
			if errors.Is(err, domain.ErrTripCodeTaken) {
				uc.logger.Warn(logging.MongoDB, logging.TripCreate, "trip code collision, regenerating", map[logging.ExtraKey]any{
					logging.TripCode: trip.TripCode,
				})
				trip.Regenerate()
				return err
			}
			if err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uc.codeAttempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		uc.logger.Error(logging.MongoDB, logging.TripCreate, "failed to create trip", map[logging.ExtraKey]any{
			logging.UserID:       identity.UserID,
			logging.ErrorMessage: err.Error(),
		})
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	if connectionID != "" {
		uc.hub.JoinRoom(connectionID, trip.TripCode)
	}
	uc.hub.BroadcastMembershipEvent(trip.TripCode, ws.TripCreated, ws.TripPayload{
		TripCode: trip.TripCode,
		TripName: trip.TripName,
	}, "")

	uc.publish(ctx, logging.TripCreate, trip.TripCode, func(ctx context.Context) error {
		return uc.publisher.PublishTripCreated(ctx, *trip)
	})

	uc.logger.Info(logging.General, logging.TripCreate, "trip created", map[logging.ExtraKey]any{
		logging.TripCode: trip.TripCode,
		logging.UserID:   identity.UserID,
	})
	return trip, nil
}

func (uc *useCase) JoinTrip(ctx context.Context, tripCode string, identity domain.Identity, connectionID string) (*JoinResult, error) {
	code := domain.NormalizeTripCode(tripCode)
	if err := tripCodeRule(code); err != nil {
		return nil, invalid(err)
	}

	trip, err := uc.trips.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip %s: %w", code, err)
	}

	user, err := uc.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if !trip.IsMember(user.ID) {
		trip, err = uc.trips.AddMember(ctx, code, user.ID)
		if err != nil {
			uc.logger.Error(logging.MongoDB, logging.TripJoin, "failed to add member", map[logging.ExtraKey]any{
				logging.TripCode:     code,
				logging.UserID:       user.ID,
				logging.ErrorMessage: err.Error(),
			})
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
	}

	username := user.Name
	if username == "" {
		username = identity.Name
	}

	if connectionID != "" {
		uc.hub.JoinRoom(connectionID, code)
	}
	uc.hub.BroadcastMembershipEvent(code, ws.UserJoinedNotification, ws.MemberPayload{
		TripCode: code,
		UserID:   user.ID,
		Username: username,
	}, connectionID)

	uc.publish(ctx, logging.TripJoin, code, func(ctx context.Context) error {
		return uc.publisher.PublishMemberJoined(ctx, *trip, user.ID)
	})

	return &JoinResult{
		TripName:   trip.TripName,
		TripCode:   trip.TripCode,
		Itinerary:  trip.Itinerary.Clone(),
		MemberName: username,
	}, nil
}

func (uc *useCase) UpdateItinerary(ctx context.Context, in UpdateInput) (domain.Itinerary, error) {
	if in.Days == nil && in.Activities == nil {
		return domain.Itinerary{}, fmt.Errorf("%w: days or activities are required", domain.ErrInvalidInput)
	}

	code := domain.NormalizeTripCode(in.TripCode)
	if err := tripCodeRule(code); err != nil {
		return domain.Itinerary{}, invalid(err)
	}

	trip, err := uc.trips.GetByCode(ctx, code)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("failed to get trip %s: %w", code, err)
	}
	if !trip.IsMember(in.Identity.UserID) {
		return domain.Itinerary{}, domain.ErrNotMember
	}

	next := trip.MergeUpdate(in.Days, in.Activities)

	updated, err := uc.trips.UpdateItinerary(ctx, code, next)
	if err != nil {
		uc.logger.Error(logging.MongoDB, logging.ItineraryUpdate, "failed to persist itinerary", map[logging.ExtraKey]any{
			logging.TripCode:     code,
			logging.UserID:       in.Identity.UserID,
			logging.ErrorMessage: err.Error(),
		})
		return domain.Itinerary{}, fmt.Errorf("failed to update itinerary: %w", err)
	}

	uc.hub.BroadcastUpdate(code, ws.ItineraryPayload{
		TripCode:   code,
		Days:       updated.Days,
		Activities: updated.Activities,
		UpdatedBy:  in.Identity.UserID,
		Timestamp:  ws.Timestamp(uc.now()),
	}, in.ConnectionID)

	uc.publish(ctx, logging.ItineraryUpdate, code, func(ctx context.Context) error {
		return uc.publisher.PublishItineraryUpdated(ctx, *updated, in.Identity.UserID)
	})

	return updated.Itinerary.Clone(), nil
}

func (uc *useCase) GetTrip(ctx context.Context, tripCode string, identity domain.Identity) (*domain.Trip, error) {
	code := domain.NormalizeTripCode(tripCode)
	if err := tripCodeRule(code); err != nil {
		return nil, invalid(err)
	}

	trip, err := uc.trips.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip %s: %w", code, err)
	}
	if !trip.IsMember(identity.UserID) {
		return nil, domain.ErrNotMember
	}
	return trip, nil
}

// ListTrips returns every trip the caller belongs to. Collaborative trips
// have no end date, so none of them is ever past.
func (uc *useCase) ListTrips(ctx context.Context, identity domain.Identity) (*TripList, error) {
	trips, err := uc.trips.ListByMember(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}

	return &TripList{CurrentTrips: trips, PastTrips: []domain.Trip{}}, nil
}

// IsMember backs the membership check for socket room joins.
func (uc *useCase) IsMember(ctx context.Context, tripCode, userID string) (bool, error) {
	trip, err := uc.trips.GetByCode(ctx, domain.NormalizeTripCode(tripCode))
	if errors.Is(err, domain.ErrTripNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return trip.IsMember(userID), nil
}

func (uc *useCase) publish(ctx context.Context, sub logging.SubCategory, tripCode string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		uc.logger.Warn(logging.RabbitMQ, sub, "failed to publish trip event", map[logging.ExtraKey]any{
			logging.TripCode:     tripCode,
			logging.ErrorMessage: err.Error(),
		})
	}
}
