package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrSoloTripNotFound = errors.New("solo trip not found")

// SoloTrip is a trip owned and edited by a single user.
type SoloTrip struct {
	ID            string    `json:"id" bson:"_id"`
	OwnerID       string    `json:"ownerId" bson:"owner_id"`
	ItineraryName string    `json:"itineraryName" bson:"itinerary_name"`
	Destination   string    `json:"destination" bson:"destination"`
	StartDate     time.Time `json:"startDate" bson:"start_date"`
	EndDate       time.Time `json:"endDate" bson:"end_date"`
	Itinerary     `bson:",inline"`
}

type SoloTripRepository interface {
	Create(ctx context.Context, trip *SoloTrip) error
	GetByID(ctx context.Context, id string) (*SoloTrip, error)
	ListByOwner(ctx context.Context, ownerID string) ([]SoloTrip, error)
	Update(ctx context.Context, trip *SoloTrip) error
	Delete(ctx context.Context, id string) error
}

type SoloTripInput struct {
	ItineraryName string
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	Days          []string
	Activities    map[string][]string
}

func (in SoloTripInput) validate() error {
	var errs []error
	if strings.TrimSpace(in.ItineraryName) == "" {
		errs = append(errs, errors.New("itinerary name is required"))
	}
	if strings.TrimSpace(in.Destination) == "" {
		errs = append(errs, errors.New("destination is required"))
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		errs = append(errs, errors.New("start and end dates are required"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidInput}, errs...)...)
	}
	return nil
}

func NewSoloTrip(ownerID string, in SoloTripInput) (*SoloTrip, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	trip := &SoloTrip{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
	}
	trip.apply(in)
	return trip, nil
}

// Replace overwrites every editable field.
func (s *SoloTrip) Replace(in SoloTripInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	s.apply(in)
	return nil
}

func (s *SoloTrip) apply(in SoloTripInput) {
	s.ItineraryName = strings.TrimSpace(in.ItineraryName)
	s.Destination = strings.TrimSpace(in.Destination)
	s.StartDate = in.StartDate
	s.EndDate = in.EndDate
	s.Itinerary = Itinerary{Days: in.Days, Activities: in.Activities}.Sanitize()
}

func (s *SoloTrip) IsPast(now time.Time) bool {
	return now.After(s.EndDate)
}
