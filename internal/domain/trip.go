package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	"github.com/google/uuid"
)

const (
	TripCodeLength = 6

	// Upper-case alphanumerics without the look-alikes 0/O and 1/I.
	tripCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrTripCodeTaken = errors.New("trip code already in use")
	ErrNotMember     = errors.New("not a member of this trip")
	ErrInvalidInput  = errors.New("invalid input")
)

// Trip is a collaborative trip shared by its members through its code.
type Trip struct {
	ID        string    `json:"id" bson:"_id"`
	TripCode  string    `json:"tripCode" bson:"trip_code"`
	TripName  string    `json:"tripName" bson:"trip_name"`
	Members   []string  `json:"members" bson:"members"`
	Itinerary `bson:",inline"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

type TripRepository interface {
	// Create fails with ErrTripCodeTaken when the code is already stored.
	Create(ctx context.Context, trip *Trip) error
	GetByCode(ctx context.Context, tripCode string) (*Trip, error)
	// AddMember is idempotent: a user already in Members is not added twice.
	AddMember(ctx context.Context, tripCode string, userID string) (*Trip, error)
	// UpdateItinerary replaces days and activities wholesale.
	UpdateItinerary(ctx context.Context, tripCode string, itinerary Itinerary) (*Trip, error)
	ListByMember(ctx context.Context, userID string) ([]Trip, error)
}

// NewTrip builds a trip owned by creatorID with a fresh code and an empty
// itinerary.
func NewTrip(tripName string, creatorID string) (*Trip, error) {
	name := strings.TrimSpace(tripName)
	if name == "" {
		return nil, errors.Join(ErrInvalidInput, errors.New("trip name is required"))
	}
	if creatorID == "" {
		return nil, errors.Join(ErrInvalidInput, errors.New("creator is required"))
	}

	now := time.Now().UTC()

	return &Trip{
		ID:        uuid.NewString(),
		TripCode:  GenerateTripCode(),
		TripName:  name,
		Members:   []string{creatorID},
		Itinerary: NewItinerary(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Regenerate assigns a new code, used after a uniqueness collision.
func (t *Trip) Regenerate() {
	t.TripCode = GenerateTripCode()
}

func (t *Trip) IsMember(userID string) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// AddMember appends userID unless already present and reports whether it did.
func (t *Trip) AddMember(userID string) bool {
	if userID == "" || t.IsMember(userID) {
		return false
	}
	t.Members = append(t.Members, userID)
	return true
}

// MergeUpdate computes the document that results from an update carrying
// optional days and activities. Supplied activities replace the whole
// mapping; omitted fields keep their stored value.
func (t *Trip) MergeUpdate(days []string, activities map[string][]string) Itinerary {
	next := t.Itinerary.Clone()
	if days != nil {
		next.Days = SanitizeDays(days)
	}
	if activities != nil {
		next.Activities = SanitizeActivities(activities)
	}
	if next.Days == nil {
		next.Days = []string{}
	}
	if next.Activities == nil {
		next.Activities = map[string][]string{}
	}
	return next
}

func GenerateTripCode() string {
	return uniuri.NewLenChars(TripCodeLength, []byte(tripCodeChars))
}

// NormalizeTripCode upper-cases and trims a user supplied code.
func NormalizeTripCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
