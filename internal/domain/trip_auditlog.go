package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TripEventType string

const (
	EventTripCreated      TripEventType = "trip_created"
	EventMemberJoined     TripEventType = "member_joined"
	EventItineraryUpdated TripEventType = "itinerary_updated"
)

type TripAuditLog struct {
	ID        string         `bson:"_id" json:"id"`
	TripCode  string         `bson:"trip_code" json:"tripCode"`
	EventType TripEventType  `bson:"event_type" json:"eventType"`
	UserID    string         `bson:"user_id" json:"userId"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type TripAuditRepository interface {
	Log(ctx context.Context, log *TripAuditLog) error
	GetByTripCode(ctx context.Context, tripCode string, limit int) ([]TripAuditLog, error)
	DeleteOlderThan(ctx context.Context, before time.Time) error
	EnsureIndexes(ctx context.Context) error
}

func NewTripCreatedLog(tripCode, userID, tripName string) *TripAuditLog {
	return &TripAuditLog{
		ID:        uuid.NewString(),
		TripCode:  tripCode,
		EventType: EventTripCreated,
		UserID:    userID,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"trip_name": tripName,
		},
	}
}

func NewMemberJoinedLog(tripCode, userID string, memberCount int) *TripAuditLog {
	return &TripAuditLog{
		ID:        uuid.NewString(),
		TripCode:  tripCode,
		EventType: EventMemberJoined,
		UserID:    userID,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"member_count": memberCount,
		},
	}
}

func NewItineraryUpdatedLog(tripCode, userID string, dayCount int) *TripAuditLog {
	return &TripAuditLog{
		ID:        uuid.NewString(),
		TripCode:  tripCode,
		EventType: EventItineraryUpdated,
		UserID:    userID,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"day_count": dayCount,
		},
	}
}
