package ws

import (
	"encoding/json"
	"time"
)

// WSMessage is the envelope for every frame in both directions.
type WSMessage struct {
	Type     string `json:"type"`
	TripCode string `json:"tripCode,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// InboundMessage is a decoded client frame; Data is decoded per Type.
type InboundMessage struct {
	Type     string          `json:"type"`
	TripCode string          `json:"tripCode"`
	Data     json.RawMessage `json:"data"`
}

type ConnectedPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	Username     string `json:"username"`
}

type ItineraryPayload struct {
	TripCode   string              `json:"tripCode"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
	UpdatedBy  string              `json:"updatedBy,omitempty"`
	Timestamp  string              `json:"timestamp,omitempty"`
}

type MemberPayload struct {
	TripCode string `json:"tripCode"`
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username"`
}

type PresencePayload struct {
	TripCode string `json:"tripCode"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type TypingPayload struct {
	TripCode string `json:"tripCode"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Day      string `json:"day,omitempty"`
	Typing   bool   `json:"typing"`
}

type TripPayload struct {
	TripCode string `json:"tripCode"`
	TripName string `json:"tripName"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Retry   bool   `json:"retry,omitempty"`
}

func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func NewConnected(connectionID, userID, username string) *WSMessage {
	return &WSMessage{
		Type: Connected,
		Data: ConnectedPayload{
			ConnectionID: connectionID,
			UserID:       userID,
			Username:     username,
		},
	}
}

func NewItineraryUpdated(payload ItineraryPayload) *WSMessage {
	return &WSMessage{Type: ItineraryUpdated, TripCode: payload.TripCode, Data: payload}
}

func NewItinerarySync(payload ItineraryPayload) *WSMessage {
	return &WSMessage{Type: ItinerarySync, TripCode: payload.TripCode, Data: payload}
}

func NewPresence(tripCode, userID, username, status string) *WSMessage {
	return &WSMessage{
		Type:     PresenceUpdated,
		TripCode: tripCode,
		Data: PresencePayload{
			TripCode: tripCode,
			UserID:   userID,
			Username: username,
			Status:   status,
		},
	}
}

func NewError(tripCode, message string) *WSMessage {
	return &WSMessage{
		Type:     ErrorEvent,
		TripCode: tripCode,
		Data:     ErrorPayload{Message: message},
	}
}

func NewJoinFailed(tripCode, reason string) *WSMessage {
	return &WSMessage{
		Type:     JoinFailed,
		TripCode: tripCode,
		Data: ErrorPayload{
			Code:    "JOIN_FAILED",
			Message: reason,
		},
	}
}

func NewBadMessage(reason string) *WSMessage {
	return &WSMessage{
		Type: BadMessage,
		Data: ErrorPayload{
			Code:    "BAD_MESSAGE",
			Message: reason,
		},
	}
}

func NewRateLimited(retryAfter time.Duration) *WSMessage {
	return &WSMessage{
		Type: RateLimited,
		Data: ErrorPayload{
			Code:    "RATE_LIMITED",
			Message: "slow down, retry in " + retryAfter.Round(time.Millisecond).String(),
			Retry:   true,
		},
	}
}
