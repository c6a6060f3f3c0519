package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
)

const (
	EventConnected              = "connected"
	EventTripCreated            = "tripCreated"
	EventTripJoined             = "tripJoined"
	EventJoinTripRoom           = "joinTripRoom"
	EventLeaveTripRoom          = "leaveTripRoom"
	EventItineraryUpdated       = "itineraryUpdated"
	EventRequestItinerarySync   = "requestItinerarySync"
	EventItinerarySync          = "itinerarySync"
	EventUserJoinedNotification = "userJoinedNotification"
	EventUserTyping             = "userTyping"
	EventPresenceUpdated        = "presenceUpdated"
)

var ErrClosed = errors.New("sync connection is closed")

// Message is a frame of the realtime channel.
type Message struct {
	Type     string          `json:"type"`
	TripCode string          `json:"tripCode,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type ItineraryPayload struct {
	TripCode   string              `json:"tripCode"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
	UpdatedBy  string              `json:"updatedBy,omitempty"`
	Timestamp  string              `json:"timestamp,omitempty"`
}

type connectedPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	Username     string `json:"username"`
}

type DialOptions struct {
	// BaseURL is the API origin, http(s) or ws(s).
	BaseURL          string
	Token            string
	HandshakeTimeout time.Duration
	Logger           logging.Logger
}

// SyncClient is one realtime connection. Itinerary frames for the editor's
// trip are applied to it; every frame is also handed to the message handler.
type SyncClient struct {
	conn         *websocket.Conn
	connectionID string
	userID       string
	logger       logging.Logger

	writeMu sync.Mutex

	mu             sync.RWMutex
	closed         bool
	messageHandler func(Message)
}

func Dial(ctx context.Context, opts DialOptions) (*SyncClient, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = 10 * time.Second
	}

	wsURL := strings.TrimRight(opts.BaseURL, "/")
	if after, ok := strings.CutPrefix(wsURL, "https://"); ok {
		wsURL = "wss://" + after
	} else if after, ok := strings.CutPrefix(wsURL, "http://"); ok {
		wsURL = "ws://" + after
	}

	header := http.Header{}
	if opts.Token != "" {
		header.Set("Authorization", "Bearer "+opts.Token)
	}

	dialer := websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, wsURL+"/api/ws", header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to websocket: %w", err)
	}

	c := &SyncClient{conn: conn, logger: opts.Logger}
	if err := c.awaitConnected(opts.HandshakeTimeout); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return c, nil
}

// awaitConnected reads the greeting that carries the connection ID.
func (c *SyncClient) awaitConnected(timeout time.Duration) error {
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	defer c.conn.SetReadDeadline(time.Time{})

	var msg Message
	if err := c.conn.ReadJSON(&msg); err != nil {
		return fmt.Errorf("failed to read greeting: %w", err)
	}
	if msg.Type != EventConnected {
		return fmt.Errorf("unexpected greeting %q", msg.Type)
	}

	var payload connectedPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return fmt.Errorf("invalid greeting: %w", err)
	}

	c.connectionID = payload.ConnectionID
	c.userID = payload.UserID
	return nil
}

// ConnectionID is the value to send as X-Connection-ID on HTTP calls.
func (c *SyncClient) ConnectionID() string { return c.connectionID }

func (c *SyncClient) UserID() string { return c.userID }

func (c *SyncClient) SetMessageHandler(handler func(Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messageHandler = handler
}

func (c *SyncClient) Send(eventType, tripCode string, data any) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", eventType, err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(Message{Type: eventType, TripCode: tripCode, Data: raw})
}

func (c *SyncClient) JoinRoom(tripCode string) error {
	return c.Send(EventJoinTripRoom, tripCode, map[string]string{"tripCode": tripCode})
}

func (c *SyncClient) LeaveRoom(tripCode string) error {
	return c.Send(EventLeaveTripRoom, tripCode, map[string]string{"tripCode": tripCode})
}

func (c *SyncClient) RequestSync(tripCode string) error {
	return c.Send(EventRequestItinerarySync, tripCode, map[string]string{"tripCode": tripCode})
}

func (c *SyncClient) SendItinerary(tripCode string, it Itinerary) error {
	return c.Send(EventItineraryUpdated, tripCode, ItineraryPayload{
		TripCode:   tripCode,
		Days:       it.Days,
		Activities: it.Activities,
	})
}

// Emitter adapts the connection into a Coalescer sink for one trip.
func (c *SyncClient) Emitter(tripCode string) func(Itinerary) {
	return func(it Itinerary) {
		if err := c.SendItinerary(tripCode, it); err != nil {
			c.logger.Warn(logging.WebSocket, logging.Broadcast, "failed to send itinerary", map[logging.ExtraKey]any{
				logging.TripCode:     tripCode,
				logging.ErrorMessage: err.Error(),
			})
		}
	}
}

// Listen blocks until the connection fails or ctx is done.
func (c *SyncClient) Listen(ctx context.Context, editor *Editor) error {
	defer c.Close()

	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("websocket read error: %w", err)
		}

		if editor != nil {
			c.apply(editor, msg)
		}

		c.mu.RLock()
		handler := c.messageHandler
		c.mu.RUnlock()

		if handler != nil {
			handler(msg)
		}
	}
}

func (c *SyncClient) apply(editor *Editor, msg Message) {
	if msg.Type != EventItineraryUpdated && msg.Type != EventItinerarySync {
		return
	}

	var payload ItineraryPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		c.logger.Warn(logging.WebSocket, logging.Broadcast, "dropping malformed itinerary frame", map[logging.ExtraKey]any{
			logging.EventType:    msg.Type,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	tripCode := payload.TripCode
	if tripCode == "" {
		tripCode = msg.TripCode
	}

	editor.ApplyRemote(tripCode, Itinerary{Days: payload.Days, Activities: payload.Activities})
}

func (c *SyncClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	return c.conn.Close()
}
