package ws

import (
	"context"
	"sync"

	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/metrics"
)

const opsBuffer = 256

// RoomStats describes a trip room at a point in time.
type RoomStats struct {
	TripCode    string
	Connections int
}

// Hub fans events out to trip rooms. All state is owned by the Run
// goroutine; exported methods enqueue work and return immediately, except
// RoomStats which waits for its answer.
type Hub struct {
	rooms   *RoomManager
	clients map[string]*Client

	ops      chan func()
	done     chan struct{}
	stopOnce sync.Once

	logger logging.Logger
}

func NewHub(logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Hub{
		rooms:   NewRoomManager(),
		clients: make(map[string]*Client),
		ops:     make(chan func(), opsBuffer),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Run processes operations in order until ctx is cancelled or Shutdown is
// called, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.disconnectAll()

	for {
		select {
		case <-ctx.Done():
			h.stop()
			return
		case <-h.done:
			return
		case op := <-h.ops:
			op()
		}
	}
}

func (h *Hub) Shutdown() {
	h.stop()
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) submit(op func()) bool {
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case h.ops <- op:
		return true
	case <-h.done:
		return false
	}
}

// Register makes the client addressable and greets it with its connection id.
func (h *Hub) Register(c *Client) {
	h.submit(func() {
		if _, exists := h.clients[c.ID]; exists {
			return
		}
		h.clients[c.ID] = c
		metrics.HubConnections.Inc()

		h.deliver(c, NewConnected(c.ID, c.UserID, c.Username))

		h.logger.Debug(logging.WebSocket, logging.Connection, "client registered", map[logging.ExtraKey]any{
			logging.ConnectionID: c.ID,
			logging.UserID:       c.UserID,
		})
	})
}

// Unregister removes the client from every room, tells the remaining peers
// it went offline and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.submit(func() {
		h.remove(c)
	})
}

func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}

	for tripCode := range c.rooms {
		h.rooms.Leave(tripCode, c)
		h.fanOut(tripCode, NewPresence(tripCode, c.UserID, c.Username, PresenceOffline), c.ID)
	}
	c.rooms = map[string]struct{}{}

	delete(h.clients, c.ID)
	close(c.send)

	metrics.HubConnections.Dec()
	metrics.HubRooms.Set(float64(h.rooms.RoomCount()))

	h.logger.Debug(logging.WebSocket, logging.Connection, "client unregistered", map[logging.ExtraKey]any{
		logging.ConnectionID: c.ID,
		logging.UserID:       c.UserID,
	})
}

// JoinRoom is a no-op for unknown connections and for repeated joins. A new
// join tells the other peers in the room the user is online.
func (h *Hub) JoinRoom(connectionID, tripCode string) {
	if connectionID == "" || tripCode == "" {
		return
	}

	h.submit(func() {
		c, ok := h.clients[connectionID]
		if !ok {
			return
		}
		if !h.rooms.Join(tripCode, c) {
			return
		}
		c.rooms[tripCode] = struct{}{}
		metrics.HubRooms.Set(float64(h.rooms.RoomCount()))

		h.fanOut(tripCode, NewPresence(tripCode, c.UserID, c.Username, PresenceOnline), c.ID)

		h.logger.Debug(logging.WebSocket, logging.Room, "joined room", map[logging.ExtraKey]any{
			logging.ConnectionID: connectionID,
			logging.TripCode:     tripCode,
		})
	})
}

func (h *Hub) LeaveRoom(connectionID, tripCode string) {
	h.submit(func() {
		c, ok := h.clients[connectionID]
		if !ok {
			return
		}
		if !h.rooms.Leave(tripCode, c) {
			return
		}
		delete(c.rooms, tripCode)
		metrics.HubRooms.Set(float64(h.rooms.RoomCount()))

		h.fanOut(tripCode, &WSMessage{
			Type:     UserLeftNotification,
			TripCode: tripCode,
			Data:     MemberPayload{TripCode: tripCode, UserID: c.UserID, Username: c.Username},
		}, c.ID)
	})
}

// BroadcastUpdate sends the itinerary state to the room. Delivery is
// at-most-once per peer.
func (h *Hub) BroadcastUpdate(tripCode string, payload ItineraryPayload, excludeConnectionID string) {
	payload.TripCode = tripCode
	msg := NewItineraryUpdated(payload)

	h.submit(func() {
		h.fanOut(tripCode, msg, excludeConnectionID)
	})
}

// BroadcastMembershipEvent sends a room event of the given kind, for example
// userJoinedNotification or userTyping.
func (h *Hub) BroadcastMembershipEvent(tripCode, kind string, details any, excludeConnectionID string) {
	msg := &WSMessage{Type: kind, TripCode: tripCode, Data: details}

	h.submit(func() {
		h.fanOut(tripCode, msg, excludeConnectionID)
	})
}

// SendTo delivers to a single connection, used for direct replies.
func (h *Hub) SendTo(connectionID string, msg *WSMessage) {
	h.submit(func() {
		if c, ok := h.clients[connectionID]; ok {
			h.deliver(c, msg)
		}
	})
}

// RoomStats answers after every previously submitted operation has run.
func (h *Hub) RoomStats(tripCode string) RoomStats {
	reply := make(chan RoomStats, 1)
	ok := h.submit(func() {
		reply <- RoomStats{TripCode: tripCode, Connections: h.rooms.Count(tripCode)}
	})
	if !ok {
		return RoomStats{TripCode: tripCode}
	}

	select {
	case stats := <-reply:
		return stats
	case <-h.done:
		return RoomStats{TripCode: tripCode}
	}
}

func (h *Hub) fanOut(tripCode string, msg *WSMessage, excludeConnectionID string) {
	for _, c := range h.rooms.Members(tripCode, excludeConnectionID) {
		h.deliver(c, msg)
	}
}

func (h *Hub) deliver(c *Client, msg *WSMessage) {
	if c.enqueue(msg) {
		metrics.HubEventsSent.WithLabelValues(msg.Type).Inc()
		return
	}

	metrics.HubEventsDropped.WithLabelValues(msg.Type).Inc()
	h.logger.Warn(logging.WebSocket, logging.Broadcast, "send buffer full, dropping event", map[logging.ExtraKey]any{
		logging.ConnectionID: c.ID,
		logging.EventType:    msg.Type,
	})
}

func (h *Hub) disconnectAll() {
	// Drain work that raced with shutdown so nothing waits on it.
	for {
		select {
		case op := <-h.ops:
			op()
			continue
		default:
		}
		break
	}

	for _, c := range h.clients {
		h.remove(c)
		c.Close()
	}
}
