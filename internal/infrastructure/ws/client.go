package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
)

const writeWait = 10 * time.Second

type ClientOptions struct {
	SendBuffer     int
	PingInterval   time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		SendBuffer:     64,
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		MaxMessageSize: 32768,
	}
}

// Dispatcher handles decoded frames from a client. It runs on the client's
// read goroutine.
type Dispatcher interface {
	Dispatch(ctx context.Context, c *Client, msg InboundMessage)
}

// Client is one realtime connection. Its send channel is closed by the hub
// only, after the client is unregistered.
type Client struct {
	ID       string
	UserID   string
	Username string

	conn  *connWrapper
	send  chan *WSMessage
	opts  ClientOptions
	rooms map[string]struct{} // owned by the hub goroutine

	closeOnce sync.Once
	closed    chan struct{}
}

func NewClient(conn *websocket.Conn, userID, username string, opts ClientOptions) *Client {
	var wrapped *connWrapper
	if conn != nil {
		wrapped = newConnWrapper(conn)
	}

	defaults := DefaultClientOptions()
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaults.SendBuffer
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaults.PingInterval
	}
	if opts.PongWait <= 0 {
		opts.PongWait = defaults.PongWait
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = defaults.MaxMessageSize
	}

	return &Client{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
		conn:     wrapped,
		send:     make(chan *WSMessage, opts.SendBuffer),
		opts:     opts,
		rooms:    make(map[string]struct{}),
		closed:   make(chan struct{}),
	}
}

// Close tears down the socket. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *Client) IsClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// enqueue never blocks: a full buffer drops the message.
func (c *Client) enqueue(msg *WSMessage) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// ReadPump blocks until the connection fails or the client is closed, then
// unregisters the client.
func (c *Client) ReadPump(ctx context.Context, hub *Hub, dispatcher Dispatcher) {
	defer func() {
		hub.Unregister(c)
		c.Close()
	}()

	conn := c.conn.conn
	conn.SetReadLimit(c.opts.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				hub.logger.Warn(logging.WebSocket, logging.Connection, "read error", map[logging.ExtraKey]any{
					logging.ConnectionID: c.ID,
					logging.ErrorMessage: err.Error(),
				})
			}
			return
		}

		if len(raw) == 0 {
			continue
		}

		var msg InboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type == "" {
			hub.SendTo(c.ID, NewBadMessage("frames must be JSON objects with a type"))
			continue
		}

		dispatcher.Dispatch(ctx, c, msg)
	}
}

// WritePump drains the send channel onto the socket and keeps it alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, time.Now().Add(writeWait))
				return
			}
			if err := c.conn.WriteJSON(msg, time.Now().Add(writeWait)); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, time.Now().Add(writeWait)); err != nil {
				return
			}

		case <-c.closed:
			return
		}
	}
}
