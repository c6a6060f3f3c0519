package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/tripsync/internal/infrastructure/validate"
	"github.com/hilthontt/tripsync/internal/infrastructure/ws"
)

// TripAccess answers membership and snapshot questions for socket events.
type TripAccess interface {
	IsMember(ctx context.Context, tripCode, userID string) (bool, error)
	GetTrip(ctx context.Context, tripCode string, identity domain.Identity) (*domain.Trip, error)
}

type inboundPayload struct {
	TripCode   string              `json:"tripCode"`
	TripName   string              `json:"tripName"`
	Username   string              `json:"username"`
	Days       *domain.DayList     `json:"days"`
	Activities *domain.ActivityMap `json:"activities"`
	Day        string              `json:"day"`
	Typing     bool                `json:"typing"`
	Status     string              `json:"status"`
}

var (
	tripCodeRule = validate.TripCode()
	statusRule   = validate.Field("status", validate.OneOf(ws.PresenceOnline, ws.PresenceOffline))
)

// Dispatcher routes frames read from a client. Without a TripAccess every
// room is open and sync requests are refused.
type Dispatcher struct {
	hub     *ws.Hub
	trips   TripAccess
	limiter *ratelimiter.WindowLimiter
	logger  logging.Logger
	now     func() time.Time
}

func NewDispatcher(hub *ws.Hub, trips TripAccess, limiter *ratelimiter.WindowLimiter, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Dispatcher{
		hub:     hub,
		trips:   trips,
		limiter: limiter,
		logger:  logger,
		now:     time.Now,
	}
}

// Forget releases per-connection state once the socket is gone.
func (d *Dispatcher) Forget(connectionID string) {
	if d.limiter != nil {
		d.limiter.Forget(connectionID)
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, c *ws.Client, msg ws.InboundMessage) {
	if d.limiter != nil {
		if ok, retryAfter := d.limiter.Allow(c.ID); !ok {
			d.hub.SendTo(c.ID, ws.NewRateLimited(retryAfter))
			return
		}
	}

	var p inboundPayload
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			d.hub.SendTo(c.ID, ws.NewBadMessage("data is not a valid "+msg.Type+" payload"))
			return
		}
	}

	code := msg.TripCode
	if code == "" {
		code = p.TripCode
	}
	code = domain.NormalizeTripCode(code)

	if err := tripCodeRule(code); err != nil {
		if msg.Type == ws.JoinTripRoom || msg.Type == ws.TripJoined {
			d.hub.SendTo(c.ID, ws.NewJoinFailed(code, err.Error()))
		} else {
			d.hub.SendTo(c.ID, ws.NewBadMessage(err.Error()))
		}
		return
	}

	switch msg.Type {
	case ws.JoinTripRoom, ws.TripJoined:
		d.joinRoom(ctx, c, code, msg.Type, p)
	case ws.LeaveTripRoom:
		d.hub.LeaveRoom(c.ID, code)
	case ws.ItineraryUpdated:
		d.relayItinerary(ctx, c, code, p)
	case ws.RequestItinerarySync:
		d.sync(ctx, c, code)
	case ws.UserTyping:
		if d.authorize(ctx, c, code) {
			d.hub.BroadcastMembershipEvent(code, ws.UserTyping, ws.TypingPayload{
				TripCode: code,
				UserID:   c.UserID,
				Username: c.Username,
				Day:      p.Day,
				Typing:   p.Typing,
			}, c.ID)
		}
	case ws.PresenceUpdated:
		if err := statusRule(p.Status); err != nil {
			d.hub.SendTo(c.ID, ws.NewBadMessage(err.Error()))
			return
		}
		if d.authorize(ctx, c, code) {
			d.hub.BroadcastMembershipEvent(code, ws.PresenceUpdated, ws.PresencePayload{
				TripCode: code,
				UserID:   c.UserID,
				Username: c.Username,
				Status:   p.Status,
			}, c.ID)
		}
	case ws.TripCreated:
		if d.authorize(ctx, c, code) {
			d.hub.JoinRoom(c.ID, code)
			d.hub.BroadcastMembershipEvent(code, ws.TripCreated, ws.TripPayload{
				TripCode: code,
				TripName: p.TripName,
			}, c.ID)
		}
	default:
		d.hub.SendTo(c.ID, ws.NewBadMessage("unknown event type "+msg.Type))
	}
}

func (d *Dispatcher) joinRoom(ctx context.Context, c *ws.Client, code, kind string, p inboundPayload) {
	if ok, reason := d.isMember(ctx, c, code); !ok {
		d.hub.SendTo(c.ID, ws.NewJoinFailed(code, reason))
		return
	}

	d.hub.JoinRoom(c.ID, code)

	if kind == ws.TripJoined {
		username := p.Username
		if username == "" {
			username = c.Username
		}
		d.hub.BroadcastMembershipEvent(code, ws.UserJoinedNotification, ws.MemberPayload{
			TripCode: code,
			UserID:   c.UserID,
			Username: username,
		}, c.ID)
	}
}

// relayItinerary forwards a peer's full document to the room. The sender is
// expected to persist through the HTTP update.
func (d *Dispatcher) relayItinerary(ctx context.Context, c *ws.Client, code string, p inboundPayload) {
	if p.Days == nil || p.Activities == nil {
		d.hub.SendTo(c.ID, ws.NewBadMessage("itineraryUpdated needs days and activities"))
		return
	}
	if !d.authorize(ctx, c, code) {
		return
	}

	it := domain.Itinerary{
		Days:       []string(*p.Days),
		Activities: p.Activities.Strings(),
	}.Sanitize()

	d.hub.BroadcastUpdate(code, ws.ItineraryPayload{
		TripCode:   code,
		Days:       it.Days,
		Activities: it.Activities,
		UpdatedBy:  c.UserID,
		Timestamp:  ws.Timestamp(d.now()),
	}, c.ID)
}

func (d *Dispatcher) sync(ctx context.Context, c *ws.Client, code string) {
	if d.trips == nil {
		d.hub.SendTo(c.ID, ws.NewError(code, "sync is not available"))
		return
	}

	trip, err := d.trips.GetTrip(ctx, code, domain.Identity{UserID: c.UserID, Name: c.Username})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrTripNotFound):
		d.hub.SendTo(c.ID, ws.NewError(code, "trip not found"))
		return
	case errors.Is(err, domain.ErrNotMember):
		d.hub.SendTo(c.ID, ws.NewError(code, "not a member of this trip"))
		return
	default:
		d.logger.Error(logging.WebSocket, logging.Room, "failed to load trip for sync", map[logging.ExtraKey]any{
			logging.TripCode:     code,
			logging.ConnectionID: c.ID,
			logging.ErrorMessage: err.Error(),
		})
		d.hub.SendTo(c.ID, ws.NewError(code, "could not load trip"))
		return
	}

	d.hub.SendTo(c.ID, ws.NewItinerarySync(ws.ItineraryPayload{
		TripCode:   code,
		Days:       trip.Days,
		Activities: trip.Activities,
		Timestamp:  ws.Timestamp(trip.UpdatedAt),
	}))
}

// authorize reports membership and answers the client with an error event
// when it is missing.
func (d *Dispatcher) authorize(ctx context.Context, c *ws.Client, code string) bool {
	ok, reason := d.isMember(ctx, c, code)
	if !ok {
		d.hub.SendTo(c.ID, ws.NewError(code, reason))
	}
	return ok
}

func (d *Dispatcher) isMember(ctx context.Context, c *ws.Client, code string) (bool, string) {
	if d.trips == nil {
		return true, ""
	}

	ok, err := d.trips.IsMember(ctx, code, c.UserID)
	if err != nil {
		d.logger.Warn(logging.WebSocket, logging.Room, "membership check failed", map[logging.ExtraKey]any{
			logging.TripCode:     code,
			logging.UserID:       c.UserID,
			logging.ErrorMessage: err.Error(),
		})
		return false, "could not verify trip membership"
	}
	if !ok {
		return false, "not a member of this trip"
	}
	return true, ""
}
