package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/tripsync/internal/infrastructure/ws"
	"github.com/hilthontt/tripsync/internal/presentation/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tripCode = "ABC234"

type tripAccessFuncs struct {
	isMember func(ctx context.Context, tripCode, userID string) (bool, error)
	getTrip  func(ctx context.Context, tripCode string, identity domain.Identity) (*domain.Trip, error)
}

func (f tripAccessFuncs) IsMember(ctx context.Context, tripCode, userID string) (bool, error) {
	return f.isMember(ctx, tripCode, userID)
}

func (f tripAccessFuncs) GetTrip(ctx context.Context, tripCode string, identity domain.Identity) (*domain.Trip, error) {
	return f.getTrip(ctx, tripCode, identity)
}

func membersOnly(members ...string) tripAccessFuncs {
	trip := &domain.Trip{
		TripCode: tripCode,
		TripName: "Goa",
		Members:  members,
		Itinerary: domain.Itinerary{
			Days:       []string{"Day 1"},
			Activities: map[string][]string{"Day 1": {"Beach"}},
		},
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	return tripAccessFuncs{
		isMember: func(_ context.Context, code, userID string) (bool, error) {
			return code == tripCode && trip.IsMember(userID), nil
		},
		getTrip: func(_ context.Context, code string, identity domain.Identity) (*domain.Trip, error) {
			if code != tripCode {
				return nil, domain.ErrTripNotFound
			}
			if !trip.IsMember(identity.UserID) {
				return nil, domain.ErrNotMember
			}
			return trip, nil
		},
	}
}

type frame struct {
	Type     string          `json:"type"`
	TripCode string          `json:"tripCode"`
	Data     json.RawMessage `json:"data"`
}

type testEnv struct {
	hub *ws.Hub
	url string
}

func newTestEnv(t *testing.T, trips TripAccess, limiter *ratelimiter.WindowLimiter) *testEnv {
	t.Helper()

	hub := ws.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	h := NewHandler(hub, NewDispatcher(hub, trips, limiter, nil), ws.DefaultClientOptions(), []string{"*"}, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := r.URL.Query().Get("user"); user != "" {
				r = r.WithContext(utils.WithIdentity(r.Context(), domain.Identity{UserID: user, Name: strings.ToUpper(user)}))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/ws", h.ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return &testEnv{hub: hub, url: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"}
}

func (e *testEnv) dial(t *testing.T, user string) (*websocket.Conn, string) {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(e.url+"?user="+user, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f := readFrame(t, conn, ws.Connected)
	var payload ws.ConnectedPayload
	require.NoError(t, json.Unmarshal(f.Data, &payload))
	assert.Equal(t, user, payload.UserID)
	return conn, payload.ConnectionID
}

func (e *testEnv) waitForRoom(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.hub.RoomStats(tripCode).Connections == n
	}, 2*time.Second, 10*time.Millisecond)
}

func send(t *testing.T, conn *websocket.Conn, msg any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

// readFrame skips frames of other types until one of the wanted type arrives.
func readFrame(t *testing.T, conn *websocket.Conn, want string) frame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var f frame
		require.NoError(t, conn.ReadJSON(&f), "waiting for %s", want)
		if f.Type == want {
			return f
		}
	}
}

func joinRoom(t *testing.T, e *testEnv, conn *websocket.Conn, n int) {
	t.Helper()
	send(t, conn, map[string]any{"type": ws.JoinTripRoom, "tripCode": strings.ToLower(tripCode)})
	e.waitForRoom(t, n)
}

func TestServeWS_RequiresIdentity(t *testing.T) {
	h := NewHandler(ws.NewHub(nil), NewDispatcher(nil, nil, nil, nil), ws.DefaultClientOptions(), nil, nil)

	w := httptest.NewRecorder()
	h.ServeWS(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRealtime_RelaysItineraryToOtherMembers(t *testing.T) {
	e := newTestEnv(t, membersOnly("alice", "bob"), nil)
	alice, _ := e.dial(t, "alice")
	bob, _ := e.dial(t, "bob")

	joinRoom(t, e, alice, 1)
	joinRoom(t, e, bob, 2)

	presence := readFrame(t, alice, ws.PresenceUpdated)
	assert.Contains(t, string(presence.Data), `"status":"online"`)

	send(t, bob, map[string]any{
		"type":     ws.ItineraryUpdated,
		"tripCode": tripCode,
		"data": map[string]any{
			"days":       []any{"Day 1", "", "Day 2"},
			"activities": map[string]any{"Day 1": []any{" Surf ", "", 3}},
		},
	})

	f := readFrame(t, alice, ws.ItineraryUpdated)
	var payload ws.ItineraryPayload
	require.NoError(t, json.Unmarshal(f.Data, &payload))
	assert.Equal(t, tripCode, payload.TripCode)
	assert.Equal(t, []string{"Day 1", "Day 2"}, payload.Days)
	assert.Equal(t, []string{"Surf", "3"}, payload.Activities["Day 1"])
	assert.Equal(t, "bob", payload.UpdatedBy)
	assert.NotEmpty(t, payload.Timestamp)
}

func TestRealtime_TripJoinedNotifiesRoom(t *testing.T) {
	e := newTestEnv(t, membersOnly("alice", "bob"), nil)
	alice, _ := e.dial(t, "alice")
	bob, _ := e.dial(t, "bob")

	joinRoom(t, e, alice, 1)
	send(t, bob, map[string]any{"type": ws.TripJoined, "data": map[string]any{"tripCode": tripCode, "username": "Bobby"}})

	f := readFrame(t, alice, ws.UserJoinedNotification)
	var payload ws.MemberPayload
	require.NoError(t, json.Unmarshal(f.Data, &payload))
	assert.Equal(t, "Bobby", payload.Username)
	assert.Equal(t, tripCode, payload.TripCode)
}

func TestRealtime_TripCreatedJoinsCreator(t *testing.T) {
	e := newTestEnv(t, membersOnly("alice", "bob"), nil)
	alice, _ := e.dial(t, "alice")
	bob, _ := e.dial(t, "bob")

	joinRoom(t, e, bob, 1)
	send(t, alice, map[string]any{"type": ws.TripCreated, "tripCode": tripCode, "data": map[string]any{"tripName": "Goa"}})
	e.waitForRoom(t, 2)

	f := readFrame(t, bob, ws.TripCreated)
	var payload ws.TripPayload
	require.NoError(t, json.Unmarshal(f.Data, &payload))
	assert.Equal(t, "Goa", payload.TripName)
}

func TestRealtime_SyncRepliesToRequesterOnly(t *testing.T) {
	e := newTestEnv(t, membersOnly("alice"), nil)
	alice, _ := e.dial(t, "alice")

	send(t, alice, map[string]any{"type": ws.RequestItinerarySync, "tripCode": tripCode})

	f := readFrame(t, alice, ws.ItinerarySync)
	var payload ws.ItineraryPayload
	require.NoError(t, json.Unmarshal(f.Data, &payload))
	assert.Equal(t, []string{"Beach"}, payload.Activities["Day 1"])
}

func TestRealtime_RejectsNonMembers(t *testing.T) {
	e := newTestEnv(t, membersOnly("alice"), nil)
	mallory, _ := e.dial(t, "mallory")

	send(t, mallory, map[string]any{"type": ws.JoinTripRoom, "tripCode": tripCode})
	f := readFrame(t, mallory, ws.JoinFailed)
	assert.Contains(t, string(f.Data), "not a member")
	assert.Equal(t, 0, e.hub.RoomStats(tripCode).Connections)

	send(t, mallory, map[string]any{"type": ws.RequestItinerarySync, "tripCode": tripCode})
	f = readFrame(t, mallory, ws.ErrorEvent)
	assert.Contains(t, string(f.Data), "not a member")
}

func TestRealtime_BadFrames(t *testing.T) {
	e := newTestEnv(t, nil, nil)
	alice, _ := e.dial(t, "alice")

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte("not json")))
	readFrame(t, alice, ws.BadMessage)

	send(t, alice, map[string]any{"type": "teleport", "tripCode": tripCode})
	f := readFrame(t, alice, ws.BadMessage)
	assert.Contains(t, string(f.Data), "teleport")

	send(t, alice, map[string]any{"type": ws.JoinTripRoom})
	readFrame(t, alice, ws.JoinFailed)

	send(t, alice, map[string]any{"type": ws.ItineraryUpdated, "tripCode": tripCode, "data": map[string]any{"days": []string{}}})
	readFrame(t, alice, ws.BadMessage)
}

func TestRealtime_RateLimitsChattyConnections(t *testing.T) {
	e := newTestEnv(t, nil, ratelimiter.NewWindowLimiter(2, time.Minute))
	alice, _ := e.dial(t, "alice")

	for i := 0; i < 3; i++ {
		send(t, alice, map[string]any{"type": ws.UserTyping, "tripCode": tripCode, "data": map[string]any{"typing": true}})
	}

	f := readFrame(t, alice, ws.RateLimited)
	assert.Contains(t, string(f.Data), "RATE_LIMITED")
}

func TestRealtime_DisconnectLeavesRoom(t *testing.T) {
	e := newTestEnv(t, nil, nil)
	alice, _ := e.dial(t, "alice")
	bob, _ := e.dial(t, "bob")

	joinRoom(t, e, alice, 1)
	joinRoom(t, e, bob, 2)

	require.NoError(t, bob.Close())
	e.waitForRoom(t, 1)

	f := readFrame(t, alice, ws.PresenceUpdated)
	for strings.Contains(string(f.Data), `"online"`) {
		f = readFrame(t, alice, ws.PresenceUpdated)
	}
	assert.Contains(t, string(f.Data), `"offline"`)
}
