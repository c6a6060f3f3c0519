package collaboration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/repository"
	"github.com/hilthontt/tripsync/internal/infrastructure/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type broadcast struct {
	tripCode string
	kind     string
	details  any
	exclude  string
}

type fakeHub struct {
	mu     sync.Mutex
	joins  []string
	events []broadcast
}

func (h *fakeHub) JoinRoom(connectionID, tripCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joins = append(h.joins, connectionID+"@"+tripCode)
}

func (h *fakeHub) BroadcastUpdate(tripCode string, payload ws.ItineraryPayload, exclude string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, broadcast{tripCode, ws.ItineraryUpdated, payload, exclude})
}

func (h *fakeHub) BroadcastMembershipEvent(tripCode, kind string, details any, exclude string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, broadcast{tripCode, kind, details, exclude})
}

func (h *fakeHub) ofKind(kind string) []broadcast {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []broadcast
	for _, e := range h.events {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *fakePublisher) record(kind string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, kind)
	return p.err
}

func (p *fakePublisher) PublishTripCreated(context.Context, domain.Trip) error {
	return p.record("created")
}

func (p *fakePublisher) PublishMemberJoined(context.Context, domain.Trip, string) error {
	return p.record("joined")
}

func (p *fakePublisher) PublishItineraryUpdated(context.Context, domain.Trip, string) error {
	return p.record("updated")
}

// stubTrips overrides single repository calls on top of the in-memory store.
type stubTrips struct {
	domain.TripRepository
	create func(ctx context.Context, trip *domain.Trip) error
}

func (s *stubTrips) Create(ctx context.Context, trip *domain.Trip) error {
	if s.create != nil {
		return s.create(ctx, trip)
	}
	return s.TripRepository.Create(ctx, trip)
}

type fixture struct {
	uc        UseCase
	trips     domain.TripRepository
	hub       *fakeHub
	publisher *fakePublisher
}

var (
	alice = domain.Identity{UserID: "alice", Name: "Alice"}
	bob   = domain.Identity{UserID: "bob", Name: "Bob"}
	carol = domain.Identity{UserID: "carol", Name: "Carol"}
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, trips domain.TripRepository) *fixture {
	t.Helper()

	if trips == nil {
		trips = repository.NewTripRepository()
	}
	users := repository.NewUserRepository(
		domain.User{ID: "alice", Name: "Alice"},
		domain.User{ID: "bob", Name: "Bob"},
	)
	hub := &fakeHub{}
	publisher := &fakePublisher{}

	return &fixture{
		uc: NewUseCase(trips, users, hub, publisher, nil, Options{
			Now: func() time.Time { return fixedNow },
		}),
		trips:     trips,
		hub:       hub,
		publisher: publisher,
	}
}

func TestCreateTrip(t *testing.T) {
	f := newFixture(t, nil)

	trip, err := f.uc.CreateTrip(context.Background(), "  Goa 2025 ", alice, "conn-a")
	require.NoError(t, err)

	assert.Equal(t, "Goa 2025", trip.TripName)
	assert.Len(t, trip.TripCode, domain.TripCodeLength)
	assert.Equal(t, []string{"alice"}, trip.Members)
	assert.Empty(t, trip.Days)
	assert.Empty(t, trip.Activities)

	stored, err := f.trips.GetByCode(context.Background(), trip.TripCode)
	require.NoError(t, err)
	assert.Equal(t, trip.TripName, stored.TripName)

	assert.Equal(t, []string{"conn-a@" + trip.TripCode}, f.hub.joins)
	created := f.hub.ofKind(ws.TripCreated)
	require.Len(t, created, 1)
	assert.Equal(t, trip.TripCode, created[0].tripCode)
	assert.Equal(t, []string{"created"}, f.publisher.events)
}

func TestCreateTrip_RequiresName(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.CreateTrip(context.Background(), "   ", alice, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.hub.events)
}

func TestCreateTrip_RetriesCodeCollision(t *testing.T) {
	var codes []string
	mem := repository.NewTripRepository()
	trips := &stubTrips{TripRepository: mem}
	trips.create = func(ctx context.Context, trip *domain.Trip) error {
		codes = append(codes, trip.TripCode)
		if len(codes) < 3 {
			return domain.ErrTripCodeTaken
		}
		return mem.Create(ctx, trip)
	}
	f := newFixture(t, trips)

	trip, err := f.uc.CreateTrip(context.Background(), "Retry", alice, "")
	require.NoError(t, err)
	assert.Len(t, codes, 3)
	assert.Equal(t, codes[2], trip.TripCode)
	assert.Empty(t, f.hub.joins)
}

func TestCreateTrip_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	trips := &stubTrips{TripRepository: repository.NewTripRepository()}
	trips.create = func(context.Context, *domain.Trip) error {
		calls++
		return domain.ErrTripCodeTaken
	}
	f := newFixture(t, trips)

	_, err := f.uc.CreateTrip(context.Background(), "Unlucky", alice, "")
	assert.ErrorIs(t, err, domain.ErrTripCodeTaken)
	assert.Equal(t, defaultCodeAttempts, calls)
	assert.Empty(t, f.hub.events)
}

func TestCreateTrip_StorageErrorIsNotRetried(t *testing.T) {
	boom := errors.New("disk full")
	calls := 0
	trips := &stubTrips{TripRepository: repository.NewTripRepository()}
	trips.create = func(context.Context, *domain.Trip) error {
		calls++
		return boom
	}
	f := newFixture(t, trips)

	_, err := f.uc.CreateTrip(context.Background(), "Broken", alice, "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestJoinTrip(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "conn-a")
	require.NoError(t, err)

	res, err := f.uc.JoinTrip(ctx, " "+trip.TripCode+" ", bob, "conn-b")
	require.NoError(t, err)
	assert.Equal(t, "Goa", res.TripName)
	assert.Equal(t, trip.TripCode, res.TripCode)
	assert.Equal(t, "Bob", res.MemberName)

	stored, err := f.trips.GetByCode(ctx, trip.TripCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, stored.Members)

	joined := f.hub.ofKind(ws.UserJoinedNotification)
	require.Len(t, joined, 1)
	assert.Equal(t, "conn-b", joined[0].exclude)
	assert.Equal(t, "Bob", joined[0].details.(ws.MemberPayload).Username)
	assert.Contains(t, f.hub.joins, "conn-b@"+trip.TripCode)
}

func TestJoinTrip_IsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "")
	require.NoError(t, err)

	_, err = f.uc.JoinTrip(ctx, trip.TripCode, bob, "")
	require.NoError(t, err)
	_, err = f.uc.JoinTrip(ctx, trip.TripCode, bob, "")
	require.NoError(t, err)

	stored, err := f.trips.GetByCode(ctx, trip.TripCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, stored.Members)
}

func TestJoinTrip_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.JoinTrip(ctx, "  ", bob, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.JoinTrip(ctx, "ZZZZZZ", bob, "conn-b")
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
	assert.Empty(t, f.hub.events)

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "")
	require.NoError(t, err)

	_, err = f.uc.JoinTrip(ctx, trip.TripCode, carol, "conn-c")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, f.hub.ofKind(ws.UserJoinedNotification))
}

func TestUpdateItinerary(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "")
	require.NoError(t, err)

	it, err := f.uc.UpdateItinerary(ctx, UpdateInput{
		TripCode:     trip.TripCode,
		Identity:     alice,
		Days:         []string{"Day 1", "", "Day 2"},
		Activities:   map[string][]string{"Day 1": {"  Beach ", "", "   "}, "Day 2": {}},
		ConnectionID: "conn-a",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Day 1", "Day 2"}, it.Days)
	assert.Equal(t, []string{"Beach"}, it.Activities["Day 1"])
	assert.Equal(t, []string{}, it.Activities["Day 2"])

	updates := f.hub.ofKind(ws.ItineraryUpdated)
	require.Len(t, updates, 1)
	payload := updates[0].details.(ws.ItineraryPayload)
	assert.Equal(t, "conn-a", updates[0].exclude)
	assert.Equal(t, "alice", payload.UpdatedBy)
	assert.Equal(t, ws.Timestamp(fixedNow), payload.Timestamp)
	assert.Equal(t, it.Days, payload.Days)
	assert.Contains(t, f.publisher.events, "updated")
}

func TestUpdateItinerary_LastWriteWins(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "conn-a")
	require.NoError(t, err)
	_, err = f.uc.JoinTrip(ctx, trip.TripCode, bob, "conn-b")
	require.NoError(t, err)

	fromAlice := UpdateInput{
		TripCode:     trip.TripCode,
		Identity:     alice,
		Days:         []string{"Day 1", "Day 2"},
		Activities:   map[string][]string{"Day 1": {"Beach"}, "Day 2": {"Fort"}},
		ConnectionID: "conn-a",
	}
	fromBob := UpdateInput{
		TripCode:     trip.TripCode,
		Identity:     bob,
		Days:         []string{"Day 1", "Day 3"},
		Activities:   map[string][]string{"Day 3": {"Market"}},
		ConnectionID: "conn-b",
	}

	t.Run("sequential", func(t *testing.T) {
		_, err := f.uc.UpdateItinerary(ctx, fromAlice)
		require.NoError(t, err)
		_, err = f.uc.UpdateItinerary(ctx, fromBob)
		require.NoError(t, err)

		stored, err := f.trips.GetByCode(ctx, trip.TripCode)
		require.NoError(t, err)
		assert.Equal(t, []string{"Day 1", "Day 3"}, stored.Days)
		assert.Equal(t, map[string][]string{"Day 3": {"Market"}}, stored.Activities)
	})

	t.Run("concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		for _, in := range []UpdateInput{fromAlice, fromBob} {
			wg.Add(1)
			go func(in UpdateInput) {
				defer wg.Done()
				_, err := f.uc.UpdateItinerary(ctx, in)
				assert.NoError(t, err)
			}(in)
		}
		wg.Wait()

		stored, err := f.trips.GetByCode(ctx, trip.TripCode)
		require.NoError(t, err)

		aliceWon := domain.Itinerary{Days: fromAlice.Days, Activities: fromAlice.Activities}
		bobWon := domain.Itinerary{Days: fromBob.Days, Activities: fromBob.Activities}
		assert.True(t, stored.Itinerary.Equal(aliceWon) || stored.Itinerary.Equal(bobWon),
			"stored itinerary %v is not exactly one of the payloads", stored.Itinerary)
	})
}

func TestUpdateItinerary_ReplacesActivitiesWholesale(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "")
	require.NoError(t, err)

	_, err = f.uc.UpdateItinerary(ctx, UpdateInput{
		TripCode:   trip.TripCode,
		Identity:   alice,
		Days:       []string{"Day 1", "Day 2"},
		Activities: map[string][]string{"Day 1": {"A"}, "Day 2": {"B"}},
	})
	require.NoError(t, err)

	it, err := f.uc.UpdateItinerary(ctx, UpdateInput{
		TripCode:   trip.TripCode,
		Identity:   alice,
		Activities: map[string][]string{"Day 2": {"C"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Day 1", "Day 2"}, it.Days)
	assert.Equal(t, map[string][]string{"Day 2": {"C"}}, it.Activities)
}

func TestUpdateItinerary_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "")
	require.NoError(t, err)

	_, err = f.uc.UpdateItinerary(ctx, UpdateInput{TripCode: "ZZZZZZ", Identity: alice})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "missing fields are checked before the lookup")

	_, err = f.uc.UpdateItinerary(ctx, UpdateInput{TripCode: "ZZZZZZ", Identity: alice, Days: []string{}})
	assert.ErrorIs(t, err, domain.ErrTripNotFound)

	_, err = f.uc.UpdateItinerary(ctx, UpdateInput{TripCode: trip.TripCode, Identity: bob, Days: []string{"Day 1"}})
	assert.ErrorIs(t, err, domain.ErrNotMember)

	stored, err := f.trips.GetByCode(ctx, trip.TripCode)
	require.NoError(t, err)
	assert.Empty(t, stored.Days)
	assert.Empty(t, f.hub.ofKind(ws.ItineraryUpdated))
}

func TestGetTrip(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "")
	require.NoError(t, err)

	got, err := f.uc.GetTrip(ctx, trip.TripCode, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, got.Members)

	_, err = f.uc.GetTrip(ctx, trip.TripCode, bob)
	assert.ErrorIs(t, err, domain.ErrNotMember)

	_, err = f.uc.GetTrip(ctx, "ZZZZZZ", alice)
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestListTrips(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	list, err := f.uc.ListTrips(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list.CurrentTrips)
	assert.NotNil(t, list.PastTrips)

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "")
	require.NoError(t, err)
	_, err = f.uc.CreateTrip(ctx, "Other", alice, "")
	require.NoError(t, err)
	_, err = f.uc.JoinTrip(ctx, trip.TripCode, bob, "")
	require.NoError(t, err)

	list, err = f.uc.ListTrips(ctx, bob)
	require.NoError(t, err)
	require.Len(t, list.CurrentTrips, 1)
	assert.Equal(t, trip.TripCode, list.CurrentTrips[0].TripCode)
	assert.Empty(t, list.PastTrips)
}

func TestIsMember(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	trip, err := f.uc.CreateTrip(ctx, "Goa", alice, "")
	require.NoError(t, err)

	ok, err := f.uc.IsMember(ctx, trip.TripCode, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.uc.IsMember(ctx, trip.TripCode, "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.uc.IsMember(ctx, "ZZZZZZ", "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPublishFailureDoesNotFailTheCall(t *testing.T) {
	f := newFixture(t, nil)
	f.publisher.err = errors.New("broker down")

	_, err := f.uc.CreateTrip(context.Background(), "Goa", alice, "")
	assert.NoError(t, err)
}
