package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripRepository_CreateAndGet(t *testing.T) {
	repo := NewTripRepository()
	ctx := context.Background()

	trip, err := domain.NewTrip("Goa", "u1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, trip))

	dup := *trip
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrTripCodeTaken)

	got, err := repo.GetByCode(ctx, trip.TripCode)
	require.NoError(t, err)
	assert.Equal(t, "Goa", got.TripName)

	got.Members[0] = "mutated"
	again, err := repo.GetByCode(ctx, trip.TripCode)
	require.NoError(t, err)
	assert.Equal(t, "u1", again.Members[0])

	_, err = repo.GetByCode(ctx, "MISSING")
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripRepository_AddMemberConcurrently(t *testing.T) {
	repo := NewTripRepository()
	ctx := context.Background()

	trip, err := domain.NewTrip("Goa", "u1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, trip))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.AddMember(ctx, trip.TripCode, "u2")
		}()
	}
	wg.Wait()

	got, err := repo.GetByCode(ctx, trip.TripCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, got.Members)
}

func TestTripRepository_UpdateItineraryAndList(t *testing.T) {
	repo := NewTripRepository()
	ctx := context.Background()

	trip, err := domain.NewTrip("Goa", "u1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, trip))

	updated, err := repo.UpdateItinerary(ctx, trip.TripCode, domain.Itinerary{
		Days:       []string{"Day 1"},
		Activities: map[string][]string{"Day 1": {"Beach"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Beach"}, updated.Activities["Day 1"])
	assert.False(t, updated.UpdatedAt.Before(trip.UpdatedAt))

	_, err = repo.UpdateItinerary(ctx, "MISSING", domain.NewItinerary())
	assert.ErrorIs(t, err, domain.ErrTripNotFound)

	trips, err := repo.ListByMember(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, trips, 1)

	trips, err = repo.ListByMember(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestSoloTripRepository(t *testing.T) {
	repo := NewSoloTripRepository()
	ctx := context.Background()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	trip, err := domain.NewSoloTrip("u1", domain.SoloTripInput{
		ItineraryName: "Summer",
		Destination:   "Rome",
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 3),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, trip))

	trip.Destination = "Naples"
	require.NoError(t, repo.Update(ctx, trip))

	got, err := repo.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Naples", got.Destination)

	list, err := repo.ListByOwner(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Delete(ctx, trip.ID))
	assert.ErrorIs(t, repo.Delete(ctx, trip.ID), domain.ErrSoloTripNotFound)
	assert.ErrorIs(t, repo.Update(ctx, trip), domain.ErrSoloTripNotFound)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(domain.User{ID: "u1", Name: "Asha"})

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)

	_, err = repo.GetByID(context.Background(), "u2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	repo.Put(domain.User{ID: "u2", Name: "Ben"})
	_, err = repo.GetByID(context.Background(), "u2")
	assert.NoError(t, err)
}

func TestTripAuditLogRepository(t *testing.T) {
	repo := NewTripAuditLogRepository()
	ctx := context.Background()

	old := domain.NewTripCreatedLog("ABC234", "u1", "Goa")
	old.Timestamp = time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Log(ctx, old))
	require.NoError(t, repo.Log(ctx, domain.NewMemberJoinedLog("ABC234", "u2", 2)))

	logs, err := repo.GetByTripCode(ctx, "ABC234", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.EventMemberJoined, logs[0].EventType)

	require.NoError(t, repo.DeleteOlderThan(ctx, time.Now().Add(-time.Hour)))
	logs, err = repo.GetByTripCode(ctx, "ABC234", 10)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
