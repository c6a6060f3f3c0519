package itinerary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, destination string, days int) (domain.Itinerary, error)

func (f generatorFunc) GenerateItinerary(ctx context.Context, destination string, days int) (domain.Itinerary, error) {
	return f(ctx, destination, days)
}

var (
	start = time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
)

func TestGenerate_Manual(t *testing.T) {
	uc := NewUseCase(nil, nil)

	res, err := uc.Generate(context.Background(), "", start, end, false)
	require.NoError(t, err)
	assert.Equal(t, SourceManual, res.Source)
	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3"}, res.Itinerary.Days)
	assert.Equal(t, []string{}, res.Itinerary.Activities["Day 3"])
}

func TestGenerate_AI(t *testing.T) {
	var gotDays int
	gen := generatorFunc(func(_ context.Context, destination string, days int) (domain.Itinerary, error) {
		gotDays = days
		assert.Equal(t, "Kyoto", destination)
		return domain.Itinerary{
			Days:       []string{"Day 1"},
			Activities: map[string][]string{"Day 1": {"Temple"}},
		}, nil
	})

	res, err := NewUseCase(gen, nil).Generate(context.Background(), " Kyoto ", start, end, true)
	require.NoError(t, err)
	assert.Equal(t, 3, gotDays)
	assert.Equal(t, SourceAI, res.Source)
	assert.Equal(t, []string{"Temple"}, res.Itinerary.Activities["Day 1"])
	assert.Empty(t, res.Reason)
}

func TestGenerate_FallbackOnError(t *testing.T) {
	gen := generatorFunc(func(context.Context, string, int) (domain.Itinerary, error) {
		return domain.Itinerary{}, errors.New("quota exceeded")
	})

	res, err := NewUseCase(gen, nil).Generate(context.Background(), "Kyoto", start, end, true)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "quota exceeded", res.Reason)
	assert.Equal(t, domain.EmptyItinerary(start, end), res.Itinerary)
}

func TestGenerate_FallbackWhenDisabled(t *testing.T) {
	res, err := NewUseCase(nil, nil).Generate(context.Background(), "Kyoto", start, start, true)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, []string{"Day 1"}, res.Itinerary.Days)
}

func TestGenerate_InvalidInput(t *testing.T) {
	uc := NewUseCase(nil, nil)

	_, err := uc.Generate(context.Background(), "Kyoto", time.Time{}, end, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(context.Background(), "  ", start, end, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
