package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/ai"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/metrics"
)

type Source string

const (
	SourceManual   Source = "manual"
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// GenerationResult is the drafted itinerary and where it came from. Reason
// explains a fallback.
type GenerationResult struct {
	Source    Source
	Itinerary domain.Itinerary
	Reason    string
}

type UseCase interface {
	Generate(ctx context.Context, destination string, start, end time.Time, useAI bool) (*GenerationResult, error)
}

type useCase struct {
	generator ai.Generator
	logger    logging.Logger
}

// NewUseCase accepts a nil generator, in which case AI requests fall back.
func NewUseCase(generator ai.Generator, logger logging.Logger) UseCase {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &useCase{
		generator: generator,
		logger:    logger,
	}
}

var errAIDisabled = errors.New("ai generation is disabled")

func (uc *useCase) Generate(ctx context.Context, destination string, start, end time.Time, useAI bool) (*GenerationResult, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidInput)
	}

	if !useAI {
		return uc.result(SourceManual, domain.EmptyItinerary(start, end), ""), nil
	}

	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrInvalidInput)
	}

	if uc.generator == nil {
		return uc.fallback(start, end, destination, errAIDisabled), nil
	}

	it, err := uc.generator.GenerateItinerary(ctx, destination, domain.DayCount(start, end))
	if err != nil {
		return uc.fallback(start, end, destination, err), nil
	}
	return uc.result(SourceAI, it, ""), nil
}

func (uc *useCase) fallback(start, end time.Time, destination string, cause error) *GenerationResult {
	uc.logger.Warn(logging.AI, logging.Generation, "ai generation failed, using empty days", map[logging.ExtraKey]any{
		logging.ErrorMessage: cause.Error(),
		logging.Destination:  destination,
	})
	return uc.result(SourceFallback, domain.EmptyItinerary(start, end), cause.Error())
}

func (uc *useCase) result(source Source, it domain.Itinerary, reason string) *GenerationResult {
	metrics.ItineraryGenerations.WithLabelValues(string(source)).Inc()
	return &GenerationResult{Source: source, Itinerary: it, Reason: reason}
}
