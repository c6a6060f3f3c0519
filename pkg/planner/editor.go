// Package planner is the client side of a trip itinerary: local edits, their
// coalesced broadcast and the realtime connection that keeps peers in sync.
package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
)

type Itinerary = domain.Itinerary

type Mode int

const (
	ModeSolo Mode = iota
	ModeCollaborative
)

func (m Mode) String() string {
	if m == ModeCollaborative {
		return "collaborative"
	}
	return "solo"
}

var (
	ErrEmptyActivity = errors.New("activity cannot be empty")
	ErrUnknownDay    = errors.New("day is not part of the itinerary")
	ErrNoSaver       = errors.New("no saver configured")
	ErrNoFetcher     = errors.New("no fetcher configured")
)

// Saver persists an itinerary on explicit save.
type Saver interface {
	Save(ctx context.Context, it Itinerary) error
}

// Fetcher loads the persisted itinerary of a trip.
type Fetcher interface {
	Fetch(ctx context.Context, tripCode string) (Itinerary, error)
}

type EditorOptions struct {
	Mode     Mode
	TripCode string
	Initial  Itinerary
	// Coalescer receives every local mutation in collaborative mode.
	Coalescer *Coalescer
	Saver     Saver
	Fetcher   Fetcher
}

// Editor holds the local copy of one itinerary. Each day is either empty or
// holds trimmed, non-empty activities.
type Editor struct {
	mu        sync.Mutex
	mode      Mode
	tripCode  string
	itinerary Itinerary
	dirty     bool

	coalescer *Coalescer
	saver     Saver
	fetcher   Fetcher
}

func NewEditor(opts EditorOptions) *Editor {
	return &Editor{
		mode:      opts.Mode,
		tripCode:  domain.NormalizeTripCode(opts.TripCode),
		itinerary: withDayLists(opts.Initial.Sanitize()),
		coalescer: opts.Coalescer,
		saver:     opts.Saver,
		fetcher:   opts.Fetcher,
	}
}

func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) TripCode() string { return e.tripCode }

// Dirty reports unsaved solo edits.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

func (e *Editor) Snapshot() Itinerary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.itinerary.Clone()
}

// GenerateDays replaces the plan with empty days for the inclusive range.
func (e *Editor) GenerateDays(start, end time.Time) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.itinerary = domain.NewItinerary()
	for range domain.DayCount(start, end) {
		e.addDay()
	}
	e.changed()

	return slices.Clone(e.itinerary.Days)
}

// ApplyGenerated replaces the plan with a generated one.
func (e *Editor) ApplyGenerated(it Itinerary) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.itinerary = withDayLists(it.Sanitize())
	e.changed()
}

// AddDay appends the next sequential day with no activities.
func (e *Editor) AddDay() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := e.addDay()
	e.changed()
	return day
}

func (e *Editor) addDay() string {
	day := domain.DayLabel(len(e.itinerary.Days) + 1)
	e.itinerary.Days = append(e.itinerary.Days, day)
	e.itinerary.Activities[day] = []string{}
	return day
}

func (e *Editor) AddActivity(day, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyActivity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !slices.Contains(e.itinerary.Days, day) {
		return fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}

	e.itinerary.Activities[day] = append(e.itinerary.Activities[day], text)
	e.changed()
	return nil
}

// RemoveActivity reports whether an activity was removed. An index out of
// range leaves the itinerary untouched.
func (e *Editor) RemoveActivity(day string, index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.itinerary.Activities[day]
	if index < 0 || index >= len(list) {
		return false
	}

	e.itinerary.Activities[day] = slices.Delete(slices.Clone(list), index, index+1)
	e.changed()
	return true
}

// EditActivity replaces an activity in place. An index out of range is a
// no-op; blank text is rejected like in AddActivity.
func (e *Editor) EditActivity(day string, index int, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, ErrEmptyActivity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.itinerary.Activities[day]
	if index < 0 || index >= len(list) {
		return false, nil
	}

	list = slices.Clone(list)
	list[index] = text
	e.itinerary.Activities[day] = list
	e.changed()
	return true, nil
}

// ApplyRemote overwrites the whole local state with a peer's snapshot. Other
// trips are ignored. A local edit still waiting in the coalescer is dropped.
func (e *Editor) ApplyRemote(tripCode string, it Itinerary) bool {
	if domain.NormalizeTripCode(tripCode) != e.tripCode {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.itinerary = withDayLists(it.Sanitize())
	if e.coalescer != nil {
		e.coalescer.Discard()
	}
	return true
}

// Save writes the current itinerary through the Saver. In collaborative
// mode the pending broadcast is flushed first so peers see the saved state.
func (e *Editor) Save(ctx context.Context) error {
	if e.mode == ModeCollaborative && e.coalescer != nil {
		e.coalescer.Flush()
	}

	if e.saver == nil {
		return ErrNoSaver
	}

	snapshot := e.Snapshot()
	if err := e.saver.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save itinerary: %w", err)
	}

	e.mu.Lock()
	// Edits made while saving stay dirty.
	if e.itinerary.Equal(snapshot) {
		e.dirty = false
	}
	e.mu.Unlock()

	return nil
}

// Refetch replaces local state with the persisted document, the manual
// recovery path after a dropped connection.
func (e *Editor) Refetch(ctx context.Context) (Itinerary, error) {
	if e.fetcher == nil {
		return Itinerary{}, ErrNoFetcher
	}

	it, err := e.fetcher.Fetch(ctx, e.tripCode)
	if err != nil {
		return Itinerary{}, fmt.Errorf("failed to fetch itinerary: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.itinerary = withDayLists(it.Sanitize())
	e.dirty = false
	if e.coalescer != nil {
		e.coalescer.Discard()
	}
	return e.itinerary.Clone(), nil
}

// changed must be called with mu held.
func (e *Editor) changed() {
	if e.mode == ModeCollaborative && e.coalescer != nil {
		e.coalescer.Push(e.itinerary)
		return
	}
	e.dirty = true
}

func withDayLists(it Itinerary) Itinerary {
	if it.Activities == nil {
		it.Activities = map[string][]string{}
	}
	if it.Days == nil {
		it.Days = []string{}
	}
	for _, day := range it.Days {
		if _, ok := it.Activities[day]; !ok {
			it.Activities[day] = []string{}
		}
	}
	return it
}
