package planner

import (
	"sync"
	"time"
)

const DefaultWindow = 300 * time.Millisecond

// Coalescer batches itinerary snapshots. The first Push arms a window; later
// pushes inside it replace the pending snapshot; the window emits once.
type Coalescer struct {
	window time.Duration
	emit   func(Itinerary)

	emitMu sync.Mutex

	mu      sync.Mutex
	pending *Itinerary
	timer   *time.Timer
	gen     uint64
	closed  bool
}

func NewCoalescer(window time.Duration, emit func(Itinerary)) *Coalescer {
	if window <= 0 {
		window = DefaultWindow
	}
	if emit == nil {
		emit = func(Itinerary) {}
	}
	return &Coalescer{window: window, emit: emit}
}

func (c *Coalescer) Push(it Itinerary) {
	snapshot := it.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.pending = &snapshot
	if c.timer != nil {
		return
	}

	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.window, func() { c.fire(gen) })
}

// Pending reports whether a snapshot is waiting for its window to close.
func (c *Coalescer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Flush emits the pending snapshot now, if any.
func (c *Coalescer) Flush() {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	if it, ok := c.take(0); ok {
		c.emit(it)
	}
}

// Discard drops the pending snapshot without emitting it.
func (c *Coalescer) Discard() {
	c.take(0)
}

// Close flushes and stops accepting snapshots.
func (c *Coalescer) Close() {
	c.Flush()

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Coalescer) fire(gen uint64) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	if it, ok := c.take(gen); ok {
		c.emit(it)
	}
}

// take clears the window. A non-zero gen only matches the window it armed.
func (c *Coalescer) take(gen uint64) (Itinerary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != 0 && gen != c.gen {
		return Itinerary{}, false
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++

	if c.pending == nil {
		return Itinerary{}, false
	}

	it := *c.pending
	c.pending = nil
	return it, true
}
