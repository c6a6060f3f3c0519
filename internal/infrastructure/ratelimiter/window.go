package ratelimiter

import (
	"sync"
	"time"
)

// WindowLimiter caps events per key in fixed windows. The realtime handler
// keys it by connection so one chatty socket cannot flood a room.
type WindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	size    time.Duration
	now     func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func NewWindowLimiter(limit int, size time.Duration) *WindowLimiter {
	return &WindowLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		size:    size,
		now:     time.Now,
	}
}

// Allow reports whether the event fits in the key's current window and, if
// not, how long until the window resets.
func (wl *WindowLimiter) Allow(key string) (bool, time.Duration) {
	if wl.limit <= 0 {
		return true, 0
	}

	now := wl.now()

	wl.mu.Lock()
	defer wl.mu.Unlock()

	w, ok := wl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		wl.windows[key] = &window{count: 1, resetAt: now.Add(wl.size)}
		return true, 0
	}

	if w.count >= wl.limit {
		return false, w.resetAt.Sub(now)
	}

	w.count++
	return true, 0
}

// Forget drops the key's window, called when a connection closes.
func (wl *WindowLimiter) Forget(key string) {
	wl.mu.Lock()
	delete(wl.windows, key)
	wl.mu.Unlock()
}
