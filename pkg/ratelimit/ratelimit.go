package ratelimit

import (
	"sync"
	"time"

	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/metrics"
)

// Clock returns the current time, injected for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// Limiter is a fixed window counter gating the calls to the Riot API.
// The window starts on the first call after the previous reset.
type Limiter struct {
	limit  int
	window time.Duration
	clock  Clock

	mu          sync.Mutex
	count       int
	windowStart time.Time
	started     bool
}

// New creates a limiter admitting limit calls per window.
func New(limit int, window time.Duration, clock Clock) *Limiter {
	if clock == nil {
		clock = SystemClock{}
	}

	return &Limiter{
		limit:  limit,
		window: window,
		clock:  clock,
	}
}

// Reset the count if the window elapsed.
// Must be called with the lock held.
func (l *Limiter) resetIfElapsed(now time.Time) {
	if !l.started || now.Sub(l.windowStart) >= l.window {
		l.count = 0
		l.windowStart = now
		l.started = true
	}
}

// CheckAndConsume admits one call or fails with ErrRateLimitExceeded.
// Callers invoke it right before every outbound request, retries included.
func (l *Limiter) CheckAndConsume() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.resetIfElapsed(l.clock.Now())

	if l.count >= l.limit {
		metrics.RateLimitRejections.Inc()
		return apperrors.ErrRateLimitExceeded
	}

	l.count++
	return nil
}

// Remaining returns how many calls the current window still admits.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if !l.started || now.Sub(l.windowStart) >= l.window {
		return l.limit
	}
	return l.limit - l.count
}

// ResetAt returns when the current window ends.
// The zero time is returned before the first call.
func (l *Limiter) ResetAt() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		return time.Time{}
	}
	return l.windowStart.Add(l.window)
}
