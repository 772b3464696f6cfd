package engine

import (
	"sync"
	"time"
)

// PausableClock is game time: real time from src minus every paused interval
// Safe for concurrent use
type PausableClock struct {
	mu       sync.Mutex
	src      TimeProvider
	paused   time.Duration // closed pause intervals
	pausedAt time.Time     // start of the open pause; zero while running
}

// NewPausableClock creates a running clock on src, or on real time when src is nil
func NewPausableClock(src TimeProvider) *PausableClock {
	if src == nil {
		src = NewMonotonicTimeProvider()
	}
	return &PausableClock{src: src}
}

// Now returns game time, frozen at the pause instant while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	at := pc.pausedAt
	if at.IsZero() {
		at = pc.src.Now()
	}
	return at.Add(-pc.paused)
}

// Pause freezes game time; pausing a paused clock does nothing
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.pausedAt.IsZero() {
		pc.pausedAt = pc.src.Now()
	}
}

// Resume restarts game time from where it froze
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.pausedAt.IsZero() {
		pc.paused += pc.src.Now().Sub(pc.pausedAt)
		pc.pausedAt = time.Time{}
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.src.Now()
	if pc.pausedAt.IsZero() {
		pc.pausedAt = now
		return true
	}
	pc.paused += now.Sub(pc.pausedAt)
	pc.pausedAt = time.Time{}
	return false
}

// IsPaused reports whether game time is frozen
func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return !pc.pausedAt.IsZero()
}

// TotalPauseDuration returns all paused time, the open pause included
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	total := pc.paused
	if !pc.pausedAt.IsZero() {
		total += pc.src.Now().Sub(pc.pausedAt)
	}
	return total
}
