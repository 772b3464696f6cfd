package engine

import "time"

// TimeProvider is the real-time source behind PausableClock
type TimeProvider interface {
	Now() time.Time
}

// TimeFunc adapts a plain function to TimeProvider
type TimeFunc func() time.Time

// Now calls f
func (f TimeFunc) Now() time.Time { return f() }

// NewMonotonicTimeProvider returns the process clock; readings carry the monotonic
// component so pause arithmetic survives wall-clock jumps
func NewMonotonicTimeProvider() TimeProvider {
	return TimeFunc(time.Now)
}

// SimDuration converts simulated milliseconds to a duration
func SimDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
