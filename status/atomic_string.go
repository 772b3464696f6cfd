package status

import "sync/atomic"

// AtomicString holds a short label such as the turn phase; the zero value is ""
type AtomicString struct {
	v atomic.Pointer[string]
}

// Store replaces the label
func (s *AtomicString) Store(val string) {
	s.v.Store(&val)
}

// Swap replaces the label and returns the previous one
func (s *AtomicString) Swap(val string) string {
	if old := s.v.Swap(&val); old != nil {
		return *old
	}
	return ""
}

// Load returns the current label
func (s *AtomicString) Load() string {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return ""
}
