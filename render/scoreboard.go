package render

import (
	"sync"

	"github.com/lixenwraith/offwall/engine"
)

// Scoreboard is the HUD display surface
// Written by the game loop, read by the renderer
type Scoreboard struct {
	mu      sync.RWMutex
	snap    engine.ScoreSnapshot
	updates int
}

// NewScoreboard creates an empty scoreboard
func NewScoreboard() *Scoreboard {
	return &Scoreboard{}
}

// ShowScore stores the latest values
func (s *Scoreboard) ShowScore(snap engine.ScoreSnapshot) {
	s.mu.Lock()
	s.snap = snap
	s.updates++
	s.mu.Unlock()
}

// Snapshot returns the latest values
func (s *Scoreboard) Snapshot() engine.ScoreSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Updates returns how many times the score was written
func (s *Scoreboard) Updates() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}
