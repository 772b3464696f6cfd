package engine

import (
	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/physics"
)

// TurnPhase is the scoring state of the session
type TurnPhase int

const (
	// PhaseIdle is the initial state: the ball drops without scoring
	PhaseIdle TurnPhase = iota
	// PhaseScoring is entered by a grab and never left
	PhaseScoring
)

func (p TurnPhase) String() string {
	if p == PhaseScoring {
		return "scoring"
	}
	return "idle"
}

// GameState holds the mutable session state
// Owned by the game loop; handlers run synchronously on it
type GameState struct {
	// Score
	CurrentScore int
	HighScore    int
	HighScoreSet bool // False until the first UpdateScore

	// Turn
	ScoringEnabled bool
	WallHitCount   [constants.WallHitSlots]int
	Turn           int // Number of grabs since start

	// Debounce marker in simulated milliseconds
	LastCollision float64

	// Drag constraint
	Dragging   bool
	DragOffset physics.Vector // Ball centre relative to the pointer at grab
	DragTarget physics.Vector // Where the ball centre is pinned
	DragPrev   physics.Vector // Target at the previous step
}

// NewGameState creates the initial idle state
func NewGameState() *GameState {
	return &GameState{}
}

// Phase derives the turn phase from the scoring flag
func (s *GameState) Phase() TurnPhase {
	if s.ScoringEnabled {
		return PhaseScoring
	}
	return PhaseIdle
}

// ScoreSnapshot is a copy of the values shown on display surfaces
type ScoreSnapshot struct {
	Current int  `json:"current"`
	High    int  `json:"high"`
	Turn    int  `json:"turn"`
	Scoring bool `json:"scoring"`
}

// Snapshot copies the display values
func (s *GameState) Snapshot() ScoreSnapshot {
	return ScoreSnapshot{
		Current: s.CurrentScore,
		High:    s.HighScore,
		Turn:    s.Turn,
		Scoring: s.ScoringEnabled,
	}
}
