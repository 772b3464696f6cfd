package systems

import (
	"sync/atomic"

	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/status"
)

// ScoreSystem tracks the current and high score and publishes them to display surfaces
// High score is per process; nothing is persisted
type ScoreSystem struct {
	statCurrent *atomic.Int64
	statHigh    *atomic.Int64
}

// NewScoreSystem creates a score tracker reporting into reg
func NewScoreSystem(reg *status.Registry) *ScoreSystem {
	return &ScoreSystem{
		statCurrent: reg.Ints.Get("score.current"),
		statHigh:    reg.Ints.Get("score.high"),
	}
}

// Name returns system's name
func (s *ScoreSystem) Name() string {
	return "score"
}

// UpdateScore sets the current score and raises the high score if exceeded
// The first call only initialises the high score to zero
func (s *ScoreSystem) UpdateScore(ctx *engine.GameContext, newScore int) {
	st := ctx.State
	st.CurrentScore = newScore

	if st.HighScoreSet {
		if newScore >= st.HighScore {
			st.HighScore = newScore
		}
	} else {
		st.HighScore = 0
		st.HighScoreSet = true
	}

	s.statCurrent.Store(int64(st.CurrentScore))
	s.statHigh.Store(int64(st.HighScore))

	ctx.Display.ShowScore(st.Snapshot())
}
