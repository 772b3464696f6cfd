package systems

import (
	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/status"
)

// Set holds one instance of every game system
type Set struct {
	Score     *ScoreSystem
	Turn      *TurnSystem
	Collision *CollisionSystem
	Recovery  *RecoverySystem
	Drag      *DragSystem
}

// NewSet creates the systems of one session
func NewSet(reg *status.Registry, opts CollisionOptions) *Set {
	score := NewScoreSystem(reg)
	return &Set{
		Score:     score,
		Turn:      NewTurnSystem(score, reg),
		Collision: NewCollisionSystem(score, opts, reg),
		Recovery:  NewRecoverySystem(reg),
		Drag:      NewDragSystem(),
	}
}

// Register adds the systems to the scheduler's router in dispatch order
// Drag precedes Turn on DragStart and precedes Recovery on BeforeStep
func (s *Set) Register(cs *engine.ClockScheduler) {
	cs.RegisterEventHandler(s.Drag)
	cs.RegisterEventHandler(s.Turn)
	cs.RegisterEventHandler(s.Recovery)
	cs.RegisterEventHandler(s.Collision)
}

// Start publishes the initial score to every display surface
func (s *Set) Start(ctx *engine.GameContext) {
	s.Score.UpdateScore(ctx, 0)
}
