package systems

import (
	"log"
	"math"
	"sync/atomic"

	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/physics"
	"github.com/lixenwraith/offwall/status"
)

// recoveryRule detects one way of losing the ball and where to put it back
type recoveryRule struct {
	name   string
	lost   func(p physics.Vector, b engine.Bounds) bool
	target func(prev physics.Vector, b engine.Bounds) physics.Vector
}

func notFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// recoveryRules are checked in order; the first match wins
var recoveryRules = []recoveryRule{
	{
		name: "bottom",
		lost: func(p physics.Vector, b engine.Bounds) bool { return p.Y > b.Height },
		target: func(prev physics.Vector, b engine.Bounds) physics.Vector {
			return physics.Vector{X: prev.X, Y: b.Height - constants.RecoveryMargin}
		},
	},
	{
		name: "top",
		lost: func(p physics.Vector, b engine.Bounds) bool { return p.Y < b.WallThickness || notFinite(p.Y) },
		target: func(prev physics.Vector, b engine.Bounds) physics.Vector {
			return physics.Vector{X: prev.X, Y: b.WallThickness + constants.RecoveryInset}
		},
	},
	{
		name: "right",
		lost: func(p physics.Vector, b engine.Bounds) bool { return p.X > b.Width },
		target: func(prev physics.Vector, b engine.Bounds) physics.Vector {
			return physics.Vector{X: b.Width - constants.RecoveryMargin, Y: prev.Y}
		},
	},
	{
		name: "left",
		lost: func(p physics.Vector, b engine.Bounds) bool { return p.X < b.WallThickness || notFinite(p.X) },
		target: func(prev physics.Vector, b engine.Bounds) physics.Vector {
			return physics.Vector{X: b.WallThickness + constants.RecoveryInset, Y: prev.Y}
		},
	},
}

// RecoverySystem puts a ball that escaped the arena back inside
type RecoverySystem struct {
	statRecoveries *atomic.Int64
}

// NewRecoverySystem creates the lost-ball monitor
func NewRecoverySystem(reg *status.Registry) *RecoverySystem {
	return &RecoverySystem{
		statRecoveries: reg.Ints.Get("recovery.count"),
	}
}

// Name returns system's name
func (s *RecoverySystem) Name() string {
	return "recovery"
}

// EventTypes returns the event types RecoverySystem handles
func (s *RecoverySystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventBeforeStep,
	}
}

// HandleEvent checks the ball once per step
func (s *RecoverySystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	if ev.Type != events.EventBeforeStep || ctx.State.Dragging {
		return
	}
	s.Check(ctx)
}

// Check applies the first matching rule and reports whether the ball was moved
func (s *RecoverySystem) Check(ctx *engine.GameContext) bool {
	ball := ctx.Ball
	p := ball.Position()

	for _, rule := range recoveryRules {
		if !rule.lost(p, ctx.Bounds) {
			continue
		}

		target := rule.target(ball.PrevPosition(), ctx.Bounds)

		ball.SetStatic(true)
		ball.SetPosition(target)
		ball.SetVelocity(physics.Vector{X: constants.MaxVelocity, Y: constants.MaxVelocity})
		ball.SetStatic(false)

		s.statRecoveries.Add(1)
		log.Printf("recovery: ball lost %s at (%.1f, %.1f), moved to (%.1f, %.1f)",
			rule.name, p.X, p.Y, target.X, target.Y)
		return true
	}
	return false
}
