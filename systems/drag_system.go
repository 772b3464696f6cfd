package systems

import (
	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/physics"
)

// DragSystem is the pointer constraint: while dragging, the ball follows the pointer
// The ball is re-pinned before every step so gravity never pulls it away
type DragSystem struct{}

// NewDragSystem creates the drag constraint
func NewDragSystem() *DragSystem {
	return &DragSystem{}
}

// Name returns system's name
func (s *DragSystem) Name() string {
	return "drag"
}

// EventTypes returns the event types DragSystem handles
func (s *DragSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventDragStart,
		events.EventDragMove,
		events.EventDragEnd,
		events.EventBeforeStep,
	}
}

// HandleEvent updates the constraint
func (s *DragSystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	st := ctx.State

	switch ev.Type {
	case events.EventDragStart:
		p, ok := ev.Payload.(*events.DragPayload)
		if !ok {
			return
		}
		pos := ctx.Ball.Position()
		pointer := physics.Vector{X: p.X, Y: p.Y}
		st.Dragging = true
		st.DragOffset = pos.Sub(pointer)
		st.DragTarget = pos
		st.DragPrev = pos
		ctx.Ball.SetVelocity(physics.Vector{})

	case events.EventDragMove:
		p, ok := ev.Payload.(*events.DragPayload)
		if !ok || !st.Dragging {
			return
		}
		st.DragTarget = physics.Vector{X: p.X, Y: p.Y}.Add(st.DragOffset)

	case events.EventDragEnd:
		if !st.Dragging {
			return
		}
		st.Dragging = false
		v := ctx.Ball.Velocity()
		physics.CapSpeed(&v, constants.MaxVelocity)
		ctx.Ball.SetVelocity(v)

	case events.EventBeforeStep:
		if !st.Dragging {
			return
		}
		// Stiffness 1: the ball lands on the target and carries the pointer delta
		v := st.DragTarget.Sub(st.DragPrev)
		st.DragPrev = st.DragTarget
		ctx.Ball.SetPosition(st.DragTarget)
		ctx.Ball.SetVelocity(v)
	}
}
