package systems

import (
	"testing"

	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/physics"
)

func dragEvent(t events.EventType, x, y float64) events.GameEvent {
	return events.GameEvent{Type: t, Payload: &events.DragPayload{X: x, Y: y}}
}

// TestDragFollowsPointer verifies the ball keeps its grab offset and carries the pointer delta
func TestDragFollowsPointer(t *testing.T) {
	h := engine.NewTestHarness()
	ctx := h.Ctx
	ball := &fakeBall{pos: physics.Vector{X: 400, Y: 240}, vel: physics.Vector{X: 2, Y: 9}}
	ctx.Ball = ball
	drag := NewDragSystem()

	drag.HandleEvent(ctx, dragEvent(events.EventDragStart, 395, 245))
	if !ctx.State.Dragging {
		t.Fatal("Expected dragging after start")
	}
	if ball.vel != (physics.Vector{}) {
		t.Errorf("Expected grab to stop the ball, got %+v", ball.vel)
	}

	drag.HandleEvent(ctx, dragEvent(events.EventDragMove, 415, 225))
	drag.HandleEvent(ctx, beforeStep())

	want := physics.Vector{X: 420, Y: 220}
	if ball.pos != want {
		t.Errorf("Expected ball at %+v, got %+v", want, ball.pos)
	}
	if ball.vel != (physics.Vector{X: 20, Y: -20}) {
		t.Errorf("Expected pointer delta velocity, got %+v", ball.vel)
	}

	// Pointer at rest: velocity decays to zero on the next step
	drag.HandleEvent(ctx, beforeStep())
	if ball.vel != (physics.Vector{}) {
		t.Errorf("Expected zero velocity with still pointer, got %+v", ball.vel)
	}
}

// TestDragReleaseCapsVelocity verifies a fling is clamped per axis
func TestDragReleaseCapsVelocity(t *testing.T) {
	h := engine.NewTestHarness()
	ctx := h.Ctx
	ball := &fakeBall{pos: physics.Vector{X: 100, Y: 100}}
	ctx.Ball = ball
	drag := NewDragSystem()

	drag.HandleEvent(ctx, dragEvent(events.EventDragStart, 100, 100))
	drag.HandleEvent(ctx, dragEvent(events.EventDragMove, 350, 60))
	drag.HandleEvent(ctx, beforeStep())
	drag.HandleEvent(ctx, dragEvent(events.EventDragEnd, 350, 60))

	if ctx.State.Dragging {
		t.Error("Expected drag released")
	}
	if ball.vel != (physics.Vector{X: 100, Y: -40}) {
		t.Errorf("Expected (100, -40), got %+v", ball.vel)
	}
}

// TestDragEventsWithoutGrab verifies stray move/end/step events are ignored
func TestDragEventsWithoutGrab(t *testing.T) {
	h := engine.NewTestHarness()
	ball := &fakeBall{pos: physics.Vector{X: 100, Y: 100}, vel: physics.Vector{X: 1, Y: 1}}
	h.Ctx.Ball = ball
	drag := NewDragSystem()

	drag.HandleEvent(h.Ctx, dragEvent(events.EventDragMove, 300, 300))
	drag.HandleEvent(h.Ctx, dragEvent(events.EventDragEnd, 300, 300))
	drag.HandleEvent(h.Ctx, beforeStep())

	if len(ball.calls) != 0 {
		t.Errorf("Expected no ball mutation, got %v", ball.calls)
	}
}
