package systems

import (
	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/physics"
)

// fakeBall is a BallBody with an independent previous position and a call log
type fakeBall struct {
	pos, prev, vel physics.Vector
	static         bool
	calls          []string
}

func (b *fakeBall) Position() physics.Vector     { return b.pos }
func (b *fakeBall) PrevPosition() physics.Vector { return b.prev }
func (b *fakeBall) Velocity() physics.Vector     { return b.vel }
func (b *fakeBall) IsStatic() bool               { return b.static }

func (b *fakeBall) SetPosition(p physics.Vector) {
	b.calls = append(b.calls, "position")
	b.pos = p
}

func (b *fakeBall) SetVelocity(v physics.Vector) {
	b.calls = append(b.calls, "velocity")
	b.vel = v
}

func (b *fakeBall) SetStatic(s bool) {
	if s {
		b.calls = append(b.calls, "static")
	} else {
		b.calls = append(b.calls, "dynamic")
	}
	b.static = s
}

type session struct {
	*engine.TestHarness
	Systems *Set
}

func newSession(opts CollisionOptions) *session {
	h := engine.NewTestHarness()
	set := NewSet(h.Ctx.Status, opts)
	set.Start(h.Ctx)
	return &session{TestHarness: h, Systems: set}
}

func (s *session) grab() {
	s.Systems.Turn.HandleEvent(s.Ctx, events.GameEvent{
		Type:    events.EventDragStart,
		Payload: &events.DragPayload{},
	})
}

func (s *session) collide(ts float64, pairs ...events.Pair) {
	for i := range pairs {
		pairs[i].TimeCreated = ts
	}
	s.Systems.Collision.HandleEvent(s.Ctx, events.GameEvent{
		Type:    events.EventCollisionStart,
		Payload: &events.CollisionStartPayload{Pairs: pairs},
	})
}

func wallBall(wallID int) events.Pair {
	return events.Pair{
		BodyA: events.Body{ID: wallID, Label: "wall"},
		BodyB: events.Body{ID: 5, Label: "ball"},
	}
}

func beforeStep() events.GameEvent {
	return events.GameEvent{Type: events.EventBeforeStep, Payload: &events.BeforeStepPayload{}}
}
