package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventBeforeStep fires once per simulation step before integration
	// Trigger: ClockScheduler | Consumer: RecoverySystem | Payload: *BeforeStepPayload
	EventBeforeStep EventType = iota

	// EventCollisionStart carries all contacts that began during one step
	// Trigger: ClockScheduler after physics.World.Step
	// Consumer: CollisionSystem | Payload: *CollisionStartPayload
	EventCollisionStart

	// EventDragStart signals the player grabbed the ball
	// Trigger: input.Handler on button press over the ball
	// Consumer: DragSystem, TurnSystem | Payload: *DragPayload
	EventDragStart

	// EventDragMove carries the pointer while a drag is active
	// Trigger: input.Handler | Consumer: DragSystem | Payload: *DragPayload
	EventDragMove

	// EventDragEnd signals the player let go of the ball
	// Trigger: input.Handler | Consumer: DragSystem | Payload: *DragPayload
	EventDragEnd
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64
	Timestamp time.Time
}
