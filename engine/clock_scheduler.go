package engine

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/status"
)

// ClockScheduler runs fixed simulation steps against a pausable game clock
// Step order: queued input + BeforeStep dispatch, physics step,
// CollisionStart dispatch, scheduled tasks
type ClockScheduler struct {
	ctx    *GameContext
	router *events.Router[*GameContext]
	clock  *PausableClock

	tickInterval     time.Duration
	nextTickDeadline time.Time

	// Cached metric pointers
	statSteps      *atomic.Int64
	statCollisions *atomic.Int64
	statSimMs      *status.AtomicFloat
	statPeakSpeed  *status.AtomicFloat
	statDropped    *atomic.Int64
}

// NewClockScheduler creates a scheduler stepping ctx every tickInterval of game time
func NewClockScheduler(ctx *GameContext, clock *PausableClock, tickInterval time.Duration) *ClockScheduler {
	router := events.NewRouter[*GameContext](ctx.Queue)
	router.Coalesce(events.EventDragMove)

	return &ClockScheduler{
		ctx:              ctx,
		router:           router,
		clock:            clock,
		tickInterval:     tickInterval,
		nextTickDeadline: clock.Now().Add(tickInterval),
		statSteps:        ctx.Status.Ints.Get("engine.steps"),
		statCollisions:   ctx.Status.Ints.Get("physics.collision_starts"),
		statSimMs:        ctx.Status.Floats.Get("engine.sim_ms"),
		statPeakSpeed:    ctx.Status.Floats.Get("ball.peak_speed"),
		statDropped:      ctx.Status.Ints.Get("events.dropped"),
	}
}

// RegisterEventHandler adds an event handler to the router, must be called before stepping
func (cs *ClockScheduler) RegisterEventHandler(handler events.Handler[*GameContext]) {
	cs.router.Register(handler)
}

// Router exposes the router for direct dispatch
func (cs *ClockScheduler) Router() *events.Router[*GameContext] {
	return cs.router
}

// Tick runs exactly one simulation step
func (cs *ClockScheduler) Tick() {
	ctx := cs.ctx
	world := ctx.World

	ctx.Queue.Push(events.GameEvent{
		Type: events.EventBeforeStep,
		Payload: &events.BeforeStepPayload{
			Step:      world.Steps(),
			Timestamp: world.Timestamp(),
		},
		Frame:     world.Steps(),
		Timestamp: cs.clock.Now(),
	})
	cs.router.DispatchAll(ctx)

	pairs := world.Step(constants.StepDeltaMs)
	if len(pairs) > 0 {
		cs.statCollisions.Add(int64(len(pairs)))
		ctx.Queue.Push(events.GameEvent{
			Type:      events.EventCollisionStart,
			Payload:   &events.CollisionStartPayload{Pairs: pairs},
			Frame:     world.Steps(),
			Timestamp: cs.clock.Now(),
		})
		cs.router.DispatchAll(ctx)
	}

	ctx.Scheduler.Advance(SimDuration(world.Timestamp()))
	cs.statSteps.Add(1)
	cs.statSimMs.Set(world.Timestamp())
	cs.statDropped.Store(int64(ctx.Queue.Dropped()))
	if v := ctx.Ball.Velocity(); v.IsFinite() {
		cs.statPeakSpeed.Max(math.Sqrt(v.Dot(v)))
	}
}

// Advance runs every step that is due on the game clock
// Falls behind by at most two intervals; older backlog is dropped
// Returns the number of steps run
func (cs *ClockScheduler) Advance() int {
	gameNow := cs.clock.Now()

	steps := 0
	for !gameNow.Before(cs.nextTickDeadline) && steps < constants.MaxStepsPerAdvance {
		cs.Tick()
		cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
		steps++
	}

	maxBehind := cs.tickInterval * 2
	if gameNow.Sub(cs.nextTickDeadline) > maxBehind {
		cs.nextTickDeadline = gameNow.Add(cs.tickInterval)
	}
	return steps
}
