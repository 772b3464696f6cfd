package systems

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/offwall/audio"
	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/status"
)

// CollisionOptions tunes the collision handler
type CollisionOptions struct {
	// DebounceAbsolute accepts a hit when |delta| > 0 instead of delta > 0
	// so a rewound timestamp still scores
	DebounceAbsolute bool

	// FlashDuration is how long a hit wall keeps the hit color
	FlashDuration time.Duration
}

// DefaultCollisionOptions returns the signed debounce with the standard flash
func DefaultCollisionOptions() CollisionOptions {
	return CollisionOptions{FlashDuration: constants.WallFlashDuration}
}

// CollisionSystem scores ball-vs-wall contacts during a turn
type CollisionSystem struct {
	score *ScoreSystem
	opts  CollisionOptions

	baseColor tcell.Color
	hitColor  tcell.Color

	// Pending color revert per wall body id
	reverts map[int]*engine.Task

	statAccepted  *atomic.Int64
	statDebounced *atomic.Int64
}

// NewCollisionSystem creates a collision handler scoring through score
func NewCollisionSystem(score *ScoreSystem, opts CollisionOptions, reg *status.Registry) *CollisionSystem {
	if opts.FlashDuration <= 0 {
		opts.FlashDuration = constants.WallFlashDuration
	}
	return &CollisionSystem{
		score:         score,
		opts:          opts,
		baseColor:     tcell.NewHexColor(constants.WallColor),
		hitColor:      tcell.NewHexColor(constants.WallHitColor),
		reverts:       make(map[int]*engine.Task),
		statAccepted:  reg.Ints.Get("collision.accepted"),
		statDebounced: reg.Ints.Get("collision.debounced"),
	}
}

// Name returns system's name
func (s *CollisionSystem) Name() string {
	return "collision"
}

// EventTypes returns the event types CollisionSystem handles
func (s *CollisionSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventCollisionStart,
	}
}

// HandleEvent processes pairs in emission order
func (s *CollisionSystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	payload, ok := ev.Payload.(*events.CollisionStartPayload)
	if !ok {
		return
	}

	for _, pair := range payload.Pairs {
		if pair.BodyB.Label != constants.LabelBall {
			continue
		}
		switch pair.BodyA.Label {
		case constants.LabelWall:
			s.wallHit(ctx, pair)
		case constants.LabelEnemy:
			// Reserved
		}
	}
}

func (s *CollisionSystem) wallHit(ctx *engine.GameContext, pair events.Pair) {
	st := ctx.State
	if !st.ScoringEnabled {
		return
	}

	delta := pair.TimeCreated - st.LastCollision
	st.LastCollision = pair.TimeCreated
	if s.opts.DebounceAbsolute {
		delta = math.Abs(delta)
	}
	if !(delta > 0) {
		s.statDebounced.Add(1)
		return
	}

	ctx.Audio.PlayTone(audio.WallTone(st.CurrentScore))

	if id := pair.BodyA.ID; id >= 0 && id < len(st.WallHitCount) {
		st.WallHitCount[id]++
	}

	s.flash(ctx, pair.BodyA.ID)

	s.score.UpdateScore(ctx, st.CurrentScore+1)
	s.statAccepted.Add(1)
}

// flash paints the wall with the hit color and schedules the revert
// A new hit replaces the pending revert so the wall stays lit for a full flash
func (s *CollisionSystem) flash(ctx *engine.GameContext, wallID int) {
	if prev := s.reverts[wallID]; prev != nil {
		prev.Cancel()
	}

	ctx.Painter.SetFill(wallID, s.hitColor)
	s.reverts[wallID] = ctx.Scheduler.After(s.opts.FlashDuration, func() {
		ctx.Painter.SetFill(wallID, s.baseColor)
		delete(s.reverts, wallID)
	})
}
