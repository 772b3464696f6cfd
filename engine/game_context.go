package engine

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/offwall/audio"
	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/physics"
	"github.com/lixenwraith/offwall/status"
)

// BallBody is the view of the ball the systems read and mutate
type BallBody interface {
	Position() physics.Vector
	PrevPosition() physics.Vector
	Velocity() physics.Vector
	SetPosition(physics.Vector)
	SetVelocity(physics.Vector)
	SetStatic(bool)
	IsStatic() bool
}

// ToneService plays short synthesized tones
type ToneService interface {
	PlayTone(audio.Tone)
}

// Painter sets the fill color a body is rendered with
type Painter interface {
	SetFill(bodyID int, color tcell.Color)
}

// Display is a surface showing the current and high score
type Display interface {
	ShowScore(snap ScoreSnapshot)
}

// DisplayGroup fans a score update out to several surfaces
type DisplayGroup []Display

func (g DisplayGroup) ShowScore(snap ScoreSnapshot) {
	for _, d := range g {
		d.ShowScore(snap)
	}
}

// Bounds is the logical arena used by recovery, independent of wall geometry
type Bounds struct {
	Width         float64
	Height        float64
	WallThickness float64
}

// Arena configures the world a context is built around
type Arena struct {
	Width         float64
	Height        float64
	WallThickness float64
	Gravity       float64
	BallRadius    float64
	BallMaterial  physics.Material
}

// ErrArenaTooSmall is returned when the ball cannot fit between opposite walls
var ErrArenaTooSmall = errors.New("arena too small")

// Validate rejects canvases where a ball at rest would overlap a wall
func (a Arena) Validate() error {
	need := 2*a.WallThickness + 2*a.BallRadius
	if a.Width <= need || a.Height <= need {
		return fmt.Errorf("%w: canvas %.0fx%.0f needs both sides above %.0f (ball radius %.1f, wall thickness %.1f)",
			ErrArenaTooSmall, a.Width, a.Height, need, a.BallRadius, a.WallThickness)
	}
	return nil
}

// DefaultArena returns the standard tuning for a canvas size
func DefaultArena(width, height float64) Arena {
	return Arena{
		Width:         width,
		Height:        height,
		WallThickness: constants.WallThickness,
		Gravity:       constants.Gravity,
		BallRadius:    constants.BallRadius,
		BallMaterial:  physics.BallMaterial,
	}
}

// GameContext is the game session: state, world and the services handlers call into
type GameContext struct {
	State     *GameState
	World     *physics.World
	Ball      BallBody
	BallID    int
	Walls     []int // Wall body ids in creation order
	Bounds    Bounds
	Scheduler *Scheduler
	Queue     *events.EventQueue
	Status    *status.Registry

	Audio   ToneService
	Painter Painter
	Display Display
}

// NewGameContext builds the world (walls first, then ball) and an idle session
// Services default to no-ops and are replaced during wiring
func NewGameContext(arena Arena) *GameContext {
	world := physics.NewWorld(arena.Width, arena.Height, arena.Gravity)

	walls := world.AddArena(arena.WallThickness)
	ball := world.AddBall(arena.Width/2, arena.Height/2, arena.BallRadius, arena.BallMaterial)

	wallIDs := make([]int, len(walls))
	for i, w := range walls {
		wallIDs[i] = w.ID
	}

	return &GameContext{
		State:  NewGameState(),
		World:  world,
		Ball:   ball,
		BallID: ball.ID,
		Walls:  wallIDs,
		Bounds: Bounds{
			Width:         arena.Width,
			Height:        arena.Height,
			WallThickness: arena.WallThickness,
		},
		Scheduler: NewScheduler(),
		Queue:     events.NewEventQueue(),
		Status:    status.NewRegistry(),
		Audio:     nopTones{},
		Painter:   nopPainter{},
		Display:   DisplayGroup{},
	}
}

// PushEvent queues an event for the next dispatch
func (ctx *GameContext) PushEvent(t events.EventType, payload any) {
	ctx.Queue.Push(events.GameEvent{
		Type:    t,
		Payload: payload,
		Frame:   ctx.World.Steps(),
	})
}

type nopTones struct{}

func (nopTones) PlayTone(audio.Tone) {}

type nopPainter struct{}

func (nopPainter) SetFill(int, tcell.Color) {}
