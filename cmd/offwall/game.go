package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/offwall/audio"
	"github.com/lixenwraith/offwall/config"
	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/input"
	"github.com/lixenwraith/offwall/network"
	"github.com/lixenwraith/offwall/render"
	"github.com/lixenwraith/offwall/systems"
)

// game wires one session to a screen; all methods run on the game goroutine
type game struct {
	ctx      *engine.GameContext
	clock    *engine.PausableClock
	cs       *engine.ClockScheduler
	systems  *systems.Set
	renderer *render.Renderer
	machine  *input.Machine
	sound    *audio.SoundManager
	feed     *network.Feed
}

// newGame builds the arena from the screen size and registers every system
// Audio and the feed degrade to disabled on failure
func newGame(cfg *config.Config, screen tcell.Screen, tp engine.TimeProvider) (*game, error) {
	keys := input.DefaultKeyTable()
	if len(cfg.Keys) > 0 {
		override, err := input.LoadKeyConfig(cfg.Keys)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
		}
		keys.Merge(override)
		log.Printf("key overrides: %v", cfg.KeyNames())
	}

	cols, rows := screen.Size()
	width, height := render.CanvasSize(cols, rows)

	arena := engine.DefaultArena(width, height)
	arena.Gravity = cfg.Game.Gravity
	arena.BallRadius = cfg.Game.BallRadius
	arena.WallThickness = cfg.Game.WallThickness
	if err := arena.Validate(); err != nil {
		return nil, err
	}

	ctx := engine.NewGameContext(arena)
	g := &game{
		ctx:      ctx,
		clock:    engine.NewPausableClock(tp),
		renderer: render.NewRenderer(screen),
		sound:    audio.NewSoundManager(&cfg.Audio),
	}

	ctx.Painter = g.renderer
	displays := engine.DisplayGroup{g.renderer.Scoreboard()}

	if cfg.Feed.Enabled {
		feed := network.NewFeed(&cfg.Feed, ctx.Status)
		if err := feed.Start(); err != nil {
			log.Printf("feed disabled: %v", err)
		} else {
			g.feed = feed
			displays = append(displays, feed)
		}
	}
	ctx.Display = displays

	if err := g.sound.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	}
	ctx.Audio = g.sound

	g.cs = engine.NewClockScheduler(ctx, g.clock, constants.StepInterval)
	g.systems = systems.NewSet(ctx.Status, systems.CollisionOptions{
		DebounceAbsolute: cfg.Game.DebounceAbsolute,
		FlashDuration:    cfg.Game.FlashDuration,
	})
	g.systems.Register(g.cs)
	g.systems.Start(ctx)

	slack := constants.CellWidth / 2
	g.machine = input.NewMachine(keys, input.BallHit(ctx.Ball, arena.BallRadius, slack))

	log.Printf("arena %.0fx%.0f px (%dx%d cells), feed=%t audio=%t",
		width, height, cols, rows, g.feed != nil, g.sound.Initialized())
	return g, nil
}

// handle applies one terminal event, returns false on quit
func (g *game) handle(ev tcell.Event) bool {
	in := g.machine.Process(ev)
	if in == nil {
		return true
	}

	switch in.Type {
	case input.IntentQuit:
		return false

	case input.IntentPause:
		paused := g.clock.Toggle()
		log.Printf("paused=%t", paused)

	case input.IntentToggleMute:
		muted := g.sound.ToggleMute()
		log.Printf("muted=%t", muted)

	case input.IntentResize:
		// The arena keeps its start-up size; the renderer clips to the new screen
		g.renderer.Sync()

	case input.IntentDragMove:
		// Pointer motion while paused would only flood the queue
		if !g.clock.IsPaused() {
			input.PushDrag(g.ctx, in)
		}

	default:
		input.PushDrag(g.ctx, in)
	}
	return true
}

// step runs the simulation steps due on the game clock
func (g *game) step() int {
	return g.cs.Advance()
}

// draw renders the current frame with the pause and mute flags
func (g *game) draw() {
	g.renderer.SetFlags(render.Flags{
		Paused: g.clock.IsPaused(),
		Muted:  g.sound.IsMuted(),
	})
	g.renderer.Draw(g.ctx.World)
}

// close releases audio and stops the feed
func (g *game) close() {
	if g.feed != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := g.feed.Stop(ctx); err != nil {
			log.Printf("feed stop: %v", err)
		}
	}
	g.sound.Cleanup()
}
