package systems

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/offwall/audio"
	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/status"
)

// TurnSystem starts a scoring turn whenever the ball is grabbed
// Idle -> Scoring on the first grab; later grabs restart the turn. Scoring is never left
type TurnSystem struct {
	score *ScoreSystem

	statTurns   *atomic.Int64
	statScoring *atomic.Bool
	statPhase   *status.AtomicString
	statChanges *atomic.Int64
}

// NewTurnSystem creates a turn state machine publishing scores through score
func NewTurnSystem(score *ScoreSystem, reg *status.Registry) *TurnSystem {
	s := &TurnSystem{
		score:       score,
		statTurns:   reg.Ints.Get("turn.count"),
		statScoring: reg.Bools.Get("turn.scoring"),
		statPhase:   reg.Strings.Get("turn.phase"),
		statChanges: reg.Ints.Get("turn.phase_changes"),
	}
	s.statPhase.Store(engine.PhaseIdle.String())
	return s
}

// Name returns system's name
func (s *TurnSystem) Name() string {
	return "turn"
}

// EventTypes returns the event types TurnSystem handles
func (s *TurnSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventDragStart,
	}
}

// HandleEvent resets the turn on grab
func (s *TurnSystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	if ev.Type != events.EventDragStart {
		return
	}
	s.ResetTurn(ctx)
}

// ResetTurn clears wall hit counts, zeroes the score, enables scoring and plays the grab tone
func (s *TurnSystem) ResetTurn(ctx *engine.GameContext) {
	st := ctx.State

	st.WallHitCount = [len(st.WallHitCount)]int{}
	st.ScoringEnabled = true
	st.Turn++

	s.score.UpdateScore(ctx, 0)
	ctx.Audio.PlayTone(audio.GrabTone())

	s.statTurns.Store(int64(st.Turn))
	s.statScoring.Store(true)
	if phase := st.Phase().String(); s.statPhase.Swap(phase) != phase {
		s.statChanges.Add(1)
		log.Printf("phase -> %s", phase)
	}

	log.Printf("turn %d started", st.Turn)
}
