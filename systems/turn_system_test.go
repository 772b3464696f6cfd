package systems

import (
	"testing"

	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/engine"
)

// TestGrabFromIdle verifies the Idle -> Scoring transition
func TestGrabFromIdle(t *testing.T) {
	s := newSession(DefaultCollisionOptions())
	st := s.Ctx.State

	if st.Phase() != engine.PhaseIdle {
		t.Fatalf("Expected idle at start, got %s", st.Phase())
	}

	s.grab()

	if st.Phase() != engine.PhaseScoring || !st.ScoringEnabled {
		t.Errorf("Expected scoring after grab, got %s", st.Phase())
	}
	if st.Turn != 1 {
		t.Errorf("Expected turn 1, got %d", st.Turn)
	}
	if len(s.Tones.Tones) != 1 || s.Tones.Tones[0].Frequency != constants.GrabToneFrequency {
		t.Errorf("Expected one grab tone, got %+v", s.Tones.Tones)
	}
	if s.Tones.Tones[0].Reverb == nil || !s.Tones.Tones[0].Reverb.Reverse {
		t.Error("Expected grab tone with reversed reverb")
	}

	last := s.Display.Last()
	if last.Current != 0 || !last.Scoring || last.Turn != 1 {
		t.Errorf("Expected display to show reset turn, got %+v", last)
	}
	if got := s.Ctx.Status.Strings.Get("turn.phase").Load(); got != "scoring" {
		t.Errorf("Expected phase metric scoring, got %q", got)
	}

	s.grab()
	if got := s.Ctx.Status.Ints.Get("turn.phase_changes").Load(); got != 1 {
		t.Errorf("Expected one phase change across two grabs, got %d", got)
	}
}

// TestGrabDuringTurnResets verifies a second grab restarts the turn and keeps the high score
func TestGrabDuringTurnResets(t *testing.T) {
	s := newSession(DefaultCollisionOptions())
	st := s.Ctx.State

	s.grab()
	s.collide(100, wallBall(1))
	s.collide(200, wallBall(3))
	s.collide(300, wallBall(3))

	if st.CurrentScore != 3 || st.HighScore != 3 {
		t.Fatalf("Expected 3/3 before regrab, got %d/%d", st.CurrentScore, st.HighScore)
	}

	s.grab()

	if st.CurrentScore != 0 {
		t.Errorf("Expected score reset to 0, got %d", st.CurrentScore)
	}
	if st.HighScore != 3 {
		t.Errorf("Expected high score kept at 3, got %d", st.HighScore)
	}
	if st.WallHitCount != [constants.WallHitSlots]int{} {
		t.Errorf("Expected wall hit counts cleared, got %v", st.WallHitCount)
	}
	if !st.ScoringEnabled || st.Turn != 2 {
		t.Errorf("Expected scoring turn 2, got scoring=%v turn=%d", st.ScoringEnabled, st.Turn)
	}
}
