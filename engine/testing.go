package engine

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/offwall/audio"
)

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// ToneRecorder captures played tones
type ToneRecorder struct {
	Tones []audio.Tone
}

func (r *ToneRecorder) PlayTone(t audio.Tone) {
	r.Tones = append(r.Tones, t)
}

// PaintRecorder captures the latest fill per body and every write
type PaintRecorder struct {
	Fills  map[int]tcell.Color
	Writes int
}

func (r *PaintRecorder) SetFill(bodyID int, color tcell.Color) {
	if r.Fills == nil {
		r.Fills = make(map[int]tcell.Color)
	}
	r.Fills[bodyID] = color
	r.Writes++
}

// DisplayRecorder captures every score update
type DisplayRecorder struct {
	Updates []ScoreSnapshot
}

func (r *DisplayRecorder) ShowScore(snap ScoreSnapshot) {
	r.Updates = append(r.Updates, snap)
}

// Last returns the most recent update
func (r *DisplayRecorder) Last() ScoreSnapshot {
	if len(r.Updates) == 0 {
		return ScoreSnapshot{}
	}
	return r.Updates[len(r.Updates)-1]
}

// TestHarness bundles a context with recording services
type TestHarness struct {
	Ctx     *GameContext
	Tones   *ToneRecorder
	Paint   *PaintRecorder
	Display *DisplayRecorder
}

// NewTestHarness creates an 800x480 session wired to recorders
func NewTestHarness() *TestHarness {
	ctx := NewGameContext(DefaultArena(800, 480))
	h := &TestHarness{
		Ctx:     ctx,
		Tones:   &ToneRecorder{},
		Paint:   &PaintRecorder{},
		Display: &DisplayRecorder{},
	}
	ctx.Audio = h.Tones
	ctx.Painter = h.Paint
	ctx.Display = h.Display
	return h
}
