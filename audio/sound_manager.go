package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/offwall/constants"
)

// SoundManager plays tones through the system speaker
// A disabled or uninitialized manager drops tones silently
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool

	muted  atomic.Bool
	played atomic.Int64
}

// NewSoundManager creates a sound manager; nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
// Returns nil without touching the device when audio is disabled
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play starts a tone on the mixer
// Muted playback is not an error; the tone is dropped
func (sm *SoundManager) Play(t Tone) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return ErrNotInitialized
	}
	if sm.muted.Load() {
		return nil
	}

	s := Render(t, sm.rate, sm.cfg.MasterVolume)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()

	sm.played.Add(1)
	return nil
}

// PlayTone plays a tone, ignoring an absent device
func (sm *SoundManager) PlayTone(t Tone) {
	_ = sm.Play(t)
}

// SetMuted sets mute state
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
}

// ToggleMute flips mute state and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted returns mute state
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// Played returns the number of tones started
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}

// Cleanup stops all tones and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}
