package audio

import (
	"errors"
	"time"

	"github.com/lixenwraith/offwall/constants"
)

// WaveType selects a tone's waveform
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSaw
)

var waveNames = [...]string{"sine", "sawtooth"}

func (w WaveType) String() string {
	if w < 0 || int(w) >= len(waveNames) {
		return "unknown"
	}
	return waveNames[w]
}

// Reverb describes a reverb tail added to a tone
type Reverb struct {
	Time    time.Duration // Tail length
	Decay   float64       // Envelope exponent of the tail
	Reverse bool          // Tail swells in instead of fading out
	Mix     float64       // Wet share in [0, 1]
}

// Tone is a single synthesized note
// The note sustains for StopAfter, then releases over Release
type Tone struct {
	Wave      WaveType
	Frequency float64
	Attack    time.Duration
	Release   time.Duration
	StopAfter time.Duration
	Volume    float64
	Reverb    *Reverb
}

// Duration returns the dry length of the tone including its release
func (t Tone) Duration() time.Duration {
	sustain := t.StopAfter
	if sustain < t.Attack {
		sustain = t.Attack
	}
	return sustain + t.Release
}

// WallTone is the sawtooth played on a scoring wall hit, pitched up by score
func WallTone(score int) Tone {
	return Tone{
		Wave:      WaveSaw,
		Frequency: constants.HitToneFrequency + float64(score)*constants.HitToneStep,
		Attack:    constants.HitToneAttack,
		Release:   constants.HitToneRelease,
		StopAfter: constants.ToneStopDelay,
		Volume:    1,
	}
}

// GrabTone is the soft reversed-reverb sine played when the ball is grabbed
func GrabTone() Tone {
	return Tone{
		Wave:      WaveSine,
		Frequency: constants.GrabToneFrequency,
		Attack:    constants.GrabToneAttack,
		Release:   constants.GrabToneRelease,
		StopAfter: constants.ToneStopDelay,
		Volume:    constants.GrabToneVolume,
		Reverb: &Reverb{
			Time:    constants.GrabReverbTime,
			Decay:   constants.GrabReverbDecay,
			Reverse: true,
			Mix:     constants.GrabReverbMix,
		},
	}
}

// Sentinel errors
var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrInvalidConfig  = errors.New("invalid audio config")
)
