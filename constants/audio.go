package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the default output sample rate
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// ToneStopDelay is how long a tone sustains before its release starts
	ToneStopDelay = 50 * time.Millisecond
)

// Wall Hit Tone
const (
	// HitToneFrequency is the base frequency of the wall hit tone
	HitToneFrequency = 30.0

	// HitToneStep is the frequency added per point of current score
	HitToneStep = 6.0

	HitToneAttack  = 10 * time.Millisecond
	HitToneRelease = 100 * time.Millisecond
)

// Grab Tone
const (
	GrabToneFrequency = 150.0
	GrabToneAttack    = 10 * time.Millisecond
	GrabToneRelease   = 500 * time.Millisecond
	GrabToneVolume    = 0.5

	GrabReverbTime  = 1 * time.Second
	GrabReverbDecay = 0.8
	GrabReverbMix   = 0.5
)
