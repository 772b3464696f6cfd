package constants

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// StepInterval is the wall-clock interval of one physics step
	StepInterval = time.Second / 60

	// StepDeltaMs is the simulated duration of one physics step in milliseconds
	StepDeltaMs = 1000.0 / 60.0

	// StepPollInterval is how often the main loop checks the clock for due steps
	StepPollInterval = 4 * time.Millisecond

	// MaxStepsPerAdvance bounds catch-up work after a stall
	MaxStepsPerAdvance = 5
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
