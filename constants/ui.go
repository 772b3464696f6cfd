package constants

import "time"

// Colors
const (
	// WallColor is the resting wall fill
	WallColor = 0x334593

	// WallHitColor is the wall fill while a hit flash is active
	WallHitColor = 0x66A2B8

	// BallColor is the ball fill
	BallColor = 0xFF0000
)

// UI Timing
const (
	// WallFlashDuration is how long a wall keeps the hit color
	WallFlashDuration = 100 * time.Millisecond
)

// HUD text
const (
	HUDScoreLabel = "SCORE"
	HUDHighLabel  = "HIGH"
	HUDHintIdle   = "grab the ball to start"
	HUDPaused     = "PAUSED"
	HUDMuted      = "MUTED"
)
