package constants

// Arena geometry, in pixels
const (
	// WallThickness is the thickness of each of the four arena walls
	WallThickness = 20.0

	// CellWidth and CellHeight map one terminal cell to canvas pixels
	CellWidth  = 10.0
	CellHeight = 20.0

	// WallHitSlots is the size of the per-turn wall hit counter (ids 1..4 used)
	WallHitSlots = 5
)

// World physics
const (
	// Gravity is the world gravity along +y
	Gravity = 0.7

	// GravityScale converts gravity into pixels per ms^2
	GravityScale = 0.001
)

// Ball material
const (
	BallRadius      = 20.0
	BallDensity     = 0.42
	BallFriction    = 0.01
	BallAirFriction = 0.00001
	BallRestitution = 0.75
)

// Recovery
const (
	// MaxVelocity is the per-axis velocity given to a recovered ball and the drag release clamp
	MaxVelocity = 100.0

	// RecoveryInset is the distance from the near wall a ball lost left or top is placed at
	RecoveryInset = 10.0

	// RecoveryMargin is the distance from the far edge a ball lost right or bottom is placed at
	RecoveryMargin = 100.0
)

// Body labels
const (
	LabelBall  = "ball"
	LabelWall  = "wall"
	LabelEnemy = "enemy"
)
