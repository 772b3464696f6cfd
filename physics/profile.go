package physics

import "github.com/lixenwraith/offwall/constants"

// Material defines the physical properties of a body
// Profiles are pre-defined as package variables
type Material struct {
	Density     float64
	Friction    float64 // Tangential velocity loss on contact; pair uses the lower value
	FrictionAir float64 // Per-step velocity loss
	Restitution float64 // Normal velocity kept on bounce; pair uses the higher value
}

// BallMaterial is the material of the player ball
var BallMaterial = Material{
	Density:     constants.BallDensity,
	Friction:    constants.BallFriction,
	FrictionAir: constants.BallAirFriction,
	Restitution: constants.BallRestitution,
}

// WallMaterial is the material of the static arena walls
var WallMaterial = Material{
	Density:     0.001,
	Friction:    0.1,
	FrictionAir: 0.01,
	Restitution: 0,
}
