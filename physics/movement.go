package physics

import (
	"math"

	"github.com/lixenwraith/offwall/constants"
)

// CapSpeed clamps each velocity component to [-maxSpeed, maxSpeed]
// Returns true if velocity was clamped
func CapSpeed(v *Vector, maxSpeed float64) bool {
	clamped := false
	if v.X > maxSpeed {
		v.X, clamped = maxSpeed, true
	} else if v.X < -maxSpeed {
		v.X, clamped = -maxSpeed, true
	}
	if v.Y > maxSpeed {
		v.Y, clamped = maxSpeed, true
	} else if v.Y < -maxSpeed {
		v.Y, clamped = -maxSpeed, true
	}
	return clamped
}

// integrate applies gravity and air friction for one step of deltaMs
func integrate(b *Body, gravity Vector, deltaMs float64) {
	accel := gravity.Scale(constants.GravityScale * deltaMs * deltaMs)
	b.velocity = b.velocity.Add(accel).Scale(1 - b.Material.FrictionAir)
}

// substeps splits a displacement so no sub-move exceeds maxMove on either axis
func substeps(d Vector, maxMove float64) int {
	span := math.Max(math.Abs(d.X), math.Abs(d.Y))
	n := int(math.Ceil(span / maxMove))
	if n < 1 {
		n = 1
	}
	if n > maxSubsteps {
		n = maxSubsteps
	}
	return n
}

const maxSubsteps = 64
