package physics

import "math"

// restingThreshold is the squared normal speed below which a contact does not bounce
const restingThreshold = 4.0

// contactSlop lets a resting body keep its contact without visible overlap
const contactSlop = 0.5

// Contact describes a circle penetrating a rectangle
type Contact struct {
	Normal Vector  // Points from the rectangle towards the circle
	Depth  float64 // Penetration along Normal
}

// CircleRect tests a circle against an axis-aligned rectangle
func CircleRect(center Vector, radius float64, lo, hi Vector) (Contact, bool) {
	closest := Vector{
		X: math.Max(lo.X, math.Min(center.X, hi.X)),
		Y: math.Max(lo.Y, math.Min(center.Y, hi.Y)),
	}
	d := center.Sub(closest)
	distSq := d.Dot(d)
	reach := radius + contactSlop

	if distSq > reach*reach {
		return Contact{}, false
	}

	if distSq > 0 {
		dist := math.Sqrt(distSq)
		return Contact{Normal: d.Scale(1 / dist), Depth: radius - dist}, true
	}

	// Centre inside the rectangle: push out along the nearest edge
	left := center.X - lo.X
	right := hi.X - center.X
	top := center.Y - lo.Y
	bottom := hi.Y - center.Y

	switch math.Min(math.Min(left, right), math.Min(top, bottom)) {
	case left:
		return Contact{Normal: Vector{-1, 0}, Depth: left + radius}, true
	case right:
		return Contact{Normal: Vector{1, 0}, Depth: right + radius}, true
	case top:
		return Contact{Normal: Vector{0, -1}, Depth: top + radius}, true
	default:
		return Contact{Normal: Vector{0, 1}, Depth: bottom + radius}, true
	}
}

// resolveContact separates a dynamic body from a static one and reflects its velocity
func resolveContact(b *Body, other *Body, c Contact) {
	if c.Depth > 0 {
		b.position = b.position.Add(c.Normal.Scale(c.Depth))
	}

	vn := b.velocity.Dot(c.Normal)
	if vn >= 0 {
		return // Separating
	}

	restitution := math.Max(b.Material.Restitution, other.Material.Restitution)
	friction := math.Min(b.Material.Friction, other.Material.Friction)

	normal := c.Normal.Scale(vn)
	tangent := b.velocity.Sub(normal).Scale(1 - friction)

	if vn*vn > restingThreshold {
		b.velocity = tangent.Sub(normal.Scale(restitution))
	} else {
		b.velocity = tangent
	}
}
