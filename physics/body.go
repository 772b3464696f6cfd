package physics

import (
	"math"

	"github.com/solarlune/resolv"
)

// Shape is the collision geometry of a body
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeRectangle
)

// Body is a rigid body owned by a World
// Position is the body centre
type Body struct {
	ID       int
	Label    string
	Shape    Shape
	Radius   float64 // ShapeCircle
	Width    float64 // ShapeRectangle
	Height   float64 // ShapeRectangle
	Material Material

	position     Vector
	positionPrev Vector
	velocity     Vector
	static       bool

	obj *resolv.Object
}

func (b *Body) Position() Vector { return b.position }

// PrevPosition is the position before the most recent integration
func (b *Body) PrevPosition() Vector { return b.positionPrev }

func (b *Body) Velocity() Vector { return b.velocity }

func (b *Body) IsStatic() bool { return b.static }

// SetPosition teleports the body without implying motion
func (b *Body) SetPosition(p Vector) {
	b.position = p
	b.positionPrev = p
	b.syncObject()
}

func (b *Body) SetVelocity(v Vector) {
	b.velocity = v
}

// SetStatic freezes or releases the body
// Freezing zeroes velocity; releasing keeps whatever velocity was set while frozen
func (b *Body) SetStatic(static bool) {
	if static {
		b.velocity = Vector{}
	}
	b.static = static
}

// Mass returns density times area
func (b *Body) Mass() float64 {
	switch b.Shape {
	case ShapeCircle:
		return b.Material.Density * math.Pi * b.Radius * b.Radius
	default:
		return b.Material.Density * b.Width * b.Height
	}
}

// Bounds returns the axis-aligned bounding box as min and max corners
func (b *Body) Bounds() (Vector, Vector) {
	half := b.halfExtents()
	return b.position.Sub(half), b.position.Add(half)
}

func (b *Body) halfExtents() Vector {
	if b.Shape == ShapeCircle {
		return Vector{b.Radius, b.Radius}
	}
	return Vector{b.Width / 2, b.Height / 2}
}

// syncObject moves the broad-phase object to the body position
// Non-finite positions are kept out of the space
func (b *Body) syncObject() {
	if b.obj == nil || !b.position.IsFinite() {
		return
	}
	half := b.halfExtents()
	b.obj.X = b.position.X - half.X - objectPadding
	b.obj.Y = b.position.Y - half.Y - objectPadding
	b.obj.Update()
}

// objectPadding grows broad-phase objects so touching bodies share a cell
const objectPadding = 2.0
