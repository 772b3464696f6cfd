package physics

import "math"

// Vector is a 2D quantity in canvas pixels (or pixels per step)
type Vector struct {
	X, Y float64
}

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }

func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }

func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s} }

func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }

// IsFinite reports whether both components are real numbers
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
