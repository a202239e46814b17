// Package vec provides the 2D float vector used by the kinematics core.
package vec

import "math"

// Axis selects one component of a Vector2
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns the axis name
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// Vector2 is a 2D vector in world units.
// Value-receiver methods return new vectors; pointer-receiver methods mutate in place.
type Vector2 struct {
	X, Y float64
}

// New creates a vector
func New(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Zero returns the zero vector
func Zero() Vector2 {
	return Vector2{}
}

// Clone returns an independent copy
func (v Vector2) Clone() Vector2 {
	return v
}

// Add returns v + o
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// MultiplyScalar returns v * s
func (v Vector2) MultiplyScalar(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean length
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// IsZero reports whether both components are exactly zero
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Get returns the component on the given axis
func (v Vector2) Get(a Axis) float64 {
	if a == AxisY {
		return v.Y
	}
	return v.X
}

// SetAxis sets the component on the given axis
func (v *Vector2) SetAxis(a Axis, value float64) {
	if a == AxisY {
		v.Y = value
		return
	}
	v.X = value
}

// Clamp restricts each component to [lo, hi] in place and returns v for chaining
func (v *Vector2) Clamp(lo, hi Vector2) *Vector2 {
	v.X = math.Max(lo.X, math.Min(hi.X, v.X))
	v.Y = math.Max(lo.Y, math.Min(hi.Y, v.Y))
	return v
}

// Neg returns -v
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}
