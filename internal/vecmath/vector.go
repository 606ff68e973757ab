package vecmath

import "math"

// Vector3 is an immutable 3D vector. The room lies on the X-Z plane with Y up.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) MagnitudeSq() float64 {
	return v.Dot(v)
}

func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSq())
}

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vector3) Normalize() Vector3 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector3{}
	}
	inv := 1.0 / mag
	return Vector3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// Horizontal drops the vertical component.
func (v Vector3) Horizontal() Vector3 {
	return Vector3{X: v.X, Z: v.Z}
}

func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Vector3) float64 {
	return b.Sub(a).Magnitude()
}
