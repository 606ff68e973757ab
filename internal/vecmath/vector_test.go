package vecmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestNormalizeUnitLength(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3
	}{
		{name: "axis", v: Vector3{Z: 5}},
		{name: "diagonal", v: Vector3{X: 3, Y: -4, Z: 12}},
		{name: "tiny", v: Vector3{X: 1e-8, Z: 1e-8}},
		{name: "negative", v: Vector3{X: -2, Y: -2, Z: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := tc.v.Normalize()
			if got := n.Magnitude(); math.Abs(got-1) > 1e-6 {
				t.Fatalf("Normalize(%v) magnitude = %v, want 1", tc.v, got)
			}
			// collinear and same orientation
			if d := n.Dot(tc.v); math.Abs(d-tc.v.Magnitude()) > 1e-6*tc.v.Magnitude() {
				t.Fatalf("Normalize(%v) = %v is not collinear with input", tc.v, n)
			}
		})
	}
}

func TestNormalizeZero(t *testing.T) {
	n := Vector3{}.Normalize()
	if !n.IsZero() {
		t.Fatalf("Normalize(zero) = %v, want zero vector", n)
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
		t.Fatalf("Normalize(zero) produced NaN: %v", n)
	}
}

func TestArithmetic(t *testing.T) {
	a := Vector3{X: 1, Y: 2, Z: 3}
	b := Vector3{X: -1, Y: 0.5, Z: 2}
	if got := a.Add(b); got != (Vector3{X: 0, Y: 2.5, Z: 5}) {
		t.Fatalf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vector3{X: 2, Y: 1.5, Z: 1}) {
		t.Fatalf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vector3{X: 2, Y: 4, Z: 6}) {
		t.Fatalf("Scale = %v", got)
	}
	if got := a.Horizontal(); got != (Vector3{X: 1, Z: 3}) {
		t.Fatalf("Horizontal = %v", got)
	}
	if got := a.Dot(b); math.Abs(got-6) > eps {
		t.Fatalf("Dot = %v, want 6", got)
	}
}

func TestDistance(t *testing.T) {
	a := Vector3{X: 8, Z: 2}
	b := Vector3{X: 11, Z: 6}
	if got := Distance(a, b); math.Abs(got-5) > eps {
		t.Fatalf("Distance = %v, want 5", got)
	}
	if got := Distance(b, a); math.Abs(got-5) > eps {
		t.Fatalf("Distance not symmetric: %v", got)
	}
	if got := Distance(a, a); got != 0 {
		t.Fatalf("Distance to self = %v", got)
	}
}
