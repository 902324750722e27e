package geom

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2).Translate(V(3, -1))
	if p != Pt(4, 1) {
		t.Errorf("Translate = %v, want (4, 1)", p)
	}

	v := Pt(4, 1).Sub(Pt(1, 2))
	if v != V(3, -1) {
		t.Errorf("Sub = %v, want (3, -1)", v)
	}

	m := Pt(0, 0).Midpoint(Pt(10, 4))
	if m != Pt(5, 2) {
		t.Errorf("Midpoint = %v, want (5, 2)", m)
	}

	if d := Pt(0, 0).Distance(Pt(3, 4)); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestNear(t *testing.T) {
	if !Pt(0, 0).Near(Pt(1e-8, -1e-8), 1e-6) {
		t.Error("Near() = false for points within tolerance")
	}
	if Pt(0, 0).Near(Pt(1e-3, 0), 1e-6) {
		t.Error("Near() = true for points outside tolerance")
	}
}

func TestVecOps(t *testing.T) {
	if got := V(3, 4).Hypot(); got != 5 {
		t.Errorf("Hypot = %v, want 5", got)
	}
	if got := V(1, 0).Cross(V(0, 1)); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
	if got := V(2, 3).Dot(V(4, 5)); got != 23 {
		t.Errorf("Dot = %v, want 23", got)
	}
	if got := V(2, 3).Neg(); got != V(-2, -3) {
		t.Errorf("Neg = %v, want (-2, -3)", got)
	}
}

func TestRotate(t *testing.T) {
	got := V(1, 0).Rotate(90)
	// Clockwise on a Y-down canvas: +X rotates toward +Y.
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("Rotate(90) = %v, want (0, 1)", got)
	}

	got = V(1, 2).Rotate(360)
	if math.Abs(got.X-1) > 1e-12 || math.Abs(got.Y-2) > 1e-12 {
		t.Errorf("Rotate(360) = %v, want identity", got)
	}
}

func TestNormalizeDeg(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-720, 0},
	}
	for _, c := range cases {
		if got := NormalizeDeg(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("NormalizeDeg(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDegNear(t *testing.T) {
	if !DegNear(359.9999999, 0, 1e-6) {
		t.Error("DegNear across the wrap = false, want true")
	}
	if !DegNear(720, 0, 1e-6) {
		t.Error("DegNear(720, 0) = false, want true")
	}
	if DegNear(180, 0, 1e-6) {
		t.Error("DegNear(180, 0) = true, want false")
	}
}
