package components

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func vecNear(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestRGBClamped(t *testing.T) {
	c := RGB{R: -0.5, G: 0.25, B: 3}.Clamped()
	if c != (RGB{R: 0, G: 0.25, B: 1}) {
		t.Errorf("expected {0 0.25 1}, got %+v", c)
	}
}

func TestRGBClampedNaN(t *testing.T) {
	nan := math.NaN()
	c := RGB{R: nan, G: 0.5, B: nan}.Clamped()
	if c != (RGB{R: 0, G: 0.5, B: 0}) {
		t.Errorf("expected NaN channels to clamp to 0, got %+v", c)
	}
	if got := (RGB{}).Lerp(White, nan); got != (RGB{}) {
		t.Errorf("expected NaN t to clamp to start color, got %+v", got)
	}
}

func TestRGBLerpClampsT(t *testing.T) {
	a := RGB{R: 0, G: 0, B: 0}
	b := RGB{R: 1, G: 0.5, B: 0.2}

	if got := a.Lerp(b, 2); got != b {
		t.Errorf("expected t>1 to clamp to end color, got %+v", got)
	}
	if got := a.Lerp(b, -1); got != a {
		t.Errorf("expected t<0 to clamp to start color, got %+v", got)
	}
	mid := a.Lerp(b, 0.5)
	if math.Abs(mid.R-0.5) > 1e-12 || math.Abs(mid.G-0.25) > 1e-12 {
		t.Errorf("expected midpoint {0.5 0.25 0.1}, got %+v", mid)
	}
}

func TestEulerSingleAxis(t *testing.T) {
	// Quarter turn about Y sends +X to -Z
	rot := Euler{Y: math.Pi / 2}.Rotation()
	got := rot.Rotate(r3.Vec{X: 1})
	if !vecNear(got, r3.Vec{Z: -1}, 1e-9) {
		t.Errorf("expected (0,0,-1), got %+v", got)
	}
}

func TestEulerOrderXYZ(t *testing.T) {
	// XYZ order applies Z first, then Y, then X
	e := Euler{X: math.Pi / 2, Z: math.Pi / 2}
	got := e.Rotation().Rotate(r3.Vec{X: 1})

	// Z quarter turn: +X -> +Y; then X quarter turn: +Y -> +Z
	if !vecNear(got, r3.Vec{Z: 1}, 1e-9) {
		t.Errorf("expected (0,0,1), got %+v", got)
	}
}

func TestTransformWorld(t *testing.T) {
	tr := Transform{
		Position: r3.Vec{X: 1, Y: 2, Z: 0},
		Scale:    r3.Vec{X: 4, Y: 2, Z: 1},
	}
	world := tr.World()

	got := world(r3.Vec{X: 0.5, Y: -0.5})
	if !vecNear(got, r3.Vec{X: 3, Y: 1}, 1e-12) {
		t.Errorf("expected (3,1,0), got %+v", got)
	}
}

func TestIdentityTransform(t *testing.T) {
	world := Identity().World()
	p := r3.Vec{X: 0.3, Y: -7, Z: 2}
	if got := world(p); !vecNear(got, p, 1e-12) {
		t.Errorf("expected identity to keep %+v, got %+v", p, got)
	}
}
