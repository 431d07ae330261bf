package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/components"
)

func testOrientationParams() OrientationParams {
	return OrientationParams{SpinY: 0.002, SpinZ: 0.001, Ease: 0.05, MouseScale: 0.001}
}

func TestParallaxTarget(t *testing.T) {
	testCases := []struct {
		name         string
		cx, cy       float64
		wantX, wantY float64
	}{
		{"center", 640, 400, 0, 0},
		{"top-left", 0, 0, -0.64, -0.4},
		{"bottom-right", 1280, 800, 0.64, 0.4},
	}

	for _, tc := range testCases {
		x, y := ParallaxTarget(tc.cx, tc.cy, 1280, 800, 0.001)
		if math.Abs(x-tc.wantX) > 1e-12 || math.Abs(y-tc.wantY) > 1e-12 {
			t.Errorf("%s: expected (%f, %f), got (%f, %f)", tc.name, tc.wantX, tc.wantY, x, y)
		}
	}
}

func TestOrientSpinOnly(t *testing.T) {
	params := testOrientationParams()
	params.Ease = 0

	rot := components.Euler{}
	for i := 0; i < 10; i++ {
		rot = Orient(rot, 1, 1, params)
	}
	if math.Abs(rot.Y-0.02) > 1e-12 || math.Abs(rot.Z-0.01) > 1e-12 || rot.X != 0 {
		t.Errorf("expected (0, 0.02, 0.01), got %+v", rot)
	}
}

func TestOrientEasesTowardTarget(t *testing.T) {
	params := testOrientationParams()
	params.SpinY, params.SpinZ = 0, 0

	rot := Orient(components.Euler{}, 0, 0.4, params)
	if math.Abs(rot.X-0.02) > 1e-12 {
		t.Errorf("expected one ease step to 0.02, got %f", rot.X)
	}

	for i := 0; i < 500; i++ {
		rot = Orient(rot, 0.3, 0.4, params)
	}
	if math.Abs(rot.X-0.4) > 1e-6 || math.Abs(rot.Y-0.3) > 1e-6 {
		t.Errorf("expected convergence to (0.4, 0.3), got %+v", rot)
	}
}

func TestOrientationSystemRotatesFieldOnly(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Field, components.Transform, components.Attractor](w)

	field := components.Field{Particles: make([]components.Particle, 4)}
	tr := components.Identity()
	e := mapper.NewEntity(&field, &tr, &components.Attractor{})

	sys := NewOrientationSystem(w, testOrientationParams())
	sys.SetMouse(1280, 400, 1280, 800)
	if x, y := sys.Target(); math.Abs(x-0.64) > 1e-12 || y != 0 {
		t.Errorf("expected target (0.64, 0), got (%f, %f)", x, y)
	}
	sys.Update()

	f, got, _ := mapper.Get(e)
	wantY := 0.002 + (0.64-0.002)*0.05
	if math.Abs(got.Rotation.Y-wantY) > 1e-12 {
		t.Errorf("expected rotation.y %f, got %f", wantY, got.Rotation.Y)
	}
	if math.Abs(got.Rotation.Z-0.001) > 1e-12 {
		t.Errorf("expected rotation.z 0.001, got %f", got.Rotation.Z)
	}
	for i, p := range f.Particles {
		if p.Pos.X != 0 || p.Pos.Y != 0 || p.Pos.Z != 0 {
			t.Errorf("particle %d moved: %+v", i, p.Pos)
		}
	}
}
