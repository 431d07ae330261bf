package camera

import (
	"math"
	"testing"
)

const fov75 = 75 * math.Pi / 180

func TestNew(t *testing.T) {
	cam := New(fov75, 15, 1280, 720)

	pos := cam.Position()
	if pos.X != 0 || pos.Y != 0 || pos.Z != 15 {
		t.Errorf("expected camera at (0, 0, 15), got %+v", pos)
	}
	fwd := cam.Forward()
	if fwd.X != 0 || fwd.Y != 0 || fwd.Z != -1 {
		t.Errorf("expected forward (0, 0, -1), got %+v", fwd)
	}
}

func TestVisibleSize(t *testing.T) {
	cam := New(math.Pi/2, 10, 1600, 800)

	// tan(45deg) = 1, so visible height = 2 * 10
	w, h := cam.VisibleSize()
	if math.Abs(h-20) > 1e-9 {
		t.Errorf("expected visible height 20, got %f", h)
	}
	if math.Abs(w-40) > 1e-9 {
		t.Errorf("expected visible width 40 (aspect 2), got %f", w)
	}
}

func TestRectToWorldFullViewport(t *testing.T) {
	cam := New(fov75, 15, 1280, 720)
	visW, visH := cam.VisibleSize()

	pos, scale := cam.RectToWorld(Rect{X: 0, Y: 0, W: 1280, H: 720})
	if math.Abs(pos.X) > 1e-9 || math.Abs(pos.Y) > 1e-9 {
		t.Errorf("expected full-viewport rect at origin, got (%f, %f)", pos.X, pos.Y)
	}
	if math.Abs(scale.X-visW) > 1e-9 || math.Abs(scale.Y-visH) > 1e-9 {
		t.Errorf("expected scale (%f, %f), got (%f, %f)", visW, visH, scale.X, scale.Y)
	}
}

func TestRectToWorldQuadrants(t *testing.T) {
	cam := New(fov75, 15, 1000, 1000)
	visW, visH := cam.VisibleSize()

	testCases := []struct {
		name         string
		rect         Rect
		wantX, wantY float64
	}{
		{"top-left", Rect{X: 0, Y: 0, W: 500, H: 500}, -visW / 4, visH / 4},
		{"top-right", Rect{X: 500, Y: 0, W: 500, H: 500}, visW / 4, visH / 4},
		{"bottom-left", Rect{X: 0, Y: 500, W: 500, H: 500}, -visW / 4, -visH / 4},
		{"bottom-right", Rect{X: 500, Y: 500, W: 500, H: 500}, visW / 4, -visH / 4},
	}

	for _, tc := range testCases {
		pos, scale := cam.RectToWorld(tc.rect)
		if math.Abs(pos.X-tc.wantX) > 1e-9 || math.Abs(pos.Y-tc.wantY) > 1e-9 {
			t.Errorf("%s: expected (%f, %f), got (%f, %f)", tc.name, tc.wantX, tc.wantY, pos.X, pos.Y)
		}
		if math.Abs(scale.X-visW/2) > 1e-9 || math.Abs(scale.Y-visH/2) > 1e-9 {
			t.Errorf("%s: expected half-size scale, got (%f, %f)", tc.name, scale.X, scale.Y)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(fov75, 15, 1280, 720)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		p := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy, ok := cam.WorldToScreen(p)
		if !ok {
			t.Fatalf("expected z=0 point to be in front of camera")
		}
		if math.Abs(sx-tc.sx) > 1e-6 || math.Abs(sy-tc.sy) > 1e-6 {
			t.Errorf("roundtrip failed: (%f,%f) -> %+v -> (%f,%f)", tc.sx, tc.sy, p, sx, sy)
		}
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := New(fov75, 15, 1280, 720)

	p := cam.Position()
	p.Z += 1
	if _, _, ok := cam.WorldToScreen(p); ok {
		t.Error("expected point behind the camera to be rejected")
	}
}

func TestRectIntersects(t *testing.T) {
	viewport := Rect{W: 800, H: 600}

	testCases := []struct {
		name string
		rect Rect
		want bool
	}{
		{"inside", Rect{X: 10, Y: 10, W: 50, H: 50}, true},
		{"straddles edge", Rect{X: 780, Y: 10, W: 50, H: 50}, true},
		{"below", Rect{X: 10, Y: 700, W: 50, H: 50}, false},
		{"touching edge", Rect{X: 800, Y: 0, W: 50, H: 50}, false},
	}

	for _, tc := range testCases {
		if got := viewport.Intersects(tc.rect); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}

	// Growing the viewport brings the rect below into range
	if !viewport.Grow(200).Intersects(Rect{X: 10, Y: 700, W: 50, H: 50}) {
		t.Error("expected grown viewport to intersect rect within margin")
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(fov75, 15, 1280, 720)

	cam.SetDistance(0.1) // Below min
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}

	cam.SetDistance(1e6) // Above max
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}

	cam.SetDistance(20)
	cam.ZoomBy(2)
	if cam.Distance != 10 {
		t.Errorf("expected zoom x2 to halve distance to 10, got %f", cam.Distance)
	}
}
