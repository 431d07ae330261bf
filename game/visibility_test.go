package game

import (
	"testing"

	"github.com/pthm-cable/drift/camera"
)

func TestVisibilityFiresOnce(t *testing.T) {
	anchors := anchorMap{"a": {X: 10, Y: 10, W: 50, H: 50}}
	v := NewVisibility(anchors, 0)
	view := camera.Rect{W: 100, H: 100}

	fired := 0
	v.Observe("a", func() { fired++ })
	v.Observe("a", func() { fired += 100 })

	for i := 0; i < 3; i++ {
		v.Check(view)
	}
	if fired != 1 {
		t.Errorf("expected a single fire, got %d", fired)
	}
	if v.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d", v.Pending())
	}

	// Observing after it fired is ignored as well
	v.Observe("a", func() { fired++ })
	v.Check(view)
	if fired != 1 {
		t.Errorf("expected key to stay fired, got %d", fired)
	}
}

func TestVisibilityMargin(t *testing.T) {
	testCases := []struct {
		name   string
		rect   camera.Rect
		margin float64
		want   bool
	}{
		{"inside", camera.Rect{X: 10, Y: 10, W: 10, H: 10}, 0, true},
		{"below without margin", camera.Rect{X: 10, Y: 150, W: 10, H: 10}, 0, false},
		{"below within margin", camera.Rect{X: 10, Y: 150, W: 10, H: 10}, 60, true},
		{"below past margin", camera.Rect{X: 10, Y: 170, W: 10, H: 10}, 60, false},
		{"left within margin", camera.Rect{X: -40, Y: 10, W: 10, H: 10}, 50, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewVisibility(anchorMap{"k": tc.rect}, tc.margin)
			fired := false
			v.Observe("k", func() { fired = true })
			if n := v.Check(camera.Rect{W: 100, H: 100}); (n == 1) != tc.want || fired != tc.want {
				t.Errorf("expected fired=%v, got %v (n=%d)", tc.want, fired, n)
			}
		})
	}
}

func TestVisibilityMissingAnchor(t *testing.T) {
	anchors := anchorMap{}
	v := NewVisibility(anchors, 0)
	fired := false
	v.Observe("later", func() { fired = true })

	v.Check(camera.Rect{W: 100, H: 100})
	if fired || v.Pending() != 1 {
		t.Fatalf("expected key to wait for its anchor, fired=%v pending=%d", fired, v.Pending())
	}

	anchors["later"] = camera.Rect{X: 0, Y: 0, W: 10, H: 10}
	v.Check(camera.Rect{W: 100, H: 100})
	if !fired {
		t.Error("expected fire once the anchor appeared")
	}

	// No anchor source at all
	if n := NewVisibility(nil, 0).Check(camera.Rect{W: 100, H: 100}); n != 0 {
		t.Errorf("expected no fires without anchors, got %d", n)
	}
}
