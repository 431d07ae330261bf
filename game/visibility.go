package game

import "github.com/pthm-cable/drift/camera"

// Visibility fires a callback the first time an anchor comes within a
// margin of the viewport. Each key fires at most once.
type Visibility struct {
	anchors Anchors
	margin  float64

	order   []string // Pending keys in observe order
	pending map[string]func()
	seen    map[string]bool
}

// NewVisibility creates a notifier over anchors with a margin in pixels.
func NewVisibility(anchors Anchors, margin float64) *Visibility {
	return &Visibility{
		anchors: anchors,
		margin:  margin,
		pending: make(map[string]func()),
		seen:    make(map[string]bool),
	}
}

// SetAnchors replaces the anchor source.
func (v *Visibility) SetAnchors(a Anchors) {
	v.anchors = a
}

// Observe registers fire for key. Keys already observed are ignored.
func (v *Visibility) Observe(key string, fire func()) {
	if v.seen[key] {
		return
	}
	v.seen[key] = true
	v.pending[key] = fire
	v.order = append(v.order, key)
}

// Pending returns how many observed keys have not fired yet.
func (v *Visibility) Pending() int {
	return len(v.pending)
}

// Check fires every pending key whose anchor intersects the viewport grown
// by the margin and returns how many fired.
func (v *Visibility) Check(viewport camera.Rect) int {
	if v.anchors == nil || len(v.pending) == 0 {
		return 0
	}
	area := viewport.Grow(v.margin)

	var ready []func()
	keep := v.order[:0]
	for _, key := range v.order {
		rect, ok := v.anchors.AnchorRect(key)
		if !ok || !rect.Intersects(area) {
			keep = append(keep, key)
			continue
		}
		ready = append(ready, v.pending[key])
		delete(v.pending, key)
	}
	v.order = keep

	for _, fire := range ready {
		fire()
	}
	return len(ready)
}
