package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/components"
)

// AnchorSource looks up the current screen rectangle of an anchor.
// ok is false while the anchor is absent.
type AnchorSource interface {
	AnchorRect(key string) (r camera.Rect, ok bool)
}

// ProjectorSystem places image fields over their anchor rectangles.
type ProjectorSystem struct {
	filter  *ecs.Filter2[components.Transform, components.Anchored]
	anchors AnchorSource
}

// NewProjectorSystem creates a new projector system.
func NewProjectorSystem(w *ecs.World, anchors AnchorSource) *ProjectorSystem {
	return &ProjectorSystem{
		filter:  ecs.NewFilter2[components.Transform, components.Anchored](w),
		anchors: anchors,
	}
}

// SetAnchors replaces the anchor source.
func (s *ProjectorSystem) SetAnchors(a AnchorSource) {
	s.anchors = a
}

// Update recomputes the transform of every anchored field and returns how
// many were placed and how many had no anchor. Fields whose anchor is
// missing keep their last transform.
func (s *ProjectorSystem) Update(cam *camera.Camera) (placed, missing int) {
	query := s.filter.Query()
	for query.Next() {
		tr, anc := query.Get()
		if s.anchors == nil {
			anc.Visible = false
			missing++
			continue
		}
		rect, ok := s.anchors.AnchorRect(anc.Key)
		if !ok {
			anc.Visible = false
			missing++
			continue
		}
		tr.Position, tr.Scale = cam.RectToWorld(rect)
		anc.Visible = true
		placed++
	}
	return placed, missing
}
