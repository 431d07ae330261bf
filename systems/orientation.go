package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/components"
)

// OrientationParams configures the background spin and mouse parallax.
type OrientationParams struct {
	SpinY      float64 // Radians per frame
	SpinZ      float64 // Radians per frame
	Ease       float64 // Fraction of the remaining distance covered per frame
	MouseScale float64 // Radians per pixel from the viewport center
}

// ParallaxTarget converts a cursor position to target rotations around the
// X and Y axes.
func ParallaxTarget(cursorX, cursorY, viewportW, viewportH, scale float64) (tx, ty float64) {
	tx = (cursorX - viewportW/2) * scale
	ty = (cursorY - viewportH/2) * scale
	return tx, ty
}

// Ease moves current toward target by the given fraction.
func Ease(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// Orient applies one frame of spin and parallax easing to a rotation.
// mouseX drives the Y axis and mouseY drives the X axis.
func Orient(rot components.Euler, mouseX, mouseY float64, params OrientationParams) components.Euler {
	rot.Y += params.SpinY
	rot.Z += params.SpinZ
	rot.X = Ease(rot.X, mouseY, params.Ease)
	rot.Y = Ease(rot.Y, mouseX, params.Ease)
	return rot
}

// OrientationSystem rotates the attractor fields. Particles are untouched.
type OrientationSystem struct {
	filter *ecs.Filter2[components.Transform, components.Attractor]
	params OrientationParams

	mouseX, mouseY float64
}

// NewOrientationSystem creates a new orientation system.
func NewOrientationSystem(w *ecs.World, params OrientationParams) *OrientationSystem {
	return &OrientationSystem{
		filter: ecs.NewFilter2[components.Transform, components.Attractor](w),
		params: params,
	}
}

// SetMouse updates the parallax target from a cursor position in pixels.
func (s *OrientationSystem) SetMouse(cursorX, cursorY, viewportW, viewportH float64) {
	s.mouseX, s.mouseY = ParallaxTarget(cursorX, cursorY, viewportW, viewportH, s.params.MouseScale)
}

// Target returns the current parallax target.
func (s *OrientationSystem) Target() (x, y float64) {
	return s.mouseX, s.mouseY
}

// Update applies one frame of orientation to every attractor field.
func (s *OrientationSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		tr, _ := query.Get()
		tr.Rotation = Orient(tr.Rotation, s.mouseX, s.mouseY, s.params)
	}
}
