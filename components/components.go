// Package components defines ECS components for particle fields.
package components

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind distinguishes the two kinds of particle field.
type Kind uint8

const (
	KindBackground Kind = iota // Attractor-driven, fixed world position
	KindImage                  // Sampled from a bitmap, anchored to a screen rectangle
)

func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// RGB is a display color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// White is the initial color of every background particle.
var White = RGB{R: 1, G: 1, B: 1}

// Clamped returns the color with every channel clamped to [0, 1].
func (c RGB) Clamped() RGB {
	return RGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// Lerp interpolates from c to o by t, with t clamped to [0, 1].
func (c RGB) Lerp(o RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Particle is a single point of a field.
type Particle struct {
	Pos   r3.Vec
	Vel   r3.Vec
	Color RGB
}

// Field holds the particles of one field. The slice length is fixed when the
// field is created; systems mutate values in place and never append.
type Field struct {
	Kind      Kind
	Particles []Particle
}

// Len returns the number of particles in the field.
func (f *Field) Len() int {
	return len(f.Particles)
}

// Style is the visual style shared by every particle of a field.
type Style struct {
	Size     float32
	Opacity  float32
	Additive bool
}

// Euler is an XYZ-order rotation in radians.
type Euler struct {
	X, Y, Z float64
}

// Rotation converts the Euler angles to a unit quaternion rotation.
// The X rotation is applied last, matching an XYZ intrinsic order.
func (e Euler) Rotation() r3.Rotation {
	qx := quat.Number(r3.NewRotation(e.X, r3.Vec{X: 1}))
	qy := quat.Number(r3.NewRotation(e.Y, r3.Vec{Y: 1}))
	qz := quat.Number(r3.NewRotation(e.Z, r3.Vec{Z: 1}))
	return r3.Rotation(quat.Mul(quat.Mul(qx, qy), qz))
}

// Transform places a field in the world.
type Transform struct {
	Position r3.Vec
	Rotation Euler
	Scale    r3.Vec
}

// Identity returns a transform at the origin with unit scale.
func Identity() Transform {
	return Transform{Scale: r3.Vec{X: 1, Y: 1, Z: 1}}
}

// World returns a function mapping field-local points into world space
// (scale, then rotate, then translate). The rotation is computed once.
func (t Transform) World() func(p r3.Vec) r3.Vec {
	rot := t.Rotation.Rotation()
	return func(p r3.Vec) r3.Vec {
		scaled := r3.Vec{X: p.X * t.Scale.X, Y: p.Y * t.Scale.Y, Z: p.Z * t.Scale.Z}
		return r3.Add(rot.Rotate(scaled), t.Position)
	}
}

// Attractor marks a field driven by the attractor integrator.
type Attractor struct {
	Resets uint64 // Stochastic reinitialisations performed so far
}

// Wave holds the immutable oscillation anchors of an image field.
type Wave struct {
	Base  []r3.Vec // Sampled normalized pixel positions, never written after creation
	Phase float64  // Per-field random phase offset
}

// Anchored ties a field to a screen rectangle looked up by key every frame.
type Anchored struct {
	Key     string
	Visible bool // Anchor was found during the last projection
}

func clamp01(v float64) float64 {
	if !(v > 0) { // NaN included
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
