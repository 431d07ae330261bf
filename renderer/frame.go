// Package renderer draws particle frames with raylib or in a terminal.
package renderer

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/components"
)

// PostFX holds post-processing parameters.
type PostFX struct {
	BloomStrength  float64
	BloomThreshold float64
	BloomRadius    float64
	TrailDecay     float64 // 0 disables trails
}

// FieldView is a read-only view of one field for a single frame.
type FieldView struct {
	Kind      components.Kind
	Particles []components.Particle
	Transform components.Transform
	Style     components.Style
}

// Points calls fn with the world position and color of every particle.
func (v *FieldView) Points(fn func(pos r3.Vec, c components.RGB)) {
	world := v.Transform.World()
	for i := range v.Particles {
		p := &v.Particles[i]
		fn(world(p.Pos), p.Color)
	}
}

// Frame is everything a renderer needs to draw one tick.
type Frame struct {
	Camera *camera.Camera
	Fields []FieldView // Background first, then image fields
	Post   PostFX
	Delta  float64 // Wall clock seconds since the previous tick
	Tick   int32
}

// ParticleCount returns the total number of particles in the frame.
func (f *Frame) ParticleCount() int {
	n := 0
	for i := range f.Fields {
		n += len(f.Fields[i].Particles)
	}
	return n
}

// Null discards frames. Used for headless runs.
type Null struct {
	Frames int
}

// Render implements the renderer capability.
func (n *Null) Render(*Frame) {
	n.Frames++
}
