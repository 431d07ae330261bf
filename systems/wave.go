package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
)

// WaveParams configures image field oscillation.
type WaveParams struct {
	Speed     float64 // Radians per second of elapsed time
	Amplitude float64 // Vertical displacement in field units
	Jitter    float64 // Uniform horizontal noise width
}

// NewImageField builds an image field and its oscillation anchors from
// sampled pixels. The base positions are copied and never written again.
func NewImageField(samples []Sample, rng *rand.Rand) (components.Field, components.Wave) {
	field := components.Field{
		Kind:      components.KindImage,
		Particles: make([]components.Particle, len(samples)),
	}
	wave := components.Wave{
		Base:  make([]r3.Vec, len(samples)),
		Phase: rng.Float64() * 2 * math.Pi,
	}
	for i, s := range samples {
		wave.Base[i] = s.Pos
		field.Particles[i] = components.Particle{Pos: s.Pos, Color: s.Color.Clamped()}
	}
	return field, wave
}

// Displace returns the oscillated position of a base point at elapsed time t.
// jitter is the horizontal offset already drawn for this frame.
func Displace(base r3.Vec, t, phase float64, params WaveParams, jitter float64) r3.Vec {
	return r3.Vec{
		X: base.X + jitter,
		Y: base.Y + math.Sin(t*params.Speed+base.X*2*math.Pi+phase)*params.Amplitude,
		Z: base.Z,
	}
}

// WaveSystem oscillates image fields around their base positions.
type WaveSystem struct {
	filter *ecs.Filter2[components.Field, components.Wave]
	params WaveParams
	rng    *rand.Rand
}

// NewWaveSystem creates a new wave system.
func NewWaveSystem(w *ecs.World, params WaveParams, rng *rand.Rand) *WaveSystem {
	return &WaveSystem{
		filter: ecs.NewFilter2[components.Field, components.Wave](w),
		params: params,
		rng:    rng,
	}
}

// Update sets every image particle from its base position at elapsed time t.
func (s *WaveSystem) Update(t float64) {
	query := s.filter.Query()
	for query.Next() {
		field, wave := query.Get()
		for i := range field.Particles {
			j := uniform(s.rng.Float64(), s.params.Jitter)
			field.Particles[i].Pos = Displace(wave.Base[i], t, wave.Phase, s.params, j)
		}
	}
}
