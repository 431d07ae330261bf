// Package systems contains the per-frame systems operating on particle fields.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
)

// AttractorParams configures the integrator.
type AttractorParams struct {
	NoiseStrength    float64 // Uniform noise width added to each derivative
	Diffusion        float64 // Uniform random walk width added after the derivative
	ResetProbability float64 // Per particle per frame
	Bounds           float64 // Side of the reset cube centered at the origin
}

// CaseR returns the Sprott Case R derivative at p.
//
//	dx/dt = 0.9 - y
//	dy/dt = 0.4 + z
//	dz/dt = x*y - z
func CaseR(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: 0.9 - p.Y,
		Y: 0.4 + p.Z,
		Z: p.X*p.Y - p.Z,
	}
}

// RandomInCube returns a uniform point in [-side/2, side/2)^3.
func RandomInCube(rng *rand.Rand, side float64) r3.Vec {
	return r3.Vec{
		X: uniform(rng.Float64(), side),
		Y: uniform(rng.Float64(), side),
		Z: uniform(rng.Float64(), side),
	}
}

// Integrate advances one particle by dt. It returns true when the particle
// was reinitialised instead of integrated, either by the random reset or
// because it escaped to a non-finite state.
func Integrate(p *components.Particle, dt float64, params AttractorParams, rng *rand.Rand) bool {
	if rng.Float64() < params.ResetProbability {
		reset(p, params.Bounds, rng)
		return true
	}

	d := CaseR(p.Pos)
	d.X += uniform(rng.Float64(), params.NoiseStrength)
	d.Y += uniform(rng.Float64(), params.NoiseStrength)
	d.Z += uniform(rng.Float64(), params.NoiseStrength)

	d.X += uniform(rng.Float64(), params.Diffusion)
	d.Y += uniform(rng.Float64(), params.Diffusion)
	d.Z += uniform(rng.Float64(), params.Diffusion)

	p.Vel = d
	p.Pos = r3.Add(p.Pos, r3.Scale(dt, d))
	if !finite(p.Pos) || !finite(p.Vel) {
		reset(p, params.Bounds, rng)
		return true
	}
	return false
}

func reset(p *components.Particle, bounds float64, rng *rand.Rand) {
	p.Pos = RandomInCube(rng, bounds)
	p.Vel = r3.Vec{}
}

// SeedBackground fills a new background field with random particles at rest.
func SeedBackground(count int, bounds float64, rng *rand.Rand) components.Field {
	f := components.Field{
		Kind:      components.KindBackground,
		Particles: make([]components.Particle, count),
	}
	for i := range f.Particles {
		f.Particles[i] = components.Particle{
			Pos:   RandomInCube(rng, bounds),
			Color: components.White,
		}
	}
	return f
}

// AttractorSystem integrates every attractor-driven field.
type AttractorSystem struct {
	filter *ecs.Filter2[components.Field, components.Attractor]
	params AttractorParams
	rng    *rand.Rand
}

// NewAttractorSystem creates a new attractor system.
func NewAttractorSystem(w *ecs.World, params AttractorParams, rng *rand.Rand) *AttractorSystem {
	return &AttractorSystem{
		filter: ecs.NewFilter2[components.Field, components.Attractor](w),
		params: params,
		rng:    rng,
	}
}

// SetParams replaces the integrator parameters (live tuning).
func (s *AttractorSystem) SetParams(p AttractorParams) {
	s.params = p
}

// Params returns the current integrator parameters.
func (s *AttractorSystem) Params() AttractorParams {
	return s.params
}

// Update advances all attractor fields by dt and returns the number of resets.
func (s *AttractorSystem) Update(dt float64) int {
	resets := 0
	query := s.filter.Query()
	for query.Next() {
		field, att := query.Get()
		for i := range field.Particles {
			if Integrate(&field.Particles[i], dt, s.params, s.rng) {
				resets++
				att.Resets++
			}
		}
	}
	return resets
}
