package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
)

func TestDisplace(t *testing.T) {
	params := WaveParams{Speed: 1.5, Amplitude: 0.01}
	base := r3.Vec{X: 0.25, Y: -0.1}

	// sin(0 + 0.25*2pi + 0) = 1
	p := Displace(base, 0, 0, params, 0)
	if math.Abs(p.Y-(base.Y+0.01)) > 1e-12 {
		t.Errorf("expected peak displacement, got Y=%f", p.Y)
	}
	if p.X != base.X || p.Z != base.Z {
		t.Errorf("expected X and Z unchanged without jitter, got %+v", p)
	}

	p = Displace(base, 0, 0, params, 0.001)
	if math.Abs(p.X-0.251) > 1e-12 {
		t.Errorf("expected jittered X 0.251, got %f", p.X)
	}
}

func TestNewImageField(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	samples := []Sample{
		{Pos: r3.Vec{X: -0.2, Y: 0.3}, Color: components.RGB{R: 1}},
		{Pos: r3.Vec{X: 0.1, Y: -0.4}, Color: components.RGB{G: 2}},
	}

	field, wave := NewImageField(samples, rng)
	if field.Kind != components.KindImage {
		t.Errorf("expected image kind, got %s", field.Kind)
	}
	if field.Len() != 2 || len(wave.Base) != 2 {
		t.Fatalf("expected 2 particles and 2 bases, got %d and %d", field.Len(), len(wave.Base))
	}
	if wave.Phase < 0 || wave.Phase >= 2*math.Pi {
		t.Errorf("phase %f outside [0, 2pi)", wave.Phase)
	}
	if field.Particles[1].Color.G != 1 {
		t.Errorf("expected clamped color, got %+v", field.Particles[1].Color)
	}
}

func TestWaveSystemKeepsBase(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Field, components.Wave](w)

	rng := rand.New(rand.NewSource(42))
	samples := make([]Sample, 100)
	for i := range samples {
		samples[i] = Sample{Pos: r3.Vec{X: float64(i)/100 - 0.5}}
	}
	field, wave := NewImageField(samples, rng)
	e := mapper.NewEntity(&field, &wave)

	params := WaveParams{Speed: 1.5, Amplitude: 0.01, Jitter: 0.002}
	sys := NewWaveSystem(w, params, rng)
	for step := 0; step < 60; step++ {
		sys.Update(float64(step) / 60)
	}

	f, wv := mapper.Get(e)
	for i, p := range f.Particles {
		if wv.Base[i] != samples[i].Pos {
			t.Fatalf("base %d was modified: %+v", i, wv.Base[i])
		}
		if math.Abs(p.Pos.Y-wv.Base[i].Y) > params.Amplitude+1e-12 {
			t.Fatalf("particle %d displaced beyond amplitude: %+v", i, p.Pos)
		}
		if math.Abs(p.Pos.X-wv.Base[i].X) > params.Jitter/2+1e-12 {
			t.Fatalf("particle %d jittered beyond width: %+v", i, p.Pos)
		}
	}
}
