package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
)

func nearRGB(a, b components.RGB) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func inUnit(c components.RGB) bool {
	in := func(v float64) bool { return v >= 0 && v <= 1 }
	return in(c.R) && in(c.G) && in(c.B)
}

func testDoppler() DopplerMap {
	return DopplerMap{
		Approaching: components.RGB{R: 100.0 / 255, G: 150.0 / 255, B: 1},
		Neutral:     components.White,
		Receding:    components.RGB{R: 1, G: 100.0 / 255, B: 100.0 / 255},
		Scale:       1,
	}
}

func TestDopplerMap(t *testing.T) {
	m := testDoppler()

	testCases := []struct {
		name string
		los  float64
		want components.RGB
	}{
		{"at rest", 0, m.Neutral},
		{"receding fast", 5, m.Receding},
		{"approaching fast", -5, m.Approaching},
		{"receding half", 0.5, m.Neutral.Lerp(m.Receding, 0.5)},
		{"approaching half", -0.5, m.Approaching.Lerp(m.Neutral, 0.5)},
	}

	for _, tc := range testCases {
		if got := m.Map(tc.los); !nearRGB(got, tc.want) {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

func TestColorMappersClamp(t *testing.T) {
	mappers := map[string]ColorMapper{
		"doppler": testDoppler(),
		"hue":     HueShiftMap{BaseHue: 220, Saturation: 0.6, Value: 1, Scale: 90},
		"solid":   SolidMap{Color: components.RGB{R: 0.5, G: 0.7, B: 1}},
	}

	for name, m := range mappers {
		for los := -100.0; los <= 100; los += 0.37 {
			c := m.Map(los)
			if c.R < 0 || c.R > 1 || c.G < 0 || c.G > 1 || c.B < 0 || c.B > 1 {
				t.Fatalf("%s: los %f produced out-of-range color %+v", name, los, c)
			}
		}
	}
}

func TestHueRoundtrip(t *testing.T) {
	for _, h := range []float64{0, 45, 120, 200, 300} {
		c := FromHSV(h, 0.6, 1)
		if got := HueOf(c); math.Abs(got-h) > 1e-6 {
			t.Errorf("hue %f: got %f back", h, got)
		}
	}

	// Configured base color through full saturation and value
	base := HueOf(from255(config.Default().Color.Base))
	if got := HueOf(FromHSV(base, 1, 1)); math.Abs(got-base) > 1e-6 {
		t.Errorf("base hue %f: got %f back", base, got)
	}
}

func TestHueShiftMap(t *testing.T) {
	m := HueShiftMap{BaseHue: 350, Saturation: 1, Value: 1, Scale: 20}

	// 350 + 20 wraps to 10
	if got := HueOf(m.Map(1)); math.Abs(got-10) > 1e-6 {
		t.Errorf("expected wrapped hue 10, got %f", got)
	}
	if got := HueOf(m.Map(0)); math.Abs(got-350) > 1e-6 {
		t.Errorf("expected base hue 350, got %f", got)
	}
}

func TestColorSystemNonFiniteVelocity(t *testing.T) {
	inf := math.Inf(1)
	vels := []r3.Vec{
		{X: math.NaN(), Y: math.NaN(), Z: math.NaN()},
		{Z: inf},
		{Z: -inf},
		{X: inf, Z: -inf},
	}
	mappers := map[string]ColorMapper{
		"doppler": testDoppler(),
		"hue":     HueShiftMap{BaseHue: 220, Saturation: 0.6, Value: 1, Scale: 90},
	}

	for name, m := range mappers {
		w := ecs.NewWorld()
		field := components.Field{Kind: components.KindBackground}
		for _, v := range vels {
			field.Particles = append(field.Particles, components.Particle{Vel: v})
		}
		tr := components.Identity()
		e := ecs.NewMap3[components.Field, components.Transform, components.Attractor](w).
			NewEntity(&field, &tr, &components.Attractor{})

		NewColorSystem(w, m).Update(r3.Rotation{Real: 1})

		rest := m.Map(0)
		got := ecs.NewMap[components.Field](w).Get(e)
		for i, p := range got.Particles {
			if !inUnit(p.Color) {
				t.Errorf("%s: velocity %+v produced color %+v", name, vels[i], p.Color)
			}
			if !nearRGB(p.Color, rest) {
				t.Errorf("%s: velocity %+v: expected rest color %+v, got %+v", name, vels[i], rest, p.Color)
			}
		}
	}

	// Doppler stays in range even when called with NaN directly
	if c := testDoppler().Map(math.NaN()); !inUnit(c) {
		t.Errorf("doppler NaN: got %+v", c)
	}
}

func TestNewColorMapper(t *testing.T) {
	cfg := config.Default().Color

	m, err := NewColorMapper(cfg)
	if err != nil {
		t.Fatalf("default mapper: %v", err)
	}
	d, ok := m.(DopplerMap)
	if !ok {
		t.Fatalf("expected doppler by default, got %T", m)
	}
	want := components.RGB{R: 100.0 / 255, G: 150.0 / 255, B: 1}
	if !nearRGB(d.Approaching, want) {
		t.Errorf("expected approaching %+v, got %+v", want, d.Approaching)
	}

	cfg.Mode = ColorSolid
	if m, _ := NewColorMapper(cfg); m == nil {
		t.Error("expected solid mapper")
	} else if _, ok := m.(SolidMap); !ok {
		t.Errorf("expected SolidMap, got %T", m)
	}

	cfg.Mode = "sepia"
	if _, err := NewColorMapper(cfg); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestLocalForward(t *testing.T) {
	identity := r3.Rotation{Real: 1}

	fwd := LocalForward(identity, identity)
	if r3.Norm(r3.Sub(fwd, r3.Vec{Z: -1})) > 1e-12 {
		t.Errorf("expected (0,0,-1), got %+v", fwd)
	}

	// Field half turn around Y: the camera looks down the field's +Z
	field := components.Euler{Y: math.Pi}.Rotation()
	fwd = LocalForward(identity, field)
	if r3.Norm(r3.Sub(fwd, r3.Vec{Z: 1})) > 1e-12 {
		t.Errorf("expected (0,0,1), got %+v", fwd)
	}
}

func TestColorSystemUpdate(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Field, components.Transform, components.Attractor](w)

	field := components.Field{
		Kind: components.KindBackground,
		Particles: []components.Particle{
			{Vel: r3.Vec{Z: 5}},  // Toward the camera at +Z
			{Vel: r3.Vec{Z: -5}}, // Away from the camera
			{Vel: r3.Vec{X: 5}},  // Transverse
		},
	}
	tr := components.Identity()
	e := mapper.NewEntity(&field, &tr, &components.Attractor{})

	m := testDoppler()
	sys := NewColorSystem(w, m)
	sys.Update(r3.Rotation{Real: 1})

	got := ecs.NewMap[components.Field](w).Get(e)
	if !nearRGB(got.Particles[0].Color, m.Approaching) {
		t.Errorf("approaching particle: expected %+v, got %+v", m.Approaching, got.Particles[0].Color)
	}
	if !nearRGB(got.Particles[1].Color, m.Receding) {
		t.Errorf("receding particle: expected %+v, got %+v", m.Receding, got.Particles[1].Color)
	}
	if !nearRGB(got.Particles[2].Color, m.Neutral) {
		t.Errorf("transverse particle: expected %+v, got %+v", m.Neutral, got.Particles[2].Color)
	}
}
