package systems

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
)

// Color map variants.
const (
	ColorDoppler = "doppler" // Lerp between approaching/neutral/receding
	ColorHue     = "hue"     // Shift the hue of a base color
	ColorSolid   = "solid"   // Constant base color
)

// ColorMapper converts a line-of-sight velocity to a display color.
type ColorMapper interface {
	Map(los float64) components.RGB
}

// DopplerMap colors receding particles toward Receding and approaching ones
// toward Approaching, with Neutral at rest.
type DopplerMap struct {
	Approaching components.RGB
	Neutral     components.RGB
	Receding    components.RGB
	Scale       float64
}

// Map implements ColorMapper.
func (m DopplerMap) Map(los float64) components.RGB {
	f := los * m.Scale
	if f > 0 {
		return m.Neutral.Lerp(m.Receding, f)
	}
	return m.Approaching.Lerp(m.Neutral, 1+f)
}

// HueShiftMap rotates the hue of a base color by los*Scale degrees.
type HueShiftMap struct {
	BaseHue    float64 // Degrees
	Saturation float64
	Value      float64
	Scale      float64
}

// Map implements ColorMapper.
func (m HueShiftMap) Map(los float64) components.RGB {
	return FromHSV(wrapDegrees(m.BaseHue+los*m.Scale), m.Saturation, m.Value)
}

// SolidMap ignores velocity.
type SolidMap struct {
	Color components.RGB
}

// Map implements ColorMapper.
func (m SolidMap) Map(float64) components.RGB {
	return m.Color
}

// FromHSV converts hue in degrees and saturation/value in [0, 1] to RGB.
func FromHSV(h, s, v float64) components.RGB {
	c := colorful.Hsv(h, s, v).Clamped()
	return components.RGB{R: c.R, G: c.G, B: c.B}
}

// HueOf extracts the hue in degrees [0, 360) of an RGB color.
func HueOf(c components.RGB) float64 {
	h, _, _ := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return wrapDegrees(h)
}

func from255(c config.RGB255) components.RGB {
	return components.RGB{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Clamped()
}

// NewColorMapper builds the configured color map strategy.
func NewColorMapper(cfg config.ColorConfig) (ColorMapper, error) {
	switch cfg.Mode {
	case ColorDoppler, "":
		return DopplerMap{
			Approaching: from255(cfg.Approaching),
			Neutral:     from255(cfg.Neutral),
			Receding:    from255(cfg.Receding),
			Scale:       cfg.VelocityScale,
		}, nil
	case ColorHue:
		return HueShiftMap{
			BaseHue:    HueOf(from255(cfg.Base)),
			Saturation: cfg.Saturation,
			Value:      cfg.Value,
			Scale:      cfg.VelocityScale,
		}, nil
	case ColorSolid:
		return SolidMap{Color: from255(cfg.Base)}, nil
	}
	return nil, fmt.Errorf("unknown color mode %q", cfg.Mode)
}

// LocalForward expresses the camera view direction in the local frame of a
// field with the given rotation.
func LocalForward(camera r3.Rotation, field r3.Rotation) r3.Vec {
	world := camera.Rotate(r3.Vec{Z: -1})
	inv := r3.Rotation(quat.Conj(quat.Number(field)))
	return inv.Rotate(world)
}

// ColorSystem recolors attractor fields from their velocities each frame.
type ColorSystem struct {
	filter *ecs.Filter3[components.Field, components.Transform, components.Attractor]
	mapper ColorMapper
}

// NewColorSystem creates a new color system.
func NewColorSystem(w *ecs.World, mapper ColorMapper) *ColorSystem {
	return &ColorSystem{
		filter: ecs.NewFilter3[components.Field, components.Transform, components.Attractor](w),
		mapper: mapper,
	}
}

// SetMapper swaps the color strategy.
func (s *ColorSystem) SetMapper(m ColorMapper) {
	s.mapper = m
}

// Update recolors every particle using the camera orientation. Colors are
// clamped here; a non-finite velocity colors as at rest.
func (s *ColorSystem) Update(camera r3.Rotation) {
	query := s.filter.Query()
	for query.Next() {
		field, tr, _ := query.Get()
		fwd := LocalForward(camera, tr.Rotation.Rotation())
		for i := range field.Particles {
			p := &field.Particles[i]
			los := r3.Dot(p.Vel, fwd)
			if math.IsNaN(los) || math.IsInf(los, 0) {
				los = 0
			}
			p.Color = s.mapper.Map(los).Clamped()
		}
	}
}
