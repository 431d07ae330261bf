package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/renderer"
)

// Tuning holds the values the panel edits live.
type Tuning struct {
	BloomStrength   float32
	BloomThreshold  float32
	BloomRadius     float32
	TrailDecay      float32
	SimulationSpeed float32
}

// TuningFrom builds tuning values from the current post-FX and speed.
func TuningFrom(post renderer.PostFX, simSpeed float64) Tuning {
	return Tuning{
		BloomStrength:   float32(post.BloomStrength),
		BloomThreshold:  float32(post.BloomThreshold),
		BloomRadius:     float32(post.BloomRadius),
		TrailDecay:      float32(post.TrailDecay),
		SimulationSpeed: float32(simSpeed),
	}
}

// Post returns the post-FX part of the tuning.
func (t Tuning) Post() renderer.PostFX {
	return renderer.PostFX{
		BloomStrength:  float64(t.BloomStrength),
		BloomThreshold: float64(t.BloomThreshold),
		BloomRadius:    float64(t.BloomRadius),
		TrailDecay:     float64(t.TrailDecay),
	}
}

type slider struct {
	label    string
	min, max float32
	value    func(t *Tuning) *float32
}

var sliders = []slider{
	{"Bloom strength", 0, 3, func(t *Tuning) *float32 { return &t.BloomStrength }},
	{"Bloom threshold", 0, 1, func(t *Tuning) *float32 { return &t.BloomThreshold }},
	{"Bloom radius", 0, 1, func(t *Tuning) *float32 { return &t.BloomRadius }},
	{"Trail decay", 0, 0.99, func(t *Tuning) *float32 { return &t.TrailDecay }},
	{"Simulation speed", 0, 1, func(t *Tuning) *float32 { return &t.SimulationSpeed }},
}

const panelRowH = 40

// Panel is the slider panel for post-FX and simulation speed.
type Panel struct {
	x, y    float32
	width   float32
	visible bool
}

// NewPanel creates a hidden panel.
func NewPanel(x, y, width float32) *Panel {
	return &Panel{x: x, y: y, width: width}
}

// SetPosition moves the panel's top-left corner.
func (p *Panel) SetPosition(x, y float32) {
	p.x, p.y = x, y
}

// Contains reports whether a visible panel covers the point.
func (p *Panel) Contains(x, y float32) bool {
	return p.visible && x >= p.x && x < p.x+p.width && y >= p.y && y < p.y+p.height()
}

func (p *Panel) height() float32 {
	return float32(len(sliders)*panelRowH + 30)
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Draw renders the sliders and applies changes to t. It reports whether
// any value changed.
func (p *Panel) Draw(t *Tuning) bool {
	if !p.visible {
		return false
	}

	th := DefaultTheme()
	rl.DrawRectangle(int32(p.x), int32(p.y), int32(p.width), int32(p.height()), th.CardBg)
	rl.DrawRectangleLines(int32(p.x), int32(p.y), int32(p.width), int32(p.height()), th.CardBorder)
	rl.DrawText("Tuning", int32(p.x)+10, int32(p.y)+8, 16, rl.White)

	changed := false
	y := p.y + 30
	for _, s := range sliders {
		v := s.value(t)
		rl.DrawText(s.label, int32(p.x)+10, int32(y), 12, th.Body)
		next := gui.SliderBar(
			rl.Rectangle{X: p.x + 10, Y: y + 14, Width: p.width - 80, Height: 16},
			"", "",
			*v, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf("%.2f", *v), int32(p.x+p.width-62), int32(y)+16, 12, th.Body)
		if next != *v {
			*v = next
			changed = true
		}
		y += panelRowH
	}
	return changed
}
