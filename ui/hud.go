package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// HUDData holds all the data needed to render the stats line.
type HUDData struct {
	Title               string
	BackgroundParticles int
	ImageFields         int
	ImageParticles      int
	Tick                int32
	FPS                 int32
	ColorMode           string
}

// HUD renders the heads-up display, toggled by the host.
type HUD struct {
	visible bool
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Draw renders the HUD in the bottom-left corner.
func (h *HUD) Draw(data HUDData, screenHeight int32) {
	if !h.visible {
		return
	}
	y := screenHeight - 60
	rl.DrawText(data.Title, 10, y, 16, rl.White)
	rl.DrawText(
		fmt.Sprintf("Background: %d | Images: %d (%d particles) | Color: %s",
			data.BackgroundParticles, data.ImageFields, data.ImageParticles, data.ColorMode),
		10, y+20, 14, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS), 10, y+38, 14, rl.LightGray)
}

// PerfPanel renders per-phase timings.
type PerfPanel struct {
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a perf panel that labels phases from registry.
func NewPerfPanel(registry *systems.SystemRegistry, x, y int32) *PerfPanel {
	return &PerfPanel{registry: registry, x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders phases in tick order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Phase timings", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s | FPS: %.0f", stats.AvgTickDuration.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, info := range p.registry.All() {
		avg := stats.PhaseAvg[info.ID]
		pct := stats.PhasePct[info.ID]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", info.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
