package main

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/ui"
)

const panelWidth = 280

// window is the raylib host: particles, then cards, then overlays.
type window struct {
	*host

	render *renderer.Raylib
	panel  *ui.Panel
	hud    *ui.HUD
	perf   *ui.PerfPanel
	tuning ui.Tuning

	width, height int32
	showPerf      bool
}

func runRaylib(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int) error {
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(width, height, "drift")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	measure := func(text string, size int32) int32 {
		return rl.MeasureText(text, size)
	}
	layout := ui.NewLayout(ui.DefaultTheme(), measure, float64(width), float64(height))

	rr := renderer.NewRaylib(width, height)
	defer rr.Unload()
	opts.Renderer = rr

	hst, err := newHost(ctx, cfg, opts, layout)
	if err != nil {
		return err
	}
	defer hst.close()

	w := &window{
		host:   hst,
		render: rr,
		panel:  ui.NewPanel(float32(width)-panelWidth-10, 10, panelWidth),
		hud:    ui.NewHUD(),
		perf:   ui.NewPerfPanel(hst.game.Registry(), 10, 10),
		width:  width,
		height: height,
	}
	w.tuning = ui.TuningFrom(hst.game.Post(), hst.game.SimulationSpeed())

	for !rl.WindowShouldClose() && !w.done(maxTicks) {
		if ctx.Err() != nil {
			return nil
		}
		w.handleInput()

		rl.BeginDrawing()
		w.tick(float64(rl.GetFrameTime()))
		w.drawOverlays()
		rl.EndDrawing()
	}
	return nil
}

func (w *window) drawOverlays() {
	ui.Draw(w.layout)

	if w.panel.Draw(&w.tuning) {
		w.game.SetPost(w.tuning.Post())
		w.game.SetSimulationSpeed(float64(w.tuning.SimulationSpeed))
	}

	c := w.game.Counts()
	w.hud.Draw(ui.HUDData{
		Title:               "drift",
		BackgroundParticles: c.BackgroundParticles,
		ImageFields:         c.ImageFields,
		ImageParticles:      c.ImageParticles,
		Tick:                w.game.TickCount(),
		FPS:                 rl.GetFPS(),
		ColorMode:           w.game.ColorMode(),
	}, w.height)

	if w.showPerf {
		w.perf.Draw(w.game.PerfStats())
	}
}

// cycleColorMode switches to the next color strategy.
func (w *window) cycleColorMode() {
	modes := []string{"doppler", "hue", "solid"}
	next := modes[0]
	for i, m := range modes {
		if m == w.game.ColorMode() {
			next = modes[(i+1)%len(modes)]
			break
		}
	}
	if err := w.game.SetColorMode(next); err != nil {
		slog.Warn("color mode switch failed", "mode", next, "error", err)
	}
}
