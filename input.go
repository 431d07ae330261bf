package main

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Pixels scrolled per mouse wheel step.
const wheelStep = 60

// handleInput processes keyboard and mouse input.
func (w *window) handleInput() {
	// Window resize propagation
	w.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		w.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.hud.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		w.showPerf = !w.showPerf
	}
	if rl.IsKeyPressed(rl.KeyC) {
		w.cycleColorMode()
	}

	mouse := rl.GetMousePosition()
	w.game.SetMouse(float64(mouse.X), float64(mouse.Y))

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.layout.Scroll(-float64(wheel) * wheelStep)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		w.layout.Scroll(wheelStep / 6)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		w.layout.Scroll(-wheelStep / 6)
	}

	// The panel owns clicks inside it
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !w.panel.Contains(mouse.X, mouse.Y) {
		if link, ok := w.layout.LinkAt(float64(mouse.X), float64(mouse.Y)); ok {
			slog.Info("open link", "url", link)
			rl.OpenURL(link)
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (w *window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height

	w.resize(float64(width), float64(height))
	w.render.Resize(width, height)
	w.panel.SetPosition(float32(width)-panelWidth-10, 10)
	slog.Debug("window resized", "width", width, "height", height)
}
