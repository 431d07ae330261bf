package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/ui"
)

// Virtual pixel size of one terminal cell. The camera and the layout both
// work in these pixels.
const (
	cellW = 10
	cellH = 20
)

// terminalHost draws particles and cards into a tcell screen.
type terminalHost struct {
	*host
	screen tcell.Screen
}

func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	t, err := newTerminalHost(ctx, cfg, opts, screen)
	if err != nil {
		return err
	}
	defer t.close()

	fps := max(cfg.Screen.TargetFPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // Fini was called
			}
			events <- ev
		}
	}()

	last := time.Now()
	for !t.done(maxTicks) {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			t.frame(now.Sub(last).Seconds())
			last = now
		}
	}
	return nil
}

func newTerminalHost(ctx context.Context, cfg *config.Config, opts game.Options, screen tcell.Screen) (*terminalHost, error) {
	cols, rows := screen.Size()
	w, h := float64(cols*cellW), float64(rows*cellH)
	layout := ui.NewLayout(ui.TerminalTheme(cellW, cellH), ui.CellMeasure(cellW), w, h)

	opts.Renderer = renderer.NewTerminal(screen)
	hst, err := newHost(ctx, cfg, opts, layout)
	if err != nil {
		return nil, err
	}
	hst.game.Resize(w, h)
	return &terminalHost{host: hst, screen: screen}, nil
}

// frame ticks the game, which draws the particles, then draws the cards
// over them.
func (t *terminalHost) frame(delta float64) {
	t.tick(delta)
	ui.DrawTerminal(t.screen, t.layout, cellW, cellH)
}

// handleEvent applies one input event. It returns false to quit.
func (t *terminalHost) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.resize(float64(cols*cellW), float64(rows*cellH))
		t.screen.Sync()
		slog.Debug("terminal resized", "cols", cols, "rows", rows)

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			t.layout.Scroll(cellH)
		case tcell.KeyUp:
			t.layout.Scroll(-cellH)
		case tcell.KeyPgDn:
			t.layout.Scroll(t.layout.ContentHeight() / 4)
		case tcell.KeyPgUp:
			t.layout.Scroll(-t.layout.ContentHeight() / 4)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		px, py := float64(x*cellW)+cellW/2, float64(y*cellH)+cellH/2
		t.game.SetMouse(px, py)

		btn := ev.Buttons()
		switch {
		case btn&tcell.WheelDown != 0:
			t.layout.Scroll(3 * cellH)
		case btn&tcell.WheelUp != 0:
			t.layout.Scroll(-3 * cellH)
		case btn&tcell.Button1 != 0:
			if link, ok := t.layout.LinkAt(px, py); ok {
				slog.Info("open link", "url", link)
			}
		}
	}
	return true
}
