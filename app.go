package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/content"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/ui"
)

// host ties the content loader, the card layout and the game together.
// Everything runs on the loop goroutine; only content loading is async.
type host struct {
	game    *game.Game
	layout  *ui.Layout
	content *content.Handle
	wired   bool
}

// newHost starts loading content and creates the game with the layout as
// its anchor source.
func newHost(ctx context.Context, cfg *config.Config, opts game.Options, layout *ui.Layout) (*host, error) {
	opts.Anchors = layout
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return &host{
		game:    g,
		layout:  layout,
		content: content.Load(ctx, cfg.Content, nil),
	}, nil
}

// pollContent hands loaded content to the layout once and registers every
// thumbnail for lazy loading. It reports whether content is wired.
func (h *host) pollContent() bool {
	if h.wired {
		return true
	}
	res, err := h.content.Result()
	if err != nil {
		return false
	}
	h.layout.SetContent(res)
	h.game.SetAnchors(h.layout)
	for _, th := range h.layout.Thumbnails() {
		h.game.AddImage(th.Key, th.URL)
	}
	h.wired = true
	slog.Info("layout ready",
		"cards", len(h.layout.Thumbnails()),
		"content_height", h.layout.ContentHeight(),
	)
	return true
}

// resize updates both the camera and the layout.
func (h *host) resize(width, height float64) {
	h.game.Resize(width, height)
	h.layout.Resize(width, height)
}

// tick advances one frame of delta seconds.
func (h *host) tick(delta float64) {
	h.pollContent()
	h.game.Tick(delta)
}

func (h *host) close() {
	h.game.Unload()
}

// done reports whether maxTicks was reached. 0 means unlimited.
func (h *host) done(maxTicks int) bool {
	return maxTicks > 0 && int(h.game.TickCount()) >= maxTicks
}

// runHeadless ticks without drawing at the configured frame rate.
func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int) error {
	w, h := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	layout := ui.NewLayout(ui.DefaultTheme(), ui.ApproxMeasure, w, h)

	hst, err := newHost(ctx, cfg, opts, layout)
	if err != nil {
		return err
	}
	defer hst.close()

	fps := max(cfg.Screen.TargetFPS, 1)
	delta := 1 / float64(fps)

	slog.Info("starting headless run",
		"max_ticks", maxTicks,
		"fps", fps,
	)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for !hst.done(maxTicks) {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			hst.tick(delta)
		}
	}
	slog.Info("max ticks reached", "tick", hst.game.TickCount())
	return nil
}
