package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/camera"
)

// The default raylib font has no bullet glyph.
var glyphs = strings.NewReplacer("•", "-")

// Draw renders the visible part of the layout with raylib. Thumbnails only
// get a faint frame; the image particles fill them.
func Draw(l *Layout) {
	th := l.theme

	for _, s := range l.VisibleSpans() {
		drawSpan(th, s)
	}

	for _, c := range l.VisibleCards() {
		rect := toRectangle(c.Rect)
		rl.DrawRectangleRec(rect, th.CardBg)
		rl.DrawRectangleLinesEx(rect, 1, th.CardBorder)
		rl.DrawRectangleLinesEx(toRectangle(c.Thumb), 1, th.ThumbBorder)
		for _, s := range c.Spans {
			drawSpan(th, s)
		}
	}
}

func drawSpan(th Theme, s Span) {
	rl.DrawText(glyphs.Replace(s.Text), int32(s.X), int32(s.Y), s.Size, th.Color(s.Style))
}

func toRectangle(r camera.Rect) rl.Rectangle {
	return rl.Rectangle{X: float32(r.X), Y: float32(r.Y), Width: float32(r.W), Height: float32(r.H)}
}
