package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DrawTerminal writes the visible layout text into a tcell screen over
// whatever the renderer drew. Layout pixels map to cells of cellW x cellH.
// Cards keep the particles visible behind them; only glyph cells are
// overwritten.
func DrawTerminal(screen tcell.Screen, l *Layout, cellW, cellH float64) {
	th := l.theme
	cols, rows := screen.Size()

	put := func(s Span) {
		row := int(math.Floor(s.Y / cellH))
		if row < 0 || row >= rows {
			return
		}
		col := int(math.Floor(s.X / cellW))
		style := tcell.StyleDefault.Foreground(toTCell(th.Color(s.Style)))
		if s.Style == StyleHeader || s.Style == StyleTitle || s.Style == StyleHighlight {
			style = style.Bold(true)
		}
		for _, r := range s.Text {
			if col >= cols {
				break
			}
			if col >= 0 {
				screen.SetContent(col, row, r, nil, style)
			}
			col++
		}
	}

	for _, s := range l.VisibleSpans() {
		put(s)
	}
	for _, c := range l.VisibleCards() {
		for _, s := range c.Spans {
			put(s)
		}
	}
	screen.Show()
}

func toTCell(c rl.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
