// Package ui lays out the homepage cards the particle fields anchor to and
// draws them, together with the tuning panel and HUD, over the particles.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// TextStyle selects the color a span is drawn with.
type TextStyle int

const (
	StyleBody TextStyle = iota
	StyleHeader
	StyleTitle
	StyleMuted
	StyleHighlight
)

// Theme holds layout metrics and colors. Metrics are viewport pixels.
type Theme struct {
	CardBg      rl.Color
	CardBorder  rl.Color
	ThumbBorder rl.Color
	Header      rl.Color
	Title       rl.Color
	Body        rl.Color
	Muted       rl.Color
	Highlight   rl.Color

	Margin         int32 // Around the column
	Padding        int32 // Inside a card
	Gap            int32 // Between cards and blocks
	ThumbSize      int32
	MaxWidth       int32 // Column width cap
	LineSpacing    int32 // Added to the font size for a line
	FontSize       int32
	TitleFontSize  int32
	HeaderFontSize int32
}

// DefaultTheme returns the theme used by the raylib host.
func DefaultTheme() Theme {
	return Theme{
		CardBg:      rl.Color{R: 10, G: 12, B: 18, A: 170},
		CardBorder:  rl.Color{R: 60, G: 70, B: 80, A: 200},
		ThumbBorder: rl.Color{R: 60, G: 70, B: 80, A: 90},
		Header:      rl.Color{R: 230, G: 230, B: 240, A: 255},
		Title:       rl.White,
		Body:        rl.LightGray,
		Muted:       rl.Gray,
		Highlight:   rl.Color{R: 255, G: 210, B: 120, A: 255},

		Margin:         40,
		Padding:        16,
		Gap:            24,
		ThumbSize:      160,
		MaxWidth:       900,
		LineSpacing:    6,
		FontSize:       16,
		TitleFontSize:  20,
		HeaderFontSize: 28,
	}
}

// TerminalTheme returns metrics where every line is one cell row and every
// spacing is a whole number of cells.
func TerminalTheme(cellW, cellH int32) Theme {
	th := DefaultTheme()
	th.Margin = 2 * cellW
	th.Padding = cellW
	th.Gap = cellH
	th.ThumbSize = 6 * cellH
	th.MaxWidth = 100 * cellW
	th.LineSpacing = 0
	th.FontSize = cellH
	th.TitleFontSize = cellH
	th.HeaderFontSize = cellH
	return th
}

// Color returns the theme color for a text style.
func (th Theme) Color(s TextStyle) rl.Color {
	switch s {
	case StyleHeader:
		return th.Header
	case StyleTitle:
		return th.Title
	case StyleMuted:
		return th.Muted
	case StyleHighlight:
		return th.Highlight
	default:
		return th.Body
	}
}

// MeasureFunc returns the width in pixels of text at a font size.
type MeasureFunc func(text string, size int32) int32

// ApproxMeasure estimates text width without a loaded font.
func ApproxMeasure(text string, size int32) int32 {
	return int32(len([]rune(text))) * size * 3 / 5
}

// CellMeasure measures text as one cell of width cellW per rune.
func CellMeasure(cellW int32) MeasureFunc {
	return func(text string, _ int32) int32 {
		return int32(len([]rune(text))) * cellW
	}
}
