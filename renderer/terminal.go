package renderer

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
)

// ramp maps cell brightness to glyphs, dimmest first.
var ramp = []rune(" .:-=+*#%@")

// Terminal draws frames into a tcell screen, one particle cloud per cell
// grid. Trails decay per cell and bright cells glow into their neighbours.
type Terminal struct {
	screen tcell.Screen

	cols, rows int
	light      []components.RGB // Accumulated, decayed every frame
	glow       []components.RGB // Rebuilt every frame
}

// NewTerminal wraps an initialised tcell screen.
func NewTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{screen: screen}
	t.fit()
	return t
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// fit resizes the cell buffers to the screen, dropping trails on change.
func (t *Terminal) fit() {
	cols, rows := t.screen.Size()
	if cols == t.cols && rows == t.rows && t.light != nil {
		return
	}
	t.cols, t.rows = cols, rows
	t.light = make([]components.RGB, cols*rows)
	t.glow = make([]components.RGB, cols*rows)
}

// Render implements the renderer capability.
func (t *Terminal) Render(f *Frame) {
	t.fit()
	if t.cols == 0 || t.rows == 0 {
		return
	}

	decay := clampUnit(f.Post.TrailDecay)
	for i := range t.light {
		t.light[i] = scale(t.light[i], decay)
		t.glow[i] = components.RGB{}
	}

	cam := f.Camera
	for i := range f.Fields {
		v := &f.Fields[i]
		opacity := clampUnit(float64(v.Style.Opacity))
		v.Points(func(pos r3.Vec, c components.RGB) {
			sx, sy, ok := cam.WorldToScreen(pos)
			if !ok {
				return
			}
			cx := int(math.Floor(sx / cam.ViewportW * float64(t.cols)))
			cy := int(math.Floor(sy / cam.ViewportH * float64(t.rows)))
			if cx < 0 || cy < 0 || cx >= t.cols || cy >= t.rows {
				return
			}
			idx := cy*t.cols + cx
			t.light[idx] = add(t.light[idx], scale(c, opacity))
		})
	}

	t.bloom(f.Post)
	t.draw()
}

// bloom spreads the part of each cell above the threshold into its
// neighbours within the bloom radius.
func (t *Terminal) bloom(p PostFX) {
	if p.BloomStrength <= 0 {
		return
	}
	reach := 1 + int(p.BloomRadius*5)
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			c := t.light[y*t.cols+x].Clamped()
			excess := luminance(c) - p.BloomThreshold
			if excess <= 0 {
				continue
			}
			for dy := -reach; dy <= reach; dy++ {
				for dx := -reach; dx <= reach; dx++ {
					nx, ny := x+dx, y+dy
					if (dx == 0 && dy == 0) || nx < 0 || ny < 0 || nx >= t.cols || ny >= t.rows {
						continue
					}
					w := p.BloomStrength * excess / float64(1+dx*dx+dy*dy)
					i := ny*t.cols + nx
					t.glow[i] = add(t.glow[i], scale(c, w))
				}
			}
		}
	}
}

func (t *Terminal) draw() {
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			i := y*t.cols + x
			c := add(t.light[i], t.glow[i]).Clamped()
			level := math.Max(c.R, math.Max(c.G, c.B))
			g := int(level * float64(len(ramp)-1))
			if g <= 0 {
				t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			fg := tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255))
			t.screen.SetContent(x, y, ramp[g], nil, tcell.StyleDefault.Foreground(fg))
		}
	}
	t.screen.Show()
}

func luminance(c components.RGB) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func add(a, b components.RGB) components.RGB {
	return components.RGB{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

func scale(c components.RGB, k float64) components.RGB {
	return components.RGB{R: c.R * k, G: c.G * k, B: c.B * k}
}
