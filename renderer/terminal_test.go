package renderer

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/components"
)

func newTestScreen(t *testing.T) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func originFrame(decay float64) *Frame {
	return &Frame{
		Camera: camera.New(75*math.Pi/180, 15, 80, 48),
		Fields: []FieldView{{
			Kind:      components.KindBackground,
			Particles: []components.Particle{{Color: components.White}},
			Transform: components.Identity(),
			Style:     components.Style{Size: 0.05, Opacity: 1, Additive: true},
		}},
		Post: PostFX{TrailDecay: decay},
	}
}

func TestTerminalRendersParticleAtCenter(t *testing.T) {
	screen := newTestScreen(t)
	term := NewTerminal(screen)

	term.Render(originFrame(0))

	mainc, _, style, _ := screen.GetContent(40, 12)
	if mainc == ' ' {
		t.Fatal("expected a glyph at the projected cell (40, 12)")
	}
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("expected white foreground, got %v", fg)
	}

	// Far corner stays empty
	if c, _, _, _ := screen.GetContent(0, 0); c != ' ' {
		t.Errorf("expected empty corner, got %q", c)
	}
}

func TestTerminalTrailDecay(t *testing.T) {
	testCases := []struct {
		name      string
		decay     float64
		wantTrail bool
	}{
		{"no trails", 0, false},
		{"long trails", 0.9, true},
	}

	for _, tc := range testCases {
		screen := newTestScreen(t)
		term := NewTerminal(screen)

		term.Render(originFrame(tc.decay))
		empty := originFrame(tc.decay)
		empty.Fields = nil
		term.Render(empty)

		c, _, _, _ := screen.GetContent(40, 12)
		if got := c != ' '; got != tc.wantTrail {
			t.Errorf("%s: expected trail %v, got glyph %q", tc.name, tc.wantTrail, c)
		}
	}
}

func TestTerminalBloomLightsNeighbours(t *testing.T) {
	screen := newTestScreen(t)
	term := NewTerminal(screen)

	f := originFrame(0)
	f.Post.BloomStrength = 1
	f.Post.BloomThreshold = 0.1
	term.Render(f)

	if c, _, _, _ := screen.GetContent(41, 12); c == ' ' {
		t.Error("expected bloom to light the neighbouring cell")
	}

	// Without bloom the neighbour stays dark
	f.Post.BloomStrength = 0
	term.Render(f)
	if c, _, _, _ := screen.GetContent(41, 12); c != ' ' {
		t.Errorf("expected dark neighbour without bloom, got %q", c)
	}
}

func TestFrameParticleCount(t *testing.T) {
	f := originFrame(0)
	f.Fields = append(f.Fields, FieldView{Particles: make([]components.Particle, 4)})
	if n := f.ParticleCount(); n != 5 {
		t.Errorf("expected 5 particles, got %d", n)
	}

	var null Null
	null.Render(f)
	null.Render(f)
	if null.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", null.Frames)
	}
}
