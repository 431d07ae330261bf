package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/systems"
)

// halfSource serves an image whose left half is red and right half black.
type halfSource struct{}

func (halfSource) Open(context.Context, string) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := color.RGBA{A: 255}
			if x < 20 {
				c.R = 255
			}
			img.Set(x, y, c)
		}
	}
	return img, nil
}

type failSource struct{}

func (failSource) Open(context.Context, string) (image.Image, error) {
	return nil, errors.New("boom")
}

func TestRunWritesPoints(t *testing.T) {
	params := samplerParams(config.Default(), 200)
	var buf bytes.Buffer
	n, err := run(context.Background(), halfSource{}, "half.png", params, 1, &buf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 200 {
		t.Errorf("expected 200 points, got %d", n)
	}
	if !strings.HasPrefix(buf.String(), "x,y,r,g,b\n") {
		t.Errorf("expected csv header, got %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	var rows []PointRow
	if err := gocsv.Unmarshal(&buf, &rows); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, r := range rows {
		// Bilinear scaling blurs one column at the edge
		if r.X >= 0.02 {
			t.Errorf("expected only left-half points, got x=%v", r.X)
			break
		}
		if r.R == 0 || r.G != 0 || r.B != 0 {
			t.Errorf("expected red points, got %d,%d,%d", r.R, r.G, r.B)
			break
		}
	}
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	if _, err := run(context.Background(), failSource{}, "x.png", samplerParams(config.Default(), 10), 1, &buf); err == nil {
		t.Error("expected open failure")
	}

	params := samplerParams(config.Default(), 10)
	params.LuminanceThreshold = 255 * 3
	_, err := run(context.Background(), halfSource{}, "x.png", params, 1, &buf)
	if !errors.Is(err, systems.ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
}

func TestSamplerParamsCount(t *testing.T) {
	cfg := config.Default()
	if p := samplerParams(cfg, 0); p.Target != cfg.Images.ParticleCount || p.MaxAttempts != cfg.Derived.MaxAttempts {
		t.Errorf("expected config values, got %+v", p)
	}
	if p := samplerParams(cfg, 7); p.Target != 7 || p.MaxAttempts != 7*cfg.Images.MaxAttemptsFactor {
		t.Errorf("expected count override, got %+v", p)
	}
}
