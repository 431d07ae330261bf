package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Background.ParticleCount != 2000 {
		t.Errorf("expected 2000 background particles, got %d", cfg.Background.ParticleCount)
	}
	if cfg.Color.Mode != "doppler" {
		t.Errorf("expected doppler color mode, got %q", cfg.Color.Mode)
	}
	if cfg.Images.Resolution != 100 {
		t.Errorf("expected 100px sampling raster, got %d", cfg.Images.Resolution)
	}
	if math.Abs(cfg.Derived.FOVRadians-75*math.Pi/180) > 1e-12 {
		t.Errorf("expected derived fov 75deg in radians, got %f", cfg.Derived.FOVRadians)
	}
	if cfg.Derived.MaxAttempts != cfg.Images.ParticleCount*cfg.Images.MaxAttemptsFactor {
		t.Errorf("expected max attempts %d, got %d", cfg.Images.ParticleCount*cfg.Images.MaxAttemptsFactor, cfg.Derived.MaxAttempts)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("background:\n  particle_count: 3\ncolor:\n  mode: hue\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Background.ParticleCount != 3 {
		t.Errorf("expected particle count override 3, got %d", cfg.Background.ParticleCount)
	}
	if cfg.Color.Mode != "hue" {
		t.Errorf("expected color mode override hue, got %q", cfg.Color.Mode)
	}
	// Untouched fields keep their defaults
	if cfg.Background.SimulationSpeed != 0.1 {
		t.Errorf("expected default simulation speed 0.1, got %f", cfg.Background.SimulationSpeed)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DRIFT_PARTICLE_COUNT", "42")
	t.Setenv("DRIFT_COLOR_MODE", "solid")
	t.Setenv("DRIFT_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Background.ParticleCount != 42 {
		t.Errorf("expected env particle count 42, got %d", cfg.Background.ParticleCount)
	}
	if cfg.Color.Mode != "solid" {
		t.Errorf("expected env color mode solid, got %q", cfg.Color.Mode)
	}
	if cfg.Enabled {
		t.Error("expected DRIFT_ENABLED=false to disable the background")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown color mode", "color:\n  mode: rainbow\n"},
		{"reset probability above one", "background:\n  reset_probability: 2\n"},
		{"flat fov", "camera:\n  fov: 0\n"},
		{"negative count", "images:\n  particle_count: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Post.TrailDecay = 0.5

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot failed: %v", err)
	}
	if loaded.Post.TrailDecay != 0.5 {
		t.Errorf("expected trail decay 0.5 after roundtrip, got %f", loaded.Post.TrailDecay)
	}
}
