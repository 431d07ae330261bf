package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/drift/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: expected %v, got %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVectorApplyClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	pv.ApplyToConfig(cfg, []float64{-1, 1, 0.001, 10})

	got := pv.ExtractFromConfig(cfg)
	want := []float64{0, 0.15, 0.001, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: expected %v, got %v", pv.Specs[i].Name, want[i], got[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: default %v differs from defaults.yaml %v", spec.Name, spec.Default, got[i])
		}
	}
}

func TestEvaluateScoresBackground(t *testing.T) {
	cfg := config.Default()
	cfg.Background.ParticleCount = 300
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 30, []int64{1, 2}, cfg)

	fitness, err := fe.Evaluate(pv.DefaultVector())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if fitness > 0 || fitness < -1 {
		t.Errorf("expected fitness in [-1, 0], got %v", fitness)
	}
	s := fe.LastScore()
	if s.Onscreen < 0 || s.Onscreen > 1 || s.Spread < 0 || s.Spread > 1 {
		t.Errorf("expected scores in [0, 1], got %+v", s)
	}
}
