package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDeltaStats(t *testing.T) {
	values := []float64{16, 17, 15, 16, 16, 18, 14, 16, 17, 15}
	d := ComputeDeltaStats(values)

	if math.Abs(d.Mean-16) > 0.001 {
		t.Errorf("mean = %v, want 16", d.Mean)
	}

	// Sample standard deviation: sum of squares 12 over n-1 = 9
	if math.Abs(d.Std-math.Sqrt(12.0/9)) > 0.001 {
		t.Errorf("std = %v, want %v", d.Std, math.Sqrt(12.0/9))
	}

	if math.Abs(d.P50-16) > 0.001 {
		t.Errorf("p50 = %v, want 16", d.P50)
	}

	if d.Max != 18 {
		t.Errorf("max = %v, want 18", d.Max)
	}

	// Input must not be reordered
	if values[0] != 16 || values[5] != 18 {
		t.Error("expected input slice to be left unsorted")
	}
}

func TestComputeDeltaStatsSmall(t *testing.T) {
	if d := ComputeDeltaStats(nil); d != (DeltaStats{}) {
		t.Errorf("empty slice should return all zeros, got %+v", d)
	}

	d := ComputeDeltaStats([]float64{20})
	if d.Mean != 20 || d.Std != 0 || d.P99 != 20 {
		t.Errorf("single value: expected mean 20 std 0, got %+v", d)
	}
}
