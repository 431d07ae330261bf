package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a wall clock window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	ElapsedSec      float64 `csv:"elapsed"`
	Frames          int     `csv:"frames"`

	// Frame delta distribution in milliseconds
	DeltaMeanMS float64 `csv:"delta_mean_ms"`
	DeltaStdMS  float64 `csv:"delta_std_ms"`
	DeltaP50MS  float64 `csv:"delta_p50_ms"`
	DeltaP90MS  float64 `csv:"delta_p90_ms"`
	DeltaP99MS  float64 `csv:"delta_p99_ms"`
	DeltaMaxMS  float64 `csv:"delta_max_ms"`

	// Field counts at window end
	BackgroundParticles int `csv:"background_particles"`
	ImageFields         int `csv:"image_fields"`
	ImageParticles      int `csv:"image_particles"`

	// Events during window
	Resets         int `csv:"resets"`
	ImagesQueued   int `csv:"images_queued"`
	ImagesLoaded   int `csv:"images_loaded"`
	ImagesFailed   int `csv:"images_failed"`
	AnchorsMissing int `csv:"anchors_missing"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// DeltaStats summarises frame deltas.
type DeltaStats struct {
	Mean, Std          float64
	P50, P90, P99, Max float64
}

// ComputeDeltaStats calculates mean, sample standard deviation and
// percentiles of the given values.
func ComputeDeltaStats(values []float64) DeltaStats {
	n := len(values)
	if n == 0 {
		return DeltaStats{}
	}

	var d DeltaStats
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	d.P99 = Percentile(sorted, 0.99)
	d.Max = sorted[n-1]
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.Int("frames", s.Frames),
		slog.Float64("delta_mean_ms", s.DeltaMeanMS),
		slog.Float64("delta_std_ms", s.DeltaStdMS),
		slog.Float64("delta_p50_ms", s.DeltaP50MS),
		slog.Float64("delta_p90_ms", s.DeltaP90MS),
		slog.Float64("delta_p99_ms", s.DeltaP99MS),
		slog.Float64("delta_max_ms", s.DeltaMaxMS),
		slog.Int("background_particles", s.BackgroundParticles),
		slog.Int("image_fields", s.ImageFields),
		slog.Int("image_particles", s.ImageParticles),
		slog.Int("resets", s.Resets),
		slog.Int("images_queued", s.ImagesQueued),
		slog.Int("images_loaded", s.ImagesLoaded),
		slog.Int("images_failed", s.ImagesFailed),
		slog.Int("anchors_missing", s.AnchorsMissing),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
