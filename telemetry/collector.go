package telemetry

// FieldCounts is a snapshot of the field registry.
type FieldCounts struct {
	BackgroundParticles int
	ImageFields         int
	ImageParticles      int
}

// Collector accumulates events within wall clock windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int32
	windowStartSec  float64
	deltas          []float64 // Milliseconds

	// Event counters for current window
	resets         int
	imagesQueued   int
	imagesLoaded   int
	imagesFailed   int
	anchorsMissing int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in wall clock seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame records one tick's frame delta in seconds.
func (c *Collector) RecordFrame(delta float64) {
	c.deltas = append(c.deltas, delta*1000)
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventImageQueued:
		c.imagesQueued++
	case EventImageLoaded:
		c.imagesLoaded++
	case EventImageFailed:
		c.imagesFailed++
	case EventAnchorMissing:
		c.anchorsMissing += ev.Count
	case EventReset:
		c.resets += ev.Count
	}
}

// ShouldFlush returns true once the window has lasted long enough.
func (c *Collector) ShouldFlush(elapsedSec float64) bool {
	return elapsedSec-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, elapsedSec float64, counts FieldCounts) WindowStats {
	d := ComputeDeltaStats(c.deltas)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		ElapsedSec:      elapsedSec,
		Frames:          len(c.deltas),

		DeltaMeanMS: d.Mean,
		DeltaStdMS:  d.Std,
		DeltaP50MS:  d.P50,
		DeltaP90MS:  d.P90,
		DeltaP99MS:  d.P99,
		DeltaMaxMS:  d.Max,

		BackgroundParticles: counts.BackgroundParticles,
		ImageFields:         counts.ImageFields,
		ImageParticles:      counts.ImageParticles,

		Resets:         c.resets,
		ImagesQueued:   c.imagesQueued,
		ImagesLoaded:   c.imagesLoaded,
		ImagesFailed:   c.imagesFailed,
		AnchorsMissing: c.anchorsMissing,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStartSec = elapsedSec
	c.deltas = c.deltas[:0]
	c.resets = 0
	c.imagesQueued = 0
	c.imagesLoaded = 0
	c.imagesFailed = 0
	c.anchorsMissing = 0

	return stats
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
