package game

import "log/slog"

// flushTelemetry closes the stats window once it lasted long enough and
// writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.elapsed) {
		return
	}

	stats := g.collector.Flush(g.tick, g.elapsed, g.Counts())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write frame stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
