package anim

import (
	"log/slog"

	"github.com/pthm-cable/cloudchamber/telemetry"
)

// flushTelemetry closes the stats window when it is due and fans the result
// out to the callback, the logger, the CSV sinks, and the bookmark detector.
func (a *Animation) flushTelemetry() {
	if !a.collector.ShouldFlush(a.tick) {
		return
	}

	stats := a.collector.Flush(a.tick, a.particles)
	perfStats := a.perfCollector.Stats()

	if a.statsCallback != nil {
		a.statsCallback(stats)
	}

	if a.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := a.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := a.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf stats", "error", err)
	}

	for _, bm := range a.bookmarkDetector.Check(stats) {
		if a.logStats {
			bm.LogBookmark()
		}
		if err := a.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if a.snapshotDir != "" {
			a.saveSnapshot(bm)
		}
	}
}

// saveSnapshot captures the arena alongside the bookmark that earned it.
func (a *Animation) saveSnapshot(bookmark telemetry.Bookmark) {
	w, h := a.surface.Size()

	snapshot := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		RNGSeed:   a.rngSeed,
		Variant:   a.variant,
		Width:     w,
		Height:    h,
		Tick:      a.tick,
		Particles: telemetry.CaptureParticles(a.particles),
		Bookmark:  &bookmark,
	}

	path, err := telemetry.SaveSnapshot(snapshot, a.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", a.tick, "bookmark", string(bookmark.Type))
}
