package telemetry

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/cloudchamber/sim"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	particles := []sim.Particle{
		{
			X: 10, Y: 20,
			OriginX: 5, OriginY: 5,
			VelX: 1.5, VelY: -2,
			Life: 80, LifeTotal: 120,
			Generation: 1,
			Decayed:    true,
			ColorShift: 0.7,
		},
		{
			X: 50, Y: 60,
			OriginX: 50, OriginY: 60,
			VelX: 0.5, VelY: 0.5,
			Life: 100, LifeTotal: 100,
		},
	}

	snapshot := &Snapshot{
		Version:   SnapshotVersion,
		RNGSeed:   42,
		Variant:   "hero",
		Width:     1280,
		Height:    480,
		Tick:      900,
		Particles: CaptureParticles(particles),
	}

	path, err := SaveSnapshot(snapshot, dir)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Version != SnapshotVersion || loaded.Variant != "hero" || loaded.Tick != 900 {
		t.Errorf("header fields lost: %+v", loaded)
	}
	if loaded.RNGSeed != 42 || loaded.Width != 1280 || loaded.Height != 480 {
		t.Errorf("run parameters lost: %+v", loaded)
	}

	restored := RestoreParticles(loaded.Particles)
	if len(restored) != len(particles) {
		t.Fatalf("restored %d particles, want %d", len(restored), len(particles))
	}
	for i := range particles {
		if restored[i] != particles[i] {
			t.Errorf("particle %d = %+v, want %+v", i, restored[i], particles[i])
		}
	}
}

func TestSnapshotBookmarkFilename(t *testing.T) {
	dir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Tick:    1200,
		Bookmark: &Bookmark{
			Type:        BookmarkCascadeDepth,
			Tick:        1200,
			Description: "Cascade reached generation 3",
		},
	}

	path, err := SaveSnapshot(snapshot, dir)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !strings.Contains(filepath.Base(path), "cascade_depth") {
		t.Errorf("filename %q missing bookmark type", filepath.Base(path))
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing snapshot file")
	}
}
