package telemetry

import (
	"testing"

	"github.com/pthm-cable/cloudchamber/config"
)

func testBookmarksConfig() config.BookmarksConfig {
	return config.BookmarksConfig{
		DecayBurst: config.DecayBurstConfig{
			Multiplier: 3.0,
			MinDecays:  6,
		},
		CascadeDepth: config.CascadeDepthConfig{
			MinGeneration: 3,
		},
	}
}

func TestBookmarkDetector_DecayBurst(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	// Build history with a steady trickle of decays
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int32(i * 300),
			Decays:        2,
		})
	}

	// A window with a burst well above the 2/window average
	bookmarks := bd.Check(WindowStats{
		WindowEndTick: 1500,
		Decays:        9, // 4.5x the average, above min_decays
	})

	found := false
	for _, bm := range bookmarks {
		if bm.Type == BookmarkDecayBurst {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected decay_burst bookmark")
	}
}

func TestBookmarkDetector_DecayBurstBelowMinimum(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), Decays: 1})
	}

	// 5 decays is 5x the average but below min_decays
	bookmarks := bd.Check(WindowStats{WindowEndTick: 1500, Decays: 5})

	for _, bm := range bookmarks {
		if bm.Type == BookmarkDecayBurst {
			t.Error("burst below min_decays should not bookmark")
		}
	}
}

func TestBookmarkDetector_DecayBurstAfterQuiet(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	// Nothing decays for a while
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300)})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1500, Decays: 8})

	found := false
	for _, bm := range bookmarks {
		if bm.Type == BookmarkDecayBurst {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected decay_burst bookmark after a quiet spell")
	}
}

func TestBookmarkDetector_CascadeDepth(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	// Shallow cascades only
	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), DeepestGen: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 900, DeepestGen: 3})

	found := false
	for _, bm := range bookmarks {
		if bm.Type == BookmarkCascadeDepth {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected cascade_depth bookmark at generation 3")
	}
}

func TestBookmarkDetector_CascadeDepthTriggersOncePerRecord(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), DeepestGen: 1})
	}

	first := bd.Check(WindowStats{WindowEndTick: 900, DeepestGen: 3})
	if len(first) == 0 {
		t.Fatal("expected a bookmark for the first generation-3 cascade")
	}

	// Same depth again: no new bookmark
	repeat := bd.Check(WindowStats{WindowEndTick: 1200, DeepestGen: 3})
	for _, bm := range repeat {
		if bm.Type == BookmarkCascadeDepth {
			t.Error("repeated depth should not bookmark again")
		}
	}

	// A deeper cascade sets a new record
	deeper := bd.Check(WindowStats{WindowEndTick: 1500, DeepestGen: 4})
	found := false
	for _, bm := range deeper {
		if bm.Type == BookmarkCascadeDepth {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected cascade_depth bookmark for new depth record")
	}
}

func TestBookmarkDetector_NoChecksWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	// Very first window never bookmarks, whatever it contains
	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, Decays: 50, DeepestGen: 5})
	if len(bookmarks) != 0 {
		t.Errorf("first window produced %d bookmarks, want 0", len(bookmarks))
	}
}
