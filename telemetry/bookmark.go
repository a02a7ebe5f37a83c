package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/cloudchamber/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkDecayBurst   BookmarkType = "decay_burst"
	BookmarkCascadeDepth BookmarkType = "cascade_depth"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        int32
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the cascade.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	burstMultiplier float64
	burstMinDecays  int
	depthThreshold  int

	deepestSeen int // deepest generation already bookmarked
}

// NewBookmarkDetector creates a detector with the given history size and
// thresholds.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling average
	}
	return &BookmarkDetector{
		history:         make([]WindowStats, historySize),
		historySize:     historySize,
		burstMultiplier: cfg.DecayBurst.Multiplier,
		burstMinDecays:  cfg.DecayBurst.MinDecays,
		depthThreshold:  cfg.CascadeDepth.MinGeneration,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Decay burst: window decays well above the rolling average
		if b := bd.checkDecayBurst(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Cascade depth: a decay chain reached a new record generation
		if b := bd.checkCascadeDepth(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkDecayBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	if stats.Decays < bd.burstMinDecays {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Decays
	}
	avg := float64(total) / float64(len(history))

	if avg > 0 && float64(stats.Decays) <= avg*bd.burstMultiplier {
		return nil
	}

	desc := fmt.Sprintf("%d decays in one window after a quiet spell", stats.Decays)
	if avg > 0 {
		desc = fmt.Sprintf("%d decays in one window, %.1fx the rolling average (%.1f)",
			stats.Decays, float64(stats.Decays)/avg, avg)
	}

	return &Bookmark{
		Type:        BookmarkDecayBurst,
		Tick:        stats.WindowEndTick,
		Description: desc,
	}
}

func (bd *BookmarkDetector) checkCascadeDepth(stats WindowStats) *Bookmark {
	if stats.DeepestGen < bd.depthThreshold || stats.DeepestGen <= bd.deepestSeen {
		return nil
	}

	// Trigger once per depth record
	bd.deepestSeen = stats.DeepestGen

	return &Bookmark{
		Type:        BookmarkCascadeDepth,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Cascade reached generation %d", stats.DeepestGen),
	}
}
