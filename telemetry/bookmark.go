package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkCrash           BookmarkType = "crash"
	BookmarkBoom            BookmarkType = "boom"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Species     string       `csv:"species"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"species", b.Species,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable population events across stats windows.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// Per-species state
	peak      [components.NumSpecies]int
	lastCount [components.NumSpecies]int
	seen      bool

	stableWindowsCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if cfg.StableWindows < 1 {
		cfg.StableWindows = 1
	}
	if historySize < cfg.StableWindows {
		historySize = cfg.StableWindows
	}
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

func speciesCounts(s WindowStats) [components.NumSpecies]int {
	return [components.NumSpecies]int{s.Plants, s.Herbivores, s.Carnivores}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	counts := speciesCounts(stats)

	if bd.seen {
		for _, s := range components.AllSpecies() {
			if b := bd.checkExtinction(stats, s, counts[s]); b != nil {
				bookmarks = append(bookmarks, *b)
				continue
			}
			if b := bd.checkCrash(stats, s, counts[s]); b != nil {
				bookmarks = append(bookmarks, *b)
			}
			if b := bd.checkBoom(stats, s, counts[s]); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	if b := bd.checkStableEcosystem(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	for s, n := range counts {
		if n > bd.peak[s] {
			bd.peak[s] = n
		}
	}
	bd.lastCount = counts
	bd.seen = true

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	if n > size {
		n = size
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats, s components.Species, count int) *Bookmark {
	if count != 0 || bd.lastCount[s] == 0 {
		return nil
	}
	bd.peak[s] = 0
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Species:     s.String(),
		Description: fmt.Sprintf("%s went extinct (was %d)", s, bd.lastCount[s]),
	}
}

func (bd *BookmarkDetector) checkCrash(stats WindowStats, s components.Species, count int) *Bookmark {
	peak := bd.peak[s]
	if peak == 0 {
		return nil
	}

	drop := 1.0 - float64(count)/float64(peak)
	if drop > bd.cfg.CrashDropPercent && peak-count >= bd.cfg.CrashMinDrop {
		// Reset peak after crash
		bd.peak[s] = count
		return &Bookmark{
			Type:        BookmarkCrash,
			Tick:        stats.WindowEndTick,
			Species:     s.String(),
			Description: fmt.Sprintf("%s crashed %.0f%% from peak %d to %d", s, drop*100, peak, count),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkBoom(stats WindowStats, s components.Species, count int) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) == 0 || count < bd.cfg.BoomMinPopulation {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += float64(speciesCounts(h)[s])
	}
	avg := sum / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(count) > avg*bd.cfg.BoomMultiplier {
		return &Bookmark{
			Type:        BookmarkBoom,
			Tick:        stats.WindowEndTick,
			Species:     s.String(),
			Description: fmt.Sprintf("%s at %d is %.1fx rolling average (%.1f)", s, count, float64(count)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	// Need every species present
	counts := speciesCounts(stats)
	for _, n := range counts {
		if n == 0 {
			bd.stableWindowsCount = 0
			return nil
		}
	}

	window := append(bd.recent(bd.cfg.StableWindows-1), stats)
	if len(window) < bd.cfg.StableWindows {
		return nil
	}

	stable := true
	for _, s := range components.AllSpecies() {
		if coefficientOfVariation(window, s) >= bd.cfg.StableCVThreshold {
			stable = false
			break
		}
	}

	if stable {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	// Trigger once per stable stretch
	if bd.stableWindowsCount == 1 {
		return &Bookmark{
			Type:    BookmarkStableEcosystem,
			Tick:    stats.WindowEndTick,
			Species: "all",
			Description: fmt.Sprintf("Stable ecosystem with %d plants, %d herbivores, %d carnivores over %d windows",
				stats.Plants, stats.Herbivores, stats.Carnivores, bd.cfg.StableWindows),
		}
	}
	return nil
}

func coefficientOfVariation(window []WindowStats, s components.Species) float64 {
	values := make([]float64, len(window))
	for i, w := range window {
		values[i] = float64(speciesCounts(w)[s])
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
