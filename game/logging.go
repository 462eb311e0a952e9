package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/ecosim/components"
)

// logRunSummary logs the final state of a run.
func (g *Game) logRunSummary(elapsed time.Duration) {
	counts := g.world.Counts()
	perf := g.perfCollector.Stats()
	slog.Info("run complete",
		"seed", g.rngSeed,
		"ticks", g.tick,
		"plants", counts[components.SpeciesPlant],
		"herbivores", counts[components.SpeciesHerbivore],
		"carnivores", counts[components.SpeciesCarnivore],
		"elapsed_ms", elapsed.Milliseconds(),
		"perf", perf,
	)
}
