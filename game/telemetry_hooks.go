package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// registerLifetime starts lifetime tracking for a placed or newborn organism.
func (g *Game) registerLifetime(e ecs.Entity) {
	if g.lifetimes == nil {
		return
	}
	org := g.world.Organism(e)
	g.lifetimes.Register(org.ID, org.Species, org.BirthTick)
}

// recordBirth counts a newborn materialized at reconciliation.
func (g *Game) recordBirth(e ecs.Entity) {
	if g.collector == nil {
		return
	}
	g.collector.RecordBirth(g.world.Organism(e).Species)
	g.registerLifetime(e)
}

// recordDeath closes the lifetime of an organism staged for removal.
// Deaths are credited to the tick being processed.
func (g *Game) recordDeath(e ecs.Entity) {
	if g.lifetimes == nil {
		return
	}
	ls := g.lifetimes.Remove(g.world.Organism(e).ID)
	g.collector.RecordDeath(ls, g.tick+1)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if g.collector == nil || !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.world.Counts(), g.sampleEnergies())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sampleEnergies collects the energy of every living animal by species.
func (g *Game) sampleEnergies() (energies [components.NumSpecies][]float64) {
	for _, s := range g.world.States() {
		if s.Species.IsAnimal() {
			energies[s.Species] = append(energies[s.Species], float64(s.Energy))
		}
	}
	return energies
}
