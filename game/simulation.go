package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// Step advances the simulation by one tick. Every organism alive at the
// start of the tick acts at most once, in snapshot order; births and deaths
// are staged and applied together after the last organism has acted.
func (g *Game) Step() {
	g.perfCollector.StartTick()

	// Snapshot
	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	snapshot := g.world.Snapshot()
	if g.cfg.Run.Order == config.OrderShuffled {
		g.rng.Shuffle(len(snapshot), func(i, j int) {
			snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
		})
	}
	staged := systems.NewStaging()
	t := &systems.Tick{
		Number: g.tick + 1,
		World:  g.world,
		Staged: staged,
		Rng:    g.rng,
		Rules:  g.rules,
	}

	// Act
	g.perfCollector.StartPhase(telemetry.PhaseAct)
	for _, e := range snapshot {
		org := g.world.Organism(e)
		if !org.Alive {
			continue
		}
		g.stage(staged, e, org.Species, systems.Act(t, e))
	}

	// Reconcile
	g.perfCollector.StartPhase(telemetry.PhaseReconcile)
	added := g.world.Apply(staged.Additions(), staged.Removals(), t.Number)
	g.tick = t.Number

	// Telemetry
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	for _, e := range added {
		g.recordBirth(e)
	}
	g.flushTelemetry()

	g.perfCollector.StartPhase(telemetry.PhaseObserve)
	g.notify()

	g.perfCollector.EndTick()
}

// stage turns an organism's outcome into deferred mutations.
func (g *Game) stage(staged *systems.Staging, e ecs.Entity, species components.Species, out systems.Outcome) {
	if out.HasPrey {
		prey := g.world.Organism(out.Prey).Species
		if staged.Remove(g.world, out.Prey) {
			g.recordDeath(out.Prey)
			if g.collector != nil {
				g.collector.RecordEaten(prey)
			}
		}
		if g.lifetimes != nil {
			g.lifetimes.RecordMeal(g.world.Organism(e).ID)
		}
	}
	if out.Birth != nil {
		staged.Add(*out.Birth)
		if g.lifetimes != nil {
			g.lifetimes.RecordChild(out.Birth.ParentID)
		}
	}
	if out.Died {
		if staged.Remove(g.world, e) {
			g.recordDeath(e)
			if g.collector != nil {
				g.collector.RecordStarved(species)
			}
		}
	}
}

// Run executes exactly ticks steps. It returns early, without error, when
// run.stop_when_empty is set and the population dies out, or when the
// observer reports it has stopped.
func (g *Game) Run(ticks int) error {
	if ticks <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTickCount, ticks)
	}

	start := time.Now()
	for i := 0; i < ticks; i++ {
		if g.stopWhenEmpty && g.world.Len() == 0 {
			slog.Info("population_extinct", "tick", g.tick)
			break
		}
		if g.stopped() {
			slog.Info("run stopped by observer", "tick", g.tick)
			break
		}

		g.Step()

		if g.tickDelay > 0 {
			time.Sleep(g.tickDelay)
		}
	}
	g.logRunSummary(time.Since(start))
	return nil
}
