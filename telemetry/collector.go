// Package telemetry aggregates per-window population statistics, detects
// notable population events and writes experiment output.
package telemetry

import "github.com/pthm-cable/ecosim/components"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	capacity            int

	// Current window tracking
	windowStartTick int32

	// Event counters for current window, indexed by species
	births  [components.NumSpecies]int
	eaten   [components.NumSpecies]int
	starved [components.NumSpecies]int

	// Lifetime totals of organisms that died this window
	deaths   [components.NumSpecies]int
	lifespan [components.NumSpecies]int
	children [components.NumSpecies]int
	meals    [components.NumSpecies]int
}

// NewCollector creates a stats collector flushing every windowTicks ticks.
// capacity is the number of grid cells, used for occupancy.
func NewCollector(windowTicks, capacity int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int32(windowTicks),
		capacity:            capacity,
	}
}

// RecordBirth records a newborn materialized at reconciliation.
func (c *Collector) RecordBirth(s components.Species) {
	c.births[s]++
}

// RecordEaten records a prey organism removed by a predator.
func (c *Collector) RecordEaten(prey components.Species) {
	c.eaten[prey]++
}

// RecordStarved records an animal removed for running out of energy.
func (c *Collector) RecordStarved(s components.Species) {
	c.starved[s]++
}

// RecordDeath folds a finished lifetime into the window. Nil stats are ignored.
func (c *Collector) RecordDeath(ls *LifetimeStats, tick int32) {
	if ls == nil {
		return
	}
	c.deaths[ls.Species]++
	c.lifespan[ls.Species] += int(tick - ls.BirthTick)
	c.children[ls.Species] += ls.Children
	c.meals[ls.Species] += ls.Meals
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// counts are the living organisms per species; energies the sampled energy
// values per species.
func (c *Collector) Flush(
	currentTick int32,
	counts [components.NumSpecies]int,
	energies [components.NumSpecies][]float64,
) WindowStats {
	herb := ComputeEnergyStats(energies[components.SpeciesHerbivore])
	carn := ComputeEnergyStats(energies[components.SpeciesCarnivore])

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Plants:     counts[components.SpeciesPlant],
		Herbivores: counts[components.SpeciesHerbivore],
		Carnivores: counts[components.SpeciesCarnivore],

		PlantBirths:       c.births[components.SpeciesPlant],
		HerbivoreBirths:   c.births[components.SpeciesHerbivore],
		CarnivoreBirths:   c.births[components.SpeciesCarnivore],
		PlantsEaten:       c.eaten[components.SpeciesPlant],
		HerbivoresEaten:   c.eaten[components.SpeciesHerbivore],
		HerbivoresStarved: c.starved[components.SpeciesHerbivore],
		CarnivoresStarved: c.starved[components.SpeciesCarnivore],

		HerbivoreEnergyMean: herb.Mean,
		HerbivoreEnergyStd:  herb.Std,
		HerbivoreEnergyP10:  herb.P10,
		HerbivoreEnergyP50:  herb.P50,
		HerbivoreEnergyP90:  herb.P90,

		CarnivoreEnergyMean: carn.Mean,
		CarnivoreEnergyStd:  carn.Std,
		CarnivoreEnergyP10:  carn.P10,
		CarnivoreEnergyP50:  carn.P50,
		CarnivoreEnergyP90:  carn.P90,

		PlantLifespan:      c.meanPerDeath(c.lifespan, components.SpeciesPlant),
		HerbivoreLifespan:  c.meanPerDeath(c.lifespan, components.SpeciesHerbivore),
		CarnivoreLifespan:  c.meanPerDeath(c.lifespan, components.SpeciesCarnivore),
		HerbivoreOffspring: c.meanPerDeath(c.children, components.SpeciesHerbivore),
		CarnivoreOffspring: c.meanPerDeath(c.children, components.SpeciesCarnivore),
		HerbivoreMeals:     c.meanPerDeath(c.meals, components.SpeciesHerbivore),
		CarnivoreMeals:     c.meanPerDeath(c.meals, components.SpeciesCarnivore),
	}
	if c.capacity > 0 {
		stats.Occupancy = float64(stats.Total()) / float64(c.capacity)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [components.NumSpecies]int{}
	c.eaten = [components.NumSpecies]int{}
	c.starved = [components.NumSpecies]int{}
	c.deaths = [components.NumSpecies]int{}
	c.lifespan = [components.NumSpecies]int{}
	c.children = [components.NumSpecies]int{}
	c.meals = [components.NumSpecies]int{}

	return stats
}

func (c *Collector) meanPerDeath(totals [components.NumSpecies]int, s components.Species) float64 {
	if c.deaths[s] == 0 {
		return 0
	}
	return float64(totals[s]) / float64(c.deaths[s])
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
