package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/ecosim/components"
)

func TestComputeEnergyStats(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   EnergyStats
	}{
		{"empty slice", nil, EnergyStats{}},
		{"single element", []float64{7}, EnergyStats{Mean: 7, Std: 0, P10: 7, P50: 7, P90: 7}},
		{"five values", []float64{5, 1, 4, 2, 3}, EnergyStats{Mean: 3, Std: math.Sqrt(2), P10: 1, P50: 3, P90: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEnergyStats(tt.values)
			if math.Abs(got.Mean-tt.want.Mean) > 1e-9 || math.Abs(got.Std-tt.want.Std) > 1e-9 {
				t.Errorf("mean/std = %v/%v, want %v/%v", got.Mean, got.Std, tt.want.Mean, tt.want.Std)
			}
			if got.P10 != tt.want.P10 || got.P50 != tt.want.P50 || got.P90 != tt.want.P90 {
				t.Errorf("percentiles = %v/%v/%v, want %v/%v/%v",
					got.P10, got.P50, got.P90, tt.want.P10, tt.want.P50, tt.want.P90)
			}
		})
	}
}

func TestComputeEnergyStats_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeEnergyStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestCollector_FlushWindow(t *testing.T) {
	c := NewCollector(10, 100)

	if c.ShouldFlush(9) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at the window boundary")
	}

	c.RecordBirth(components.SpeciesPlant)
	c.RecordBirth(components.SpeciesPlant)
	c.RecordBirth(components.SpeciesCarnivore)
	c.RecordEaten(components.SpeciesPlant)
	c.RecordEaten(components.SpeciesHerbivore)
	c.RecordStarved(components.SpeciesCarnivore)

	counts := [components.NumSpecies]int{20, 4, 1}
	var energies [components.NumSpecies][]float64
	energies[components.SpeciesHerbivore] = []float64{10, 20}

	stats := c.Flush(10, counts, energies)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window = [%d, %d], want [0, 10]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Plants != 20 || stats.Herbivores != 4 || stats.Carnivores != 1 {
		t.Errorf("unexpected counts %+v", stats)
	}
	if stats.PlantBirths != 2 || stats.CarnivoreBirths != 1 || stats.HerbivoreBirths != 0 {
		t.Errorf("unexpected births %+v", stats)
	}
	if stats.PlantsEaten != 1 || stats.HerbivoresEaten != 1 || stats.CarnivoresStarved != 1 {
		t.Errorf("unexpected deaths %+v", stats)
	}
	if stats.HerbivoreEnergyMean != 15 {
		t.Errorf("herbivore energy mean = %v, want 15", stats.HerbivoreEnergyMean)
	}
	if math.Abs(stats.Occupancy-0.25) > 1e-9 {
		t.Errorf("occupancy = %v, want 0.25", stats.Occupancy)
	}

	// Counters reset for the next window
	next := c.Flush(20, counts, energies)
	if next.WindowStartTick != 10 {
		t.Errorf("next window start = %d, want 10", next.WindowStartTick)
	}
	if next.PlantBirths != 0 || next.PlantsEaten != 0 || next.CarnivoresStarved != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollector_MinimumWindow(t *testing.T) {
	c := NewCollector(0, 10)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("WindowDurationTicks() = %d, want 1", c.WindowDurationTicks())
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, components.SpeciesHerbivore, 4)
	lt.RecordMeal(7)
	lt.RecordChild(7)
	lt.RecordChild(7)
	lt.RecordChild(99) // untracked ids are ignored

	ls := lt.Remove(7)
	if ls == nil || ls.Meals != 1 || ls.Children != 2 || ls.BirthTick != 4 {
		t.Fatalf("Remove(7) = %+v", ls)
	}
	if lt.Remove(7) != nil || lt.Len() != 0 {
		t.Error("stats survived removal")
	}
}

func TestCollector_RecordDeath(t *testing.T) {
	c := NewCollector(10, 100)
	c.RecordDeath(&LifetimeStats{Species: components.SpeciesCarnivore, BirthTick: 0, Children: 3, Meals: 4}, 8)
	c.RecordDeath(&LifetimeStats{Species: components.SpeciesCarnivore, BirthTick: 2, Children: 0, Meals: 1}, 6)
	c.RecordDeath(nil, 6)

	var counts [components.NumSpecies]int
	var energies [components.NumSpecies][]float64
	stats := c.Flush(10, counts, energies)
	if stats.CarnivoreLifespan != 6 {
		t.Errorf("CarnivoreLifespan = %v, want 6", stats.CarnivoreLifespan)
	}
	if stats.CarnivoreOffspring != 1.5 {
		t.Errorf("CarnivoreOffspring = %v, want 1.5", stats.CarnivoreOffspring)
	}
	if stats.CarnivoreMeals != 2.5 {
		t.Errorf("CarnivoreMeals = %v, want 2.5", stats.CarnivoreMeals)
	}
	if stats.HerbivoreLifespan != 0 {
		t.Errorf("HerbivoreLifespan = %v, want 0 without deaths", stats.HerbivoreLifespan)
	}

	next := c.Flush(20, counts, energies)
	if next.CarnivoreLifespan != 0 || next.CarnivoreMeals != 0 {
		t.Errorf("lifetime totals not reset: %+v", next)
	}
}
