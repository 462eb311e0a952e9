package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

func testRules() *Rules {
	cfg := config.Default()
	cfg.Plant = config.PlantConfig{ReproductionChance: 0, GrowthInterval: 1}
	cfg.Herbivore = config.AnimalConfig{
		InitialEnergy: 10, MaxEnergy: 20, EatGain: 5, UpkeepCost: 1,
		ReproductionThreshold: 100, ReproductionChance: 0, ReproductionCost: 4, ChildEnergy: 3,
	}
	cfg.Carnivore = config.AnimalConfig{
		InitialEnergy: 10, MaxEnergy: 0, EatGain: 8, UpkeepCost: 2,
		ReproductionThreshold: 100, ReproductionChance: 0, ReproductionCost: 4, ChildEnergy: 3,
	}
	return NewRules(cfg)
}

func newTick(w *World, seed int64) *Tick {
	return &Tick{
		Number: 1,
		World:  w,
		Staged: NewStaging(),
		Rng:    rand.New(rand.NewSource(seed)),
		Rules:  testRules(),
	}
}

func adjacent(a, b components.Position) bool {
	return a.Chebyshev(b) == 1
}

func TestAct_HerbivoreEatsAdjacentPlant(t *testing.T) {
	w := NewWorld(3, 3)
	h := w.Spawn(components.SpeciesHerbivore, 1, 1, components.Energy{Value: 10, Max: 20}, 0)
	p := spawnAt(w, components.SpeciesPlant, 0, 0, 0)
	tick := newTick(w, 1)

	out := Act(tick, h)

	if !out.HasPrey || out.Prey != p {
		t.Fatalf("expected plant to be eaten, got %+v", out)
	}
	if got := w.Energy(h).Value; got != 15 {
		t.Errorf("energy = %d, want 15 (no upkeep on a feeding tick)", got)
	}
	if pos := *w.Position(h); pos != (components.Position{X: 1, Y: 1}) {
		t.Errorf("feeding herbivore moved to %v", pos)
	}
	if out.Died {
		t.Error("fed herbivore should not die")
	}
}

func TestAct_FeedingClampsToMax(t *testing.T) {
	w := NewWorld(2, 1)
	h := w.Spawn(components.SpeciesHerbivore, 0, 0, components.Energy{Value: 18, Max: 20}, 0)
	spawnAt(w, components.SpeciesPlant, 1, 0, 0)

	out := Act(newTick(w, 1), h)

	if w.Energy(h).Value != 20 {
		t.Errorf("energy = %d, want 20", w.Energy(h).Value)
	}
	if out.Gained != 2 {
		t.Errorf("Gained = %d, want 2", out.Gained)
	}
}

func TestAct_CarnivoreIgnoresPlants(t *testing.T) {
	w := NewWorld(2, 2)
	c := spawnAt(w, components.SpeciesCarnivore, 0, 0, 10)
	spawnAt(w, components.SpeciesPlant, 1, 0, 0)
	spawnAt(w, components.SpeciesPlant, 0, 1, 0)

	out := Act(newTick(w, 3), c)

	if out.HasPrey {
		t.Fatal("carnivore must not eat plants")
	}
	if pos := *w.Position(c); pos != (components.Position{X: 1, Y: 1}) {
		t.Errorf("carnivore should move to the only empty cell, at %v", pos)
	}
	if w.Energy(c).Value != 8 {
		t.Errorf("energy = %d, want 8 after upkeep", w.Energy(c).Value)
	}
}

func TestAct_CarnivoreEatsHerbivore(t *testing.T) {
	w := NewWorld(3, 3)
	c := spawnAt(w, components.SpeciesCarnivore, 0, 0, 10)
	h := spawnAt(w, components.SpeciesHerbivore, 1, 1, 10)

	out := Act(newTick(w, 5), c)

	if !out.HasPrey || out.Prey != h {
		t.Fatalf("expected herbivore to be eaten, got %+v", out)
	}
	if w.Energy(c).Value != 18 {
		t.Errorf("energy = %d, want 18 (uncapped)", w.Energy(c).Value)
	}
}

func TestAct_DeadPreyIsIgnored(t *testing.T) {
	w := NewWorld(2, 1)
	h := spawnAt(w, components.SpeciesHerbivore, 0, 0, 10)
	p := spawnAt(w, components.SpeciesPlant, 1, 0, 0)
	tick := newTick(w, 1)
	tick.Staged.Remove(w, p)

	out := Act(tick, h)

	if out.HasPrey {
		t.Fatal("prey staged for removal must not be eaten")
	}
	if !out.Moved || *w.Position(h) != (components.Position{X: 1, Y: 0}) {
		t.Error("herbivore should move into the freed cell")
	}
}

func TestAct_MovesToEmptyCellAndPaysUpkeep(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		w := NewWorld(5, 5)
		h := spawnAt(w, components.SpeciesHerbivore, 2, 2, 10)
		start := *w.Position(h)

		out := Act(newTick(w, seed), h)

		if !out.Moved {
			t.Fatalf("seed %d: herbivore with free neighbours should move", seed)
		}
		if !adjacent(start, *w.Position(h)) {
			t.Errorf("seed %d: moved from %v to non-adjacent %v", seed, start, *w.Position(h))
		}
		if w.Energy(h).Value != 9 {
			t.Errorf("seed %d: energy = %d, want 9", seed, w.Energy(h).Value)
		}
	}
}

func TestAct_BlockedAnimalStays(t *testing.T) {
	w := NewWorld(2, 1)
	c := spawnAt(w, components.SpeciesCarnivore, 0, 0, 10)
	spawnAt(w, components.SpeciesCarnivore, 1, 0, 10)

	out := Act(newTick(w, 1), c)

	if out.Moved {
		t.Error("surrounded animal should not move")
	}
	if *w.Position(c) != (components.Position{X: 0, Y: 0}) {
		t.Errorf("position changed to %v", *w.Position(c))
	}
	if w.Energy(c).Value != 8 {
		t.Errorf("energy = %d, want 8", w.Energy(c).Value)
	}
}

func TestAct_StagedBirthBlocksMove(t *testing.T) {
	w := NewWorld(2, 1)
	h := spawnAt(w, components.SpeciesHerbivore, 0, 0, 10)
	tick := newTick(w, 1)
	tick.Staged.Add(Newborn{Species: components.SpeciesPlant, X: 1, Y: 0})

	out := Act(tick, h)

	if out.Moved {
		t.Error("animal must not move onto a staged birth")
	}
}

func TestAct_Starvation(t *testing.T) {
	w := NewWorld(3, 3)
	tick := newTick(w, 1)
	upkeep := tick.Rules.Animal(components.SpeciesHerbivore).UpkeepCost
	h := spawnAt(w, components.SpeciesHerbivore, 1, 1, upkeep)
	start := *w.Position(h)

	out := Act(tick, h)

	if !out.Moved || !adjacent(start, *w.Position(h)) {
		t.Errorf("starving herbivore should still move, at %v", *w.Position(h))
	}
	if !out.Died {
		t.Error("herbivore reaching 0 energy should die the same tick")
	}
	if w.Energy(h).Value != 0 {
		t.Errorf("energy = %d, want 0", w.Energy(h).Value)
	}
}

func TestAct_Reproduction(t *testing.T) {
	w := NewWorld(3, 3)
	h := w.Spawn(components.SpeciesHerbivore, 1, 1, components.Energy{Value: 15, Max: 20}, 0)
	tick := newTick(w, 2)
	rules := tick.Rules.Animal(components.SpeciesHerbivore)
	rules.ReproductionThreshold = 10
	rules.ReproductionChance = 1

	out := Act(tick, h)

	if out.Birth == nil {
		t.Fatal("expected a birth")
	}
	if out.Birth.Species != components.SpeciesHerbivore || out.Birth.Energy != 3 || out.Birth.MaxEnergy != 20 {
		t.Errorf("unexpected newborn %+v", *out.Birth)
	}
	if out.Birth.ParentID != w.Organism(h).ID {
		t.Error("newborn should record its parent")
	}
	if out.Moved {
		t.Error("reproducing parent must not move in the same tick")
	}
	parent := *w.Position(h)
	if parent != (components.Position{X: 1, Y: 1}) {
		t.Errorf("parent moved to %v", parent)
	}
	child := components.Position{X: out.Birth.X, Y: out.Birth.Y}
	if !adjacent(parent, child) {
		t.Errorf("child at %v not adjacent to parent at %v", child, parent)
	}
	// 15 - 1 upkeep - 4 cost
	if w.Energy(h).Value != 10 {
		t.Errorf("parent energy = %d, want 10", w.Energy(h).Value)
	}
}

func TestAct_ReproductionNeedsEnergyAboveThreshold(t *testing.T) {
	w := NewWorld(3, 3)
	h := spawnAt(w, components.SpeciesHerbivore, 1, 1, 10)
	tick := newTick(w, 2)
	rules := tick.Rules.Animal(components.SpeciesHerbivore)
	rules.ReproductionThreshold = 10
	rules.ReproductionChance = 1

	out := Act(tick, h)
	if out.Birth != nil {
		t.Error("energy equal to the threshold must not reproduce")
	}
	if !out.Moved {
		t.Error("animal that did not reproduce should move")
	}
}

func TestAct_FedAnimalDoesNotReproduce(t *testing.T) {
	w := NewWorld(3, 3)
	h := w.Spawn(components.SpeciesHerbivore, 0, 0, components.Energy{Value: 15, Max: 20}, 0)
	spawnAt(w, components.SpeciesPlant, 0, 1, 0)
	tick := newTick(w, 2)
	rules := tick.Rules.Animal(components.SpeciesHerbivore)
	rules.ReproductionThreshold = 10
	rules.ReproductionChance = 1

	out := Act(tick, h)

	if !out.HasPrey {
		t.Fatal("expected the herbivore to feed")
	}
	if out.Birth != nil {
		t.Error("animal must not reproduce on a tick it fed")
	}
	if got := w.Energy(h).Value; got != 20 {
		t.Errorf("energy = %d, want 20", got)
	}
}

func TestAct_PlantGrowth(t *testing.T) {
	w := NewWorld(3, 3)
	p := spawnAt(w, components.SpeciesPlant, 1, 1, 0)
	tick := newTick(w, 4)
	tick.Rules.Plant = config.PlantConfig{ReproductionChance: 1, GrowthInterval: 3}

	for i := 1; i < 3; i++ {
		if out := Act(tick, p); out.Birth != nil {
			t.Fatalf("plant reproduced after %d ticks, interval is 3", i)
		}
	}
	out := Act(tick, p)
	if out.Birth == nil {
		t.Fatal("plant should reproduce once the interval is reached")
	}
	if out.Birth.Species != components.SpeciesPlant {
		t.Errorf("newborn species = %v", out.Birth.Species)
	}
	if w.Growth(p).Counter != 0 {
		t.Errorf("growth counter = %d, want reset to 0", w.Growth(p).Counter)
	}
}

func TestAct_PlantSurroundedKeepsCounter(t *testing.T) {
	w := NewWorld(2, 1)
	p := spawnAt(w, components.SpeciesPlant, 0, 0, 0)
	spawnAt(w, components.SpeciesPlant, 1, 0, 0)
	tick := newTick(w, 4)
	tick.Rules.Plant = config.PlantConfig{ReproductionChance: 1, GrowthInterval: 1}

	if out := Act(tick, p); out.Birth != nil {
		t.Fatal("surrounded plant must not reproduce")
	}
	if w.Growth(p).Counter != 1 {
		t.Errorf("growth counter = %d, want 1", w.Growth(p).Counter)
	}
}

func TestAct_PlantNeverDies(t *testing.T) {
	w := NewWorld(1, 1)
	p := spawnAt(w, components.SpeciesPlant, 0, 0, 0)
	tick := newTick(w, 1)
	for i := 0; i < 10; i++ {
		if out := Act(tick, p); out.Died {
			t.Fatal("plants only die by being eaten")
		}
	}
}

func TestFindPrey_NoNeighbours(t *testing.T) {
	w := NewWorld(3, 3)
	spawnAt(w, components.SpeciesPlant, 2, 2, 0)

	if _, ok := FindPrey(newTick(w, 1), components.Position{X: 0, Y: 0}, components.SpeciesPlant); ok {
		t.Error("plant two cells away must not be found")
	}
}
