package game

import (
	"github.com/pthm-cable/ecosim/components"
)

// spawnInitialPopulation places plants, then herbivores, then carnivores on
// distinct empty cells drawn uniformly with the run rng.
func (g *Game) spawnInitialPopulation() {
	free := make([]components.Position, 0, g.cfg.Derived.Capacity)
	for y := 0; y < g.world.Height; y++ {
		for x := 0; x < g.world.Width; x++ {
			if g.world.IsCellEmpty(x, y, nil) {
				free = append(free, components.Position{X: x, Y: y})
			}
		}
	}

	counts := [components.NumSpecies]int{
		components.SpeciesPlant:     g.cfg.Population.Plants,
		components.SpeciesHerbivore: g.cfg.Population.Herbivores,
		components.SpeciesCarnivore: g.cfg.Population.Carnivores,
	}

	for _, s := range components.AllSpecies() {
		for i := 0; i < counts[s] && len(free) > 0; i++ {
			idx := g.rng.Intn(len(free))
			cell := free[idx]
			free[idx] = free[len(free)-1]
			free = free[:len(free)-1]

			e := g.world.Spawn(s, cell.X, cell.Y, g.initialEnergy(s), g.tick)
			g.registerLifetime(e)
		}
	}
}

// initialEnergy returns the starting energy for an organism placed at
// initialization. Plants carry none.
func (g *Game) initialEnergy(s components.Species) components.Energy {
	if !s.IsAnimal() {
		return components.Energy{}
	}
	rules := g.rules.Animal(s)
	return components.Energy{Value: rules.InitialEnergy, Max: rules.MaxEnergy}
}
