// Package systems provides the population store and per-organism rules for
// the simulation.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// Rules holds the per-species constants the organism rules read.
type Rules struct {
	Plant   config.PlantConfig
	animals [components.NumSpecies]config.AnimalConfig
}

// NewRules extracts the species rules from cfg.
func NewRules(cfg *config.Config) *Rules {
	r := &Rules{Plant: cfg.Plant}
	r.animals[components.SpeciesHerbivore] = cfg.Herbivore
	r.animals[components.SpeciesCarnivore] = cfg.Carnivore
	return r
}

// Animal returns the constants for an animal species.
func (r *Rules) Animal(s components.Species) *config.AnimalConfig {
	return &r.animals[s]
}

// Tick is the context an organism acts in: the world, the staging buffers of
// the current tick, the run rng and the rules.
type Tick struct {
	Number int32
	World  *World
	Staged *Staging
	Rng    *rand.Rand
	Rules  *Rules
}

// Outcome is what an organism's action asks the engine to stage.
type Outcome struct {
	Birth   *Newborn
	Prey    ecs.Entity
	HasPrey bool
	Died    bool

	// Gained is the energy gained from feeding this tick.
	Gained int
	Moved  bool
}

// Act runs one tick of behaviour for e. Own position, energy and growth are
// updated in place; effects on other organisms are returned.
func Act(t *Tick, e ecs.Entity) Outcome {
	org := t.World.Organism(e)
	switch org.Species {
	case components.SpeciesPlant:
		return actPlant(t, e)
	case components.SpeciesHerbivore, components.SpeciesCarnivore:
		return actAnimal(t, e, org)
	}
	return Outcome{}
}

// actAnimal feeds, else reproduces, else moves. Only one of the three happens
// per tick. Upkeep is charged on every tick without a meal.
func actAnimal(t *Tick, e ecs.Entity, org *components.Organism) Outcome {
	rules := t.Rules.Animal(org.Species)
	pos := t.World.Position(e)
	energy := t.World.Energy(e)

	var out Outcome
	prey, _ := org.Species.Prey()
	if target, ok := FindPrey(t, *pos, prey); ok {
		out.Prey, out.HasPrey = target, true
		out.Gained = Feed(energy, rules)
	} else {
		out.Birth = TryReproduce(t, org, *pos, energy, rules)
		if out.Birth == nil {
			if cell, ok := t.FirstEmptyNeighbour(*pos); ok {
				pos.X, pos.Y = cell.X, cell.Y
				out.Moved = true
			}
		}
		PayUpkeep(energy, rules)
	}

	out.Died = energy.Depleted()
	return out
}
