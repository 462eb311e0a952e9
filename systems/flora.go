package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// actPlant advances the growth counter and, once it reaches the growth
// interval, rolls for a seedling in an empty neighbouring cell.
func actPlant(t *Tick, e ecs.Entity) Outcome {
	growth := t.World.Growth(e)
	growth.Counter++
	if growth.Counter < t.Rules.Plant.GrowthInterval {
		return Outcome{}
	}
	if t.Rng.Float64() >= t.Rules.Plant.ReproductionChance {
		return Outcome{}
	}

	pos := t.World.Position(e)
	cell, ok := t.FirstEmptyNeighbour(*pos)
	if !ok {
		return Outcome{}
	}
	growth.Counter = 0

	org := t.World.Organism(e)
	return Outcome{Birth: &Newborn{
		Species:  components.SpeciesPlant,
		X:        cell.X,
		Y:        cell.Y,
		ParentID: org.ID,
	}}
}
