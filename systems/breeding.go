package systems

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// TryReproduce stages nothing itself: it returns a newborn when the parent is
// above threshold, wins the chance roll and has an empty neighbour, and
// deducts the reproduction cost from the parent.
func TryReproduce(t *Tick, org *components.Organism, pos components.Position, energy *components.Energy, rules *config.AnimalConfig) *Newborn {
	if energy.Value <= rules.ReproductionThreshold {
		return nil
	}
	if t.Rng.Float64() >= rules.ReproductionChance {
		return nil
	}
	cell, ok := t.FirstEmptyNeighbour(pos)
	if !ok {
		return nil
	}

	energy.Value -= rules.ReproductionCost
	return &Newborn{
		Species:   org.Species,
		X:         cell.X,
		Y:         cell.Y,
		Energy:    rules.ChildEnergy,
		MaxEnergy: rules.MaxEnergy,
		ParentID:  org.ID,
	}
}
