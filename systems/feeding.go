package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// FindPrey scans the shuffled neighbourhood of pos and returns the first
// living organism of the prey species.
func FindPrey(t *Tick, pos components.Position, prey components.Species) (ecs.Entity, bool) {
	cells := t.World.Neighbours(pos.X, pos.Y, t.Rng)
	near := t.World.OrganismsNear(pos.X, pos.Y, 1)
	if len(near) == 0 {
		return ecs.Entity{}, false
	}

	for _, cell := range cells {
		for _, e := range near {
			org := t.World.Organism(e)
			if org.Species != prey || !org.Alive {
				continue
			}
			p := t.World.Position(e)
			if p.X == cell.X && p.Y == cell.Y {
				return e, true
			}
		}
	}
	return ecs.Entity{}, false
}
