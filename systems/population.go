package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// OrganismState is a value copy of one organism, safe to hand to observers.
type OrganismState struct {
	ID      uint32             `csv:"id"`
	Species components.Species `csv:"-"`
	Name    string             `csv:"species"`
	X       int                `csv:"x"`
	Y       int                `csv:"y"`
	Energy  int                `csv:"energy"`
}

// World is the population store: grid bounds plus a flat, unindexed
// collection of organisms. Components live in an ark world; the population
// slice keeps insertion order, which is the processing order of a tick.
type World struct {
	Width, Height int

	ecs        *ecs.World
	population []ecs.Entity
	nextID     uint32

	mapper *ecs.Map4[
		components.Position,
		components.Organism,
		components.Energy,
		components.Growth,
	]
	orgFilter *ecs.Filter1[components.Organism]

	posMap    *ecs.Map1[components.Position]
	orgMap    *ecs.Map1[components.Organism]
	energyMap *ecs.Map1[components.Energy]
	growthMap *ecs.Map1[components.Growth]
}

// NewWorld creates an empty world with fixed bounds.
func NewWorld(width, height int) *World {
	world := ecs.NewWorld()
	return &World{
		Width:  width,
		Height: height,
		ecs:    world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Organism,
			components.Energy,
			components.Growth,
		](world),
		orgFilter: ecs.NewFilter1[components.Organism](world),
		posMap:    ecs.NewMap1[components.Position](world),
		orgMap:    ecs.NewMap1[components.Organism](world),
		energyMap: ecs.NewMap1[components.Energy](world),
		growthMap: ecs.NewMap1[components.Growth](world),
	}
}

// InBounds reports whether (x, y) lies on the grid. Edges are hard walls.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// Spawn adds an organism immediately. Only initialization and reconciliation
// call this; organisms never spawn mid-tick.
func (w *World) Spawn(species components.Species, x, y int, energy components.Energy, tick int32) ecs.Entity {
	id := w.nextID
	w.nextID++

	pos := components.Position{X: x, Y: y}
	org := components.Organism{ID: id, Species: species, Alive: true, BirthTick: tick}
	growth := components.Growth{}

	entity := w.mapper.NewEntity(&pos, &org, &energy, &growth)
	w.population = append(w.population, entity)
	return entity
}

// Exists reports whether the handle still refers to a stored organism.
// Stale handles of removed organisms report false even if ark has recycled
// the slot for a newer organism.
func (w *World) Exists(e ecs.Entity) bool {
	return w.ecs.Alive(e)
}

// Position returns the organism's position component.
func (w *World) Position(e ecs.Entity) *components.Position { return w.posMap.Get(e) }

// Organism returns the organism's identity component.
func (w *World) Organism(e ecs.Entity) *components.Organism { return w.orgMap.Get(e) }

// Energy returns the organism's energy component.
func (w *World) Energy(e ecs.Entity) *components.Energy { return w.energyMap.Get(e) }

// Growth returns the organism's growth component.
func (w *World) Growth(e ecs.Entity) *components.Growth { return w.growthMap.Get(e) }

// Len returns the population size.
func (w *World) Len() int {
	return len(w.population)
}

// Snapshot returns a copy of the population in processing order.
func (w *World) Snapshot() []ecs.Entity {
	snap := make([]ecs.Entity, len(w.population))
	copy(snap, w.population)
	return snap
}

// OrganismAt returns the living organism on (x, y), if any.
func (w *World) OrganismAt(x, y int) (ecs.Entity, bool) {
	for _, e := range w.population {
		org := w.orgMap.Get(e)
		if !org.Alive {
			continue
		}
		pos := w.posMap.Get(e)
		if pos.X == x && pos.Y == y {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// OrganismsNear returns living organisms within Chebyshev distance radius of
// (x, y), excluding the centre cell, in population order.
// Radius 1 is the 8-neighbourhood.
func (w *World) OrganismsNear(x, y, radius int) []ecs.Entity {
	center := components.Position{X: x, Y: y}
	var near []ecs.Entity
	for _, e := range w.population {
		org := w.orgMap.Get(e)
		if !org.Alive {
			continue
		}
		d := w.posMap.Get(e).Chebyshev(center)
		if d > 0 && d <= radius {
			near = append(near, e)
		}
	}
	return near
}

// IsCellEmpty reports whether (x, y) is on the grid, holds no living
// organism, and is not the target of a birth staged this tick.
func (w *World) IsCellEmpty(x, y int, staged *Staging) bool {
	if !w.InBounds(x, y) {
		return false
	}
	if staged != nil && staged.Occupied(x, y) {
		return false
	}
	_, occupied := w.OrganismAt(x, y)
	return !occupied
}

// Apply reconciles a tick's staged mutations: every referenced organism is
// removed at most once, then additions are appended in staging order.
// Removing a handle that is already gone is a no-op. Returns the new entities.
func (w *World) Apply(additions []Newborn, removals []ecs.Entity, tick int32) []ecs.Entity {
	if len(removals) > 0 {
		gone := make(map[ecs.Entity]struct{}, len(removals))
		for _, e := range removals {
			if w.ecs.Alive(e) {
				gone[e] = struct{}{}
			}
		}

		kept := w.population[:0]
		for _, e := range w.population {
			if _, ok := gone[e]; !ok {
				kept = append(kept, e)
			}
		}
		w.population = kept

		for _, e := range removals {
			if _, ok := gone[e]; ok {
				w.ecs.RemoveEntity(e)
				delete(gone, e)
			}
		}
	}

	added := make([]ecs.Entity, 0, len(additions))
	for _, n := range additions {
		added = append(added, w.Spawn(n.Species, n.X, n.Y, components.Energy{Value: n.Energy, Max: n.MaxEnergy}, tick))
	}
	return added
}

// Counts returns the number of living organisms per species.
func (w *World) Counts() (counts [components.NumSpecies]int) {
	query := w.orgFilter.Query()
	for query.Next() {
		org := query.Get()
		if org.Alive {
			counts[org.Species]++
		}
	}
	return counts
}

// States returns value copies of all living organisms in population order.
func (w *World) States() []OrganismState {
	states := make([]OrganismState, 0, len(w.population))
	for _, e := range w.population {
		org := w.orgMap.Get(e)
		if !org.Alive {
			continue
		}
		pos := w.posMap.Get(e)
		states = append(states, OrganismState{
			ID:      org.ID,
			Species: org.Species,
			Name:    org.Species.String(),
			X:       pos.X,
			Y:       pos.Y,
			Energy:  w.energyMap.Get(e).Value,
		})
	}
	return states
}
