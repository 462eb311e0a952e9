package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
)

// Newborn is an organism staged for addition. It is not owned by the world
// and cannot act or be eaten until reconciliation materializes it.
type Newborn struct {
	Species   components.Species
	X, Y      int
	Energy    int
	MaxEnergy int
	ParentID  uint32
}

// Staging holds a tick's deferred mutations. The tick engine creates one per
// tick and discards it after reconciliation.
type Staging struct {
	additions []Newborn
	removals  []ecs.Entity
	removed   map[ecs.Entity]struct{}
}

// NewStaging creates empty staging buffers.
func NewStaging() *Staging {
	return &Staging{removed: make(map[ecs.Entity]struct{})}
}

// Add stages a birth. Callers must have checked the cell with IsCellEmpty.
func (s *Staging) Add(n Newborn) {
	s.additions = append(s.additions, n)
}

// Remove stages an organism's removal and clears its Alive flag at once, so
// no later actor in the tick treats it as prey or as an occupant.
// Returns false if the organism was already staged.
func (s *Staging) Remove(w *World, e ecs.Entity) bool {
	if _, dup := s.removed[e]; dup {
		return false
	}
	s.removed[e] = struct{}{}
	s.removals = append(s.removals, e)
	if w.Exists(e) {
		w.Organism(e).Alive = false
	}
	return true
}

// Occupied reports whether a birth is staged on (x, y).
func (s *Staging) Occupied(x, y int) bool {
	for i := range s.additions {
		if s.additions[i].X == x && s.additions[i].Y == y {
			return true
		}
	}
	return false
}

// Additions returns the staged births in staging order.
func (s *Staging) Additions() []Newborn { return s.additions }

// Removals returns the staged removals in staging order.
func (s *Staging) Removals() []ecs.Entity { return s.removals }
