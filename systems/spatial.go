package systems

import (
	"math/rand"

	"github.com/pthm-cable/ecosim/components"
)

// neighbourOffsets is the Moore neighbourhood in canonical order.
var neighbourOffsets = [8]components.Position{
	{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1},
	{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: 1, Y: 1},
}

// ShuffledOffsets returns the 8 neighbour offsets in a random order drawn
// from rng.
func ShuffledOffsets(rng *rand.Rand) [8]components.Position {
	offsets := neighbourOffsets
	rng.Shuffle(len(offsets), func(i, j int) {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	})
	return offsets
}

// Neighbours returns the in-bounds cells around (x, y) in shuffled order.
// Off-grid cells are dropped, never wrapped.
func (w *World) Neighbours(x, y int, rng *rand.Rand) []components.Position {
	offsets := ShuffledOffsets(rng)
	cells := make([]components.Position, 0, len(offsets))
	for _, o := range offsets {
		nx, ny := x+o.X, y+o.Y
		if w.InBounds(nx, ny) {
			cells = append(cells, components.Position{X: nx, Y: ny})
		}
	}
	return cells
}

// FirstEmptyNeighbour shuffles the neighbourhood of pos and returns the first
// empty cell, taking staged births into account.
func (t *Tick) FirstEmptyNeighbour(pos components.Position) (components.Position, bool) {
	for _, cell := range t.World.Neighbours(pos.X, pos.Y, t.Rng) {
		if t.World.IsCellEmpty(cell.X, cell.Y, t.Staged) {
			return cell, true
		}
	}
	return components.Position{}, false
}
