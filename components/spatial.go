package components

// Position is an organism's grid cell.
type Position struct {
	X, Y int
}

// Chebyshev returns the king-move distance between two cells.
func (p Position) Chebyshev(o Position) int {
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
