package components

// Organism bundles identity, species and liveness.
// Alive is cleared the moment the organism is staged for removal, so later
// actors in the same tick no longer see it as prey or as an occupant.
type Organism struct {
	ID        uint32
	Species   Species
	Alive     bool
	BirthTick int32
}

// Energy tracks an animal's metabolic reserve in whole units.
// Plants carry a zero Energy component.
type Energy struct {
	Value int
	Max   int // 0 = uncapped
}

// Add increases energy by gain, clamped to Max when Max > 0.
// Returns the amount actually gained.
func (e *Energy) Add(gain int) int {
	before := e.Value
	e.Value += gain
	if e.Max > 0 && e.Value > e.Max {
		e.Value = e.Max
	}
	return e.Value - before
}

// Depleted reports whether the organism has starved.
func (e *Energy) Depleted() bool {
	return e.Value <= 0
}

// Growth counts ticks since a plant last reproduced.
type Growth struct {
	Counter int
}
