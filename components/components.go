// Package components defines ECS components for the simulation.
package components

// Species identifies which rule set an organism follows.
type Species uint8

const (
	SpeciesPlant Species = iota
	SpeciesHerbivore
	SpeciesCarnivore
)

// NumSpecies is the number of species variants.
const NumSpecies = 3

// AllSpecies lists every species in canonical order.
// Initial placement and per-species reporting follow this order.
func AllSpecies() [NumSpecies]Species {
	return [NumSpecies]Species{SpeciesPlant, SpeciesHerbivore, SpeciesCarnivore}
}

// String returns the lowercase species name.
func (s Species) String() string {
	switch s {
	case SpeciesPlant:
		return "plant"
	case SpeciesHerbivore:
		return "herbivore"
	case SpeciesCarnivore:
		return "carnivore"
	}
	return "unknown"
}

// Symbol returns the single-cell glyph used by text renderers.
func (s Species) Symbol() rune {
	switch s {
	case SpeciesPlant:
		return '*'
	case SpeciesHerbivore:
		return 'h'
	case SpeciesCarnivore:
		return 'C'
	}
	return '?'
}

// IsAnimal reports whether the species moves and tracks energy.
func (s Species) IsAnimal() bool {
	return s == SpeciesHerbivore || s == SpeciesCarnivore
}

// Prey returns the species this one eats. ok is false for plants.
func (s Species) Prey() (prey Species, ok bool) {
	switch s {
	case SpeciesHerbivore:
		return SpeciesPlant, true
	case SpeciesCarnivore:
		return SpeciesHerbivore, true
	}
	return 0, false
}
