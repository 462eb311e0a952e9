package systems

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// Feed credits a meal and returns the energy actually gained.
func Feed(energy *components.Energy, rules *config.AnimalConfig) int {
	return energy.Add(rules.EatGain)
}

// PayUpkeep charges the per-tick cost of an animal that did not eat.
func PayUpkeep(energy *components.Energy, rules *config.AnimalConfig) {
	energy.Value -= rules.UpkeepCost
}
