package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Validate checks every field a run depends on and returns all problems joined.
// A nil result means the simulation can be constructed and run.
func (c *Config) Validate() error {
	var errs []error

	if c.World.Width <= 0 {
		errs = append(errs, invalid("world.width must be > 0, got %d", c.World.Width))
	}
	if c.World.Height <= 0 {
		errs = append(errs, invalid("world.height must be > 0, got %d", c.World.Height))
	}

	counts := []struct {
		key string
		n   int
	}{
		{"population.plants", c.Population.Plants},
		{"population.herbivores", c.Population.Herbivores},
		{"population.carnivores", c.Population.Carnivores},
	}
	negative := false
	for _, ct := range counts {
		if ct.n < 0 {
			errs = append(errs, invalid("%s must be >= 0, got %d", ct.key, ct.n))
			negative = true
		}
	}

	capacity := c.World.Width * c.World.Height
	total := c.Population.Plants + c.Population.Herbivores + c.Population.Carnivores
	if !negative && c.World.Width > 0 && c.World.Height > 0 && total > capacity {
		errs = append(errs, invalid("total organisms (%d) exceed grid capacity (%d)", total, capacity))
	}

	if c.Run.Ticks <= 0 {
		errs = append(errs, invalid("run.ticks must be > 0, got %d", c.Run.Ticks))
	}
	switch c.Run.Order {
	case OrderPopulation, OrderShuffled, "":
	default:
		errs = append(errs, invalid("run.order must be %q or %q, got %q", OrderPopulation, OrderShuffled, c.Run.Order))
	}

	if err := checkChance("plant.reproduction_chance", c.Plant.ReproductionChance); err != nil {
		errs = append(errs, err)
	}
	if c.Plant.GrowthInterval < 0 {
		errs = append(errs, invalid("plant.growth_interval must be >= 0, got %d", c.Plant.GrowthInterval))
	}

	errs = append(errs, c.Herbivore.validate("herbivore")...)
	errs = append(errs, c.Carnivore.validate("carnivore")...)

	if c.Telemetry.StatsWindow < 0 {
		errs = append(errs, invalid("telemetry.stats_window must be >= 0, got %d", c.Telemetry.StatsWindow))
	}

	return errors.Join(errs...)
}

func (a *AnimalConfig) validate(prefix string) []error {
	var errs []error

	nonNegative := []struct {
		key string
		v   int
	}{
		{"max_energy", a.MaxEnergy},
		{"eat_gain", a.EatGain},
		{"upkeep_cost", a.UpkeepCost},
		{"reproduction_threshold", a.ReproductionThreshold},
		{"reproduction_cost", a.ReproductionCost},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			errs = append(errs, invalid("%s.%s must be >= 0, got %d", prefix, f.key, f.v))
		}
	}
	if a.InitialEnergy <= 0 {
		errs = append(errs, invalid("%s.initial_energy must be > 0, got %d", prefix, a.InitialEnergy))
	}
	if a.ChildEnergy <= 0 {
		errs = append(errs, invalid("%s.child_energy must be > 0, got %d", prefix, a.ChildEnergy))
	}
	if a.MaxEnergy > 0 && a.InitialEnergy > a.MaxEnergy {
		errs = append(errs, invalid("%s.initial_energy (%d) exceeds max_energy (%d)", prefix, a.InitialEnergy, a.MaxEnergy))
	}
	if err := checkChance(prefix+".reproduction_chance", a.ReproductionChance); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func checkChance(key string, p float64) error {
	if p < 0 || p > 1 {
		return invalid("%s must be within [0, 1], got %v", key, p)
	}
	return nil
}
