// Package main provides CMA-ES optimization for ecosystem species constants.
package main

import (
	"math"

	"github.com/pthm-cable/ecosim/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // rounded when applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Plants
			{Name: "plant_repro_chance", Path: "plant.reproduction_chance", Min: 0.02, Max: 0.5, Default: 0.10},
			// Herbivores
			{Name: "herb_eat_gain", Path: "herbivore.eat_gain", Min: 2, Max: 30, Default: 10, Integer: true},
			{Name: "herb_upkeep", Path: "herbivore.upkeep_cost", Min: 1, Max: 5, Default: 1, Integer: true},
			{Name: "herb_repro_thresh", Path: "herbivore.reproduction_threshold", Min: 5, Max: 60, Default: 20, Integer: true},
			{Name: "herb_repro_chance", Path: "herbivore.reproduction_chance", Min: 0.02, Max: 0.6, Default: 0.15},
			{Name: "herb_repro_cost", Path: "herbivore.reproduction_cost", Min: 1, Max: 30, Default: 8, Integer: true},
			{Name: "herb_child_energy", Path: "herbivore.child_energy", Min: 1, Max: 30, Default: 10, Integer: true},
			// Carnivores
			{Name: "carn_eat_gain", Path: "carnivore.eat_gain", Min: 2, Max: 40, Default: 15, Integer: true},
			{Name: "carn_upkeep", Path: "carnivore.upkeep_cost", Min: 1, Max: 6, Default: 2, Integer: true},
			{Name: "carn_repro_thresh", Path: "carnivore.reproduction_threshold", Min: 10, Max: 90, Default: 40, Integer: true},
			{Name: "carn_repro_chance", Path: "carnivore.reproduction_chance", Min: 0.02, Max: 0.6, Default: 0.10},
			{Name: "carn_repro_cost", Path: "carnivore.reproduction_cost", Min: 1, Max: 40, Default: 20, Integer: true},
			{Name: "carn_child_energy", Path: "carnivore.child_energy", Min: 1, Max: 40, Default: 20, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Plant.ReproductionChance = c[0]

	cfg.Herbivore.EatGain = int(c[1])
	cfg.Herbivore.UpkeepCost = int(c[2])
	cfg.Herbivore.ReproductionThreshold = int(c[3])
	cfg.Herbivore.ReproductionChance = c[4]
	cfg.Herbivore.ReproductionCost = int(c[5])
	cfg.Herbivore.ChildEnergy = int(c[6])

	cfg.Carnivore.EatGain = int(c[7])
	cfg.Carnivore.UpkeepCost = int(c[8])
	cfg.Carnivore.ReproductionThreshold = int(c[9])
	cfg.Carnivore.ReproductionChance = c[10]
	cfg.Carnivore.ReproductionCost = int(c[11])
	cfg.Carnivore.ChildEnergy = int(c[12])

	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Plant.ReproductionChance,
		float64(cfg.Herbivore.EatGain),
		float64(cfg.Herbivore.UpkeepCost),
		float64(cfg.Herbivore.ReproductionThreshold),
		cfg.Herbivore.ReproductionChance,
		float64(cfg.Herbivore.ReproductionCost),
		float64(cfg.Herbivore.ChildEnergy),
		float64(cfg.Carnivore.EatGain),
		float64(cfg.Carnivore.UpkeepCost),
		float64(cfg.Carnivore.ReproductionThreshold),
		cfg.Carnivore.ReproductionChance,
		float64(cfg.Carnivore.ReproductionCost),
		float64(cfg.Carnivore.ChildEnergy),
	}
}
