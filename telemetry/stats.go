package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population counts at window end
	Plants     int     `csv:"plants"`
	Herbivores int     `csv:"herbivores"`
	Carnivores int     `csv:"carnivores"`
	Occupancy  float64 `csv:"occupancy"` // living organisms / grid cells

	// Events during window
	PlantBirths       int `csv:"plant_births"`
	HerbivoreBirths   int `csv:"herbivore_births"`
	CarnivoreBirths   int `csv:"carnivore_births"`
	PlantsEaten       int `csv:"plants_eaten"`
	HerbivoresEaten   int `csv:"herbivores_eaten"`
	HerbivoresStarved int `csv:"herbivores_starved"`
	CarnivoresStarved int `csv:"carnivores_starved"`

	// Energy distribution (sampled at window end)
	HerbivoreEnergyMean float64 `csv:"herbivore_energy_mean"`
	HerbivoreEnergyStd  float64 `csv:"herbivore_energy_std"`
	HerbivoreEnergyP10  float64 `csv:"herbivore_energy_p10"`
	HerbivoreEnergyP50  float64 `csv:"herbivore_energy_p50"`
	HerbivoreEnergyP90  float64 `csv:"herbivore_energy_p90"`

	CarnivoreEnergyMean float64 `csv:"carnivore_energy_mean"`
	CarnivoreEnergyStd  float64 `csv:"carnivore_energy_std"`
	CarnivoreEnergyP10  float64 `csv:"carnivore_energy_p10"`
	CarnivoreEnergyP50  float64 `csv:"carnivore_energy_p50"`
	CarnivoreEnergyP90  float64 `csv:"carnivore_energy_p90"`

	// Means over organisms that died during the window
	PlantLifespan      float64 `csv:"plant_lifespan"` // ticks
	HerbivoreLifespan  float64 `csv:"herbivore_lifespan"`
	CarnivoreLifespan  float64 `csv:"carnivore_lifespan"`
	HerbivoreOffspring float64 `csv:"herbivore_offspring"`
	CarnivoreOffspring float64 `csv:"carnivore_offspring"`
	HerbivoreMeals     float64 `csv:"herbivore_meals"`
	CarnivoreMeals     float64 `csv:"carnivore_meals"`
}

// Total returns the living population at window end.
func (s WindowStats) Total() int {
	return s.Plants + s.Herbivores + s.Carnivores
}

// EnergyStats summarizes an energy sample.
type EnergyStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeEnergyStats calculates mean, population std and empirical
// percentiles. Returns zeros for an empty sample.
func ComputeEnergyStats(values []float64) EnergyStats {
	if len(values) == 0 {
		return EnergyStats{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return EnergyStats{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("plants", s.Plants),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Float64("occupancy", s.Occupancy),
		slog.Int("plant_births", s.PlantBirths),
		slog.Int("herbivore_births", s.HerbivoreBirths),
		slog.Int("carnivore_births", s.CarnivoreBirths),
		slog.Int("plants_eaten", s.PlantsEaten),
		slog.Int("herbivores_eaten", s.HerbivoresEaten),
		slog.Int("herbivores_starved", s.HerbivoresStarved),
		slog.Int("carnivores_starved", s.CarnivoresStarved),
		slog.Float64("herbivore_energy_mean", s.HerbivoreEnergyMean),
		slog.Float64("herbivore_energy_p50", s.HerbivoreEnergyP50),
		slog.Float64("carnivore_energy_mean", s.CarnivoreEnergyMean),
		slog.Float64("carnivore_energy_p50", s.CarnivoreEnergyP50),
		slog.Float64("herbivore_lifespan", s.HerbivoreLifespan),
		slog.Float64("carnivore_lifespan", s.CarnivoreLifespan),
		slog.Float64("herbivore_meals", s.HerbivoreMeals),
		slog.Float64("carnivore_meals", s.CarnivoreMeals),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"plants", s.Plants,
		"herbivores", s.Herbivores,
		"carnivores", s.Carnivores,
		"occupancy", s.Occupancy,
		"plant_births", s.PlantBirths,
		"herbivore_births", s.HerbivoreBirths,
		"carnivore_births", s.CarnivoreBirths,
		"plants_eaten", s.PlantsEaten,
		"herbivores_eaten", s.HerbivoresEaten,
		"herbivores_starved", s.HerbivoresStarved,
		"carnivores_starved", s.CarnivoresStarved,
		"herbivore_energy_mean", s.HerbivoreEnergyMean,
		"herbivore_energy_std", s.HerbivoreEnergyStd,
		"carnivore_energy_mean", s.CarnivoreEnergyMean,
		"carnivore_energy_std", s.CarnivoreEnergyStd,
		"herbivore_lifespan", s.HerbivoreLifespan,
		"carnivore_lifespan", s.CarnivoreLifespan,
		"herbivore_meals", s.HerbivoreMeals,
		"carnivore_meals", s.CarnivoreMeals,
	)
}
