package main

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/game"
	"github.com/pthm-cable/ecosim/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int
	workers     int

	mu           sync.Mutex
	lastQuality  float64 // quality from most recent Evaluate call
	lastSurvival float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 20,
	}
}

// SetWorkers caps the number of seeds simulated at once. Zero means no limit.
func (fe *FitnessEvaluator) SetWorkers(n int) {
	fe.workers = n
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastSurvival returns the mean survival ticks from the most recent evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival
}

// Minimum viable population: if an animal species stays below this for
// extinctionGraceTicks consecutive ticks, it counts as functionally extinct.
const (
	minViablePop         = 3
	extinctionGraceTicks = 50
	warmupTicks          = 10
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness  float64
	quality  float64
	survival float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// A parameter set that cannot build a valid world scores +Inf.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) (float64, error) {
	results := make([]seedResult, len(fe.seeds))

	g, ctx := errgroup.WithContext(ctx)
	if fe.workers > 0 {
		g.SetLimit(fe.workers)
	}
	for i, seed := range fe.seeds {
		g.Go(func() error {
			result, err := fe.runSimulation(ctx, x, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			quality := computeQuality(result.windowStats)
			results[i] = seedResult{
				fitness:  computeFitness(result.survivalTicks, quality),
				quality:  quality,
				survival: float64(result.survivalTicks),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return math.Inf(1), err
	}

	var totalFitness, totalQuality, totalSurvival float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		totalSurvival += r.survival
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.lastSurvival = totalSurvival / n
	fe.mu.Unlock()

	return totalFitness / n, nil
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, x []float64, seed int64) (*runResult, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Telemetry.StatsWindow = fe.statsWindow

	result := &runResult{}

	g, err := game.NewGameWithOptions(game.Options{
		Config: cfg,
		Seed:   seed,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	var herbBelow, carnBelow int32

	for g.Tick() < fe.maxTicks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.Step()

		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		counts := g.Counts()
		plants := counts[components.SpeciesPlant]
		herb := counts[components.SpeciesHerbivore]
		carn := counts[components.SpeciesCarnivore]

		// Hard extinction: any species completely gone
		if plants == 0 || herb == 0 || carn == 0 {
			result.survivalTicks = tick
			return result, nil
		}

		herbBelow = belowCount(herb, herbBelow)
		carnBelow = belowCount(carn, carnBelow)
		if herbBelow >= extinctionGraceTicks || carnBelow >= extinctionGraceTicks {
			result.survivalTicks = tick
			return result, nil
		}
	}

	result.survivalTicks = fe.maxTicks
	return result, nil
}

// belowCount advances the consecutive-ticks-below-viable counter.
func belowCount(count int, below int32) int32 {
	if count < minViablePop {
		return below + 1
	}
	return 0
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.30
	qualityWeightEnergy    = 0.20
	qualityWeightCover     = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows where an animal species < this

	targetHerbPerCarn = 4.0
	targetPlantCover  = 0.35 // plants / all organisms
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	valid := windows[qualityWarmupWindows:]

	var ratioSum, energySum, coverSum float64
	var count int

	herbCounts := make([]float64, 0, len(valid))
	carnCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Herbivores < qualityMinPop || w.Carnivores < qualityMinPop {
			continue
		}

		herbCounts = append(herbCounts, float64(w.Herbivores))
		carnCounts = append(carnCounts, float64(w.Carnivores))

		// 1. Population ratio score
		ratio := float64(w.Herbivores) / float64(w.Carnivores)
		logErr := math.Log(ratio / targetHerbPerCarn)
		ratioSum += math.Exp(-logErr * logErr)

		// 2. Energy health: median energy away from the starvation floor
		herbH := 1.0 - math.Exp(-w.HerbivoreEnergyP50/10.0)
		carnH := 1.0 - math.Exp(-w.CarnivoreEnergyP50/10.0)
		energySum += (herbH + carnH) / 2.0

		// 3. Plant cover
		if total := w.Total(); total > 0 {
			cover := float64(w.Plants) / float64(total)
			coverSum += math.Exp(-math.Pow((cover-targetPlantCover)/0.2, 2))
		}
		count++
	}

	if count == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(herbCounts) >= 2 {
		cvHerb := cv(herbCounts)
		cvCarn := cv(carnCounts)
		stabilityScore = math.Exp(-(cvHerb*cvHerb + cvCarn*cvCarn))
	}

	n := float64(count)
	quality := qualityWeightRatio*ratioSum/n +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightCover*coverSum/n

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
