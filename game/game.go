// Package game runs the tick engine: it owns the world, the run rng and the
// telemetry, and drives organisms through snapshot, act and reconcile.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// ErrInvalidTickCount is returned by Run for a non-positive tick count.
var ErrInvalidTickCount = errors.New("tick count must be positive")

// Frame is a value copy of the world after a tick. Observers may keep it.
type Frame struct {
	Tick      int32
	Width     int
	Height    int
	Organisms []systems.OrganismState
	Counts    [components.NumSpecies]int
}

// Observer receives a frame after construction (tick 0) and after every tick.
type Observer interface {
	Observe(Frame)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Frame)

// Observe calls f.
func (f ObserverFunc) Observe(frame Frame) { f(frame) }

// Stopper is implemented by observers that can end a run early, such as a
// closed window.
type Stopper interface {
	Stopped() bool
}

// Options configures game initialization.
type Options struct {
	Config *config.Config // nil = embedded defaults
	Seed   int64          // 0 = use config run.seed

	Observer  Observer
	TickDelay time.Duration // pause after each tick, for visual runs

	LogStats      bool
	OutputDir     string
	StatsCallback func(telemetry.WindowStats) // called on every stats window flush
}

// Game holds the complete simulation state of one run.
type Game struct {
	cfg   *config.Config
	world *systems.World
	rules *systems.Rules

	rng     *rand.Rand
	rngSeed int64

	tick int32

	observer      Observer
	tickDelay     time.Duration
	stopWhenEmpty bool

	// Telemetry
	collector        *telemetry.Collector
	lifetimes        *telemetry.LifetimeTracker
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
}

// NewGameWithOptions validates the configuration, places the initial
// population and notifies the observer of the initial state.
func NewGameWithOptions(opts Options) (*Game, error) {
	var cfg *config.Config
	if opts.Config != nil {
		cfg = opts.Config.Clone()
	} else {
		cfg = config.Default()
	}
	cfg.ComputeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Run.Seed
	}

	g := &Game{
		cfg:           cfg,
		world:         systems.NewWorld(cfg.World.Width, cfg.World.Height),
		rules:         systems.NewRules(cfg),
		rng:           rand.New(rand.NewSource(seed)),
		rngSeed:       seed,
		observer:      opts.Observer,
		tickDelay:     opts.TickDelay,
		stopWhenEmpty: cfg.Run.StopWhenEmpty,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}

	if cfg.Telemetry.StatsWindow > 0 {
		g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.Capacity)
		g.lifetimes = telemetry.NewLifetimeTracker()
		g.bookmarkDetector = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	g.spawnInitialPopulation()
	g.notify()

	return g, nil
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 { return g.tick }

// Seed returns the seed of the run rng.
func (g *Game) Seed() int64 { return g.rngSeed }

// Config returns the validated configuration of the run.
func (g *Game) Config() *config.Config { return g.cfg }

// World returns the population store.
func (g *Game) World() *systems.World { return g.world }

// Counts returns the living organisms per species.
func (g *Game) Counts() [components.NumSpecies]int { return g.world.Counts() }

// Population returns the number of organisms in the world.
func (g *Game) Population() int { return g.world.Len() }

// Frame captures the current state.
func (g *Game) Frame() Frame {
	return Frame{
		Tick:      g.tick,
		Width:     g.world.Width,
		Height:    g.world.Height,
		Organisms: g.world.States(),
		Counts:    g.world.Counts(),
	}
}

// PerfStats returns timing statistics over the recent ticks.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

func (g *Game) notify() {
	if g.observer == nil {
		return
	}
	g.observer.Observe(g.Frame())
}

func (g *Game) stopped() bool {
	s, ok := g.observer.(Stopper)
	return ok && s.Stopped()
}

// Unload writes the final census and closes output files.
func (g *Game) Unload() {
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WritePopulation(g.world.States()); err != nil {
		slog.Error("failed to write population", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}
