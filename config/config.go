// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Run        RunConfig        `yaml:"run"`
	Plant      PlantConfig      `yaml:"plant"`
	Herbivore  AnimalConfig     `yaml:"herbivore"`
	Carnivore  AnimalConfig     `yaml:"carnivore"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`
	Render     RenderConfig     `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid dimensions. They never change during a run.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds the initial organism counts.
type PopulationConfig struct {
	Plants     int `yaml:"plants"`
	Herbivores int `yaml:"herbivores"`
	Carnivores int `yaml:"carnivores"`
}

// Processing orders for organisms within a tick.
const (
	OrderPopulation = "population" // insertion order of the population
	OrderShuffled   = "shuffled"   // seeded shuffle of the population each tick
)

// RunConfig holds driver loop parameters.
type RunConfig struct {
	Ticks         int    `yaml:"ticks"`
	Seed          int64  `yaml:"seed"`
	Order         string `yaml:"order"`
	StopWhenEmpty bool   `yaml:"stop_when_empty"`
}

// PlantConfig holds plant growth parameters.
type PlantConfig struct {
	ReproductionChance float64 `yaml:"reproduction_chance"` // per attempt
	GrowthInterval     int     `yaml:"growth_interval"`     // ticks between attempts
}

// AnimalConfig holds the energy economics shared by herbivores and carnivores.
// All values are whole energy units per tick.
type AnimalConfig struct {
	InitialEnergy         int     `yaml:"initial_energy"`
	MaxEnergy             int     `yaml:"max_energy"` // 0 = uncapped
	EatGain               int     `yaml:"eat_gain"`
	UpkeepCost            int     `yaml:"upkeep_cost"` // charged on ticks without a meal
	ReproductionThreshold int     `yaml:"reproduction_threshold"`
	ReproductionChance    float64 `yaml:"reproduction_chance"`
	ReproductionCost      int     `yaml:"reproduction_cost"`
	ChildEnergy           int     `yaml:"child_energy"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	CrashDropPercent  float64 `yaml:"crash_drop_percent"`
	CrashMinDrop      int     `yaml:"crash_min_drop"`
	BoomMultiplier    float64 `yaml:"boom_multiplier"`
	BoomMinPopulation int     `yaml:"boom_min_population"`
	StableCVThreshold float64 `yaml:"stable_cv_threshold"`
	StableWindows     int     `yaml:"stable_windows"`
}

// RenderConfig holds observer display settings.
type RenderConfig struct {
	CellSize     int `yaml:"cell_size"` // pixels per grid cell (window)
	TargetFPS    int `yaml:"target_fps"`
	TickDelayMs  int `yaml:"tick_delay_ms"` // pause between ticks for visual runs
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Capacity     int // World.Width * World.Height
	InitialTotal int // sum of initial organism counts
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. It panics if they fail to parse,
// which only happens if defaults.yaml itself is broken.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ComputeDerived()

	return cfg, nil
}

// ComputeDerived recalculates values derived from the loaded config.
// Call it again after changing fields programmatically.
func (c *Config) ComputeDerived() {
	c.Derived.Capacity = c.World.Width * c.World.Height
	c.Derived.InitialTotal = c.Population.Plants + c.Population.Herbivores + c.Population.Carnivores
	if c.Run.Order == "" {
		c.Run.Order = OrderPopulation
	}
	if c.Plant.GrowthInterval == 0 {
		c.Plant.GrowthInterval = 1
	}
}

// Clone returns an independent copy. Config holds only value fields.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
