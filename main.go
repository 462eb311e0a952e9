package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/game"
	"github.com/pthm-cable/ecosim/renderer"
)

// Render modes.
const (
	renderNone     = "none"
	renderPrint    = "print"
	renderTerminal = "terminal"
	renderWindow   = "window"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config run.seed)")
	ticks := flag.Int("ticks", 0, "Number of ticks to run (0 = use config run.ticks)")
	render := flag.String("render", renderPrint, "Observer: none, print, terminal or window")
	order := flag.String("order", "", "Processing order: population or shuffled (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logFormat := flag.String("log-format", "json", "Log format: json or text")

	flag.Parse()

	setupLogging(*logFormat, *render)

	if err := run(*configPath, *seed, *ticks, *render, *order, *outputDir, *logStats); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// setupLogging installs the default slog handler. Interactive renderers own
// stdout, so logs go to stderr for them.
func setupLogging(format, render string) {
	out := os.Stdout
	if render == renderTerminal || render == renderPrint {
		out = os.Stderr
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(out, nil)
	} else {
		handler = slog.NewJSONHandler(out, nil)
	}
	slog.SetDefault(slog.New(handler))
}

// applyOverrides copies non-empty flag values onto cfg and validates the
// result, so a bad -ticks or -order fails before any observer opens.
func applyOverrides(cfg *config.Config, ticks int, order string) error {
	if ticks != 0 {
		cfg.Run.Ticks = ticks
	}
	if order != "" {
		cfg.Run.Order = order
	}
	cfg.ComputeDerived()
	return cfg.Validate()
}

func run(configPath string, seed int64, ticks int, render, order, outputDir string, logStats bool) error {
	// Initialize config before anything else
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	if err := applyOverrides(cfg, ticks, order); err != nil {
		return err
	}

	opts := game.Options{
		Config:    cfg,
		Seed:      seed,
		LogStats:  logStats,
		OutputDir: outputDir,
	}

	// hold keeps the final frame on screen after the run
	var hold func()

	switch render {
	case renderNone:
	case renderPrint:
		opts.Observer = renderer.NewPrinter(os.Stdout)
		opts.TickDelay = time.Duration(cfg.Render.TickDelayMs) * time.Millisecond
	case renderTerminal:
		term, err := renderer.NewTerminal()
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		defer term.Close()
		opts.Observer = term
		opts.TickDelay = time.Duration(cfg.Render.TickDelayMs) * time.Millisecond
	case renderWindow:
		win := renderer.NewWindow(cfg.Render, "Ecosystem")
		defer win.Close()
		opts.Observer = win
		hold = win.Hold
	default:
		return fmt.Errorf("unknown render mode %q", render)
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting simulation",
		"seed", g.Seed(),
		"ticks", cfg.Run.Ticks,
		"width", cfg.World.Width,
		"height", cfg.World.Height,
		"order", cfg.Run.Order,
		"render", render,
	)

	if err := g.Run(cfg.Run.Ticks); err != nil {
		return err
	}
	if hold != nil {
		hold()
	}
	return nil
}
