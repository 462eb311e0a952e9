package renderer

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/game"
)

const (
	panelWidth = 260
	hudHeight  = 40
)

var speciesColors = [components.NumSpecies]rl.Color{
	components.SpeciesPlant:     rl.DarkGreen,
	components.SpeciesHerbivore: rl.Gold,
	components.SpeciesCarnivore: rl.Maroon,
}

// Window draws frames in a raylib window with pause, step and speed
// controls. It paces the run itself: Observe returns once the tick delay has
// elapsed, or when Step is pressed while paused.
type Window struct {
	cfg      config.RenderConfig
	frame    game.Frame
	delayMs  float32
	paused   bool
	stepOnce bool
	closed   bool
}

// NewWindow opens the window. Call Close when done.
func NewWindow(cfg config.RenderConfig, title string) *Window {
	rl.InitWindow(int32(cfg.ScreenWidth), int32(cfg.ScreenHeight), title)
	rl.SetTargetFPS(int32(cfg.TargetFPS))
	return &Window{
		cfg:     cfg,
		delayMs: float32(cfg.TickDelayMs),
	}
}

// Observe shows the frame and blocks until the next tick is due.
func (w *Window) Observe(f game.Frame) {
	w.frame = f
	start := time.Now()
	for !w.closed {
		w.draw()
		if rl.WindowShouldClose() {
			w.closed = true
			return
		}
		if w.stepOnce {
			w.stepOnce = false
			return
		}
		if !w.paused && time.Since(start) >= time.Duration(w.delayMs)*time.Millisecond {
			return
		}
	}
}

// Stopped reports whether the window was closed.
func (w *Window) Stopped() bool {
	return w.closed
}

// Hold keeps showing the last frame until the window is closed.
func (w *Window) Hold() {
	w.paused = true
	for !w.closed {
		w.draw()
		if rl.WindowShouldClose() {
			w.closed = true
		}
	}
}

// Close closes the window.
func (w *Window) Close() {
	rl.CloseWindow()
}

func (w *Window) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	rl.DrawText(Summary(w.frame), 10, 10, 20, rl.DarkGray)
	w.drawGrid()
	w.drawControls()

	rl.EndDrawing()
}

func (w *Window) cellSize() int32 {
	cs := int32(w.cfg.CellSize)
	if w.frame.Width == 0 || w.frame.Height == 0 {
		return cs
	}
	// Shrink cells so large grids still fit beside the panel.
	fitW := int32(w.cfg.ScreenWidth-panelWidth-20) / int32(w.frame.Width)
	fitH := int32(w.cfg.ScreenHeight-hudHeight-10) / int32(w.frame.Height)
	if fitW < cs {
		cs = fitW
	}
	if fitH < cs {
		cs = fitH
	}
	if cs < 2 {
		cs = 2
	}
	return cs
}

func (w *Window) drawGrid() {
	cs := w.cellSize()
	ox, oy := int32(10), int32(hudHeight)

	rl.DrawRectangle(ox, oy, cs*int32(w.frame.Width), cs*int32(w.frame.Height), rl.LightGray)
	for _, o := range w.frame.Organisms {
		x := ox + int32(o.X)*cs
		y := oy + int32(o.Y)*cs
		rl.DrawRectangle(x+1, y+1, cs-2, cs-2, speciesColors[o.Species])
	}
}

func (w *Window) drawControls() {
	panelX := float32(w.cfg.ScreenWidth - panelWidth)
	panelY := float32(hudHeight)

	rl.DrawText("Controls", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 110, Height: 30}, toggleText(w.paused, "Resume", "Pause")) {
		w.paused = !w.paused
	}
	if w.paused && gui.Button(rl.Rectangle{X: panelX + 120, Y: panelY, Width: 110, Height: 30}, "Step") {
		w.stepOnce = true
	}
	panelY += 45

	rl.DrawText("Tick delay (ms)", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	w.delayMs = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
		"0", "1000",
		w.delayMs, 0, 1000,
	)
	rl.DrawText(fmt.Sprintf("%.0f", w.delayMs), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
	panelY += 40

	for _, s := range components.AllSpecies() {
		rl.DrawRectangle(int32(panelX), int32(panelY), 16, 16, speciesColors[s])
		rl.DrawText(fmt.Sprintf("%s: %d", s, w.frame.Counts[s]), int32(panelX+24), int32(panelY), 16, rl.DarkGray)
		panelY += 24
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
