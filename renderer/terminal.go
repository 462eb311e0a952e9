// Package renderer provides observers that draw simulation frames: a
// terminal grid and a raylib window.
package renderer

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/game"
)

// EmptySymbol marks a cell with no living organism.
const EmptySymbol = '.'

// Summary returns the per-tick population line.
func Summary(f game.Frame) string {
	return fmt.Sprintf("Tick: %d, Plants: %d, Herbivores: %d, Carnivores: %d",
		f.Tick,
		f.Counts[components.SpeciesPlant],
		f.Counts[components.SpeciesHerbivore],
		f.Counts[components.SpeciesCarnivore],
	)
}

// Grid lays a frame out as rows of species glyphs.
func Grid(f game.Frame) [][]rune {
	grid := make([][]rune, f.Height)
	for y := range grid {
		row := make([]rune, f.Width)
		for x := range row {
			row[x] = EmptySymbol
		}
		grid[y] = row
	}
	for _, o := range f.Organisms {
		grid[o.Y][o.X] = o.Species.Symbol()
	}
	return grid
}

// Terminal draws frames to a tcell screen. Esc, Ctrl-C or q stop the run.
type Terminal struct {
	screen tcell.Screen
	styles [components.NumSpecies]tcell.Style
	events chan tcell.Event
	closed bool

	done      chan struct{} // closed by Close; releases the event reader
	exited    chan struct{} // closed when the event reader returns
	closeOnce sync.Once
}

// NewTerminal opens the user's terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewTerminalWithScreen(screen)
}

// NewTerminalWithScreen initializes the given screen and starts reading its
// events.
func NewTerminalWithScreen(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 100),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	t.styles[components.SpeciesPlant] = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	t.styles[components.SpeciesHerbivore] = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	t.styles[components.SpeciesCarnivore] = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	go func() {
		defer close(t.exited)
		defer close(t.events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case t.events <- ev:
			case <-t.done:
				return
			}
		}
	}()

	return t, nil
}

// Observe draws the frame: summary line, then the grid with one blank column
// between cells.
func (t *Terminal) Observe(f game.Frame) {
	t.screen.Clear()

	drawText(t.screen, 0, 0, Summary(f), tcell.StyleDefault)

	species := make(map[components.Position]components.Species, len(f.Organisms))
	for _, o := range f.Organisms {
		species[components.Position{X: o.X, Y: o.Y}] = o.Species
	}

	grid := Grid(f)
	for y, row := range grid {
		for x, r := range row {
			style := tcell.StyleDefault.Foreground(tcell.ColorGray)
			if s, ok := species[components.Position{X: x, Y: y}]; ok {
				style = t.styles[s]
			}
			t.screen.SetContent(x*2, y+2, r, nil, style)
		}
	}

	t.screen.Show()
}

// Stopped drains pending input and reports whether the user asked to quit.
func (t *Terminal) Stopped() bool {
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.closed = true
				return true
			}
			if key, isKey := ev.(*tcell.EventKey); isKey && isQuitKey(key) {
				t.closed = true
			}
		default:
			return t.closed
		}
	}
}

// Close restores the terminal and waits for the event reader to exit.
// It is safe to call more than once.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.screen.Fini()
		<-t.exited
	})
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
