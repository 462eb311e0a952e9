package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/game"
	"github.com/pthm-cable/ecosim/systems"
)

func testFrame() game.Frame {
	return game.Frame{
		Tick:   3,
		Width:  3,
		Height: 2,
		Organisms: []systems.OrganismState{
			{ID: 1, Species: components.SpeciesPlant, X: 0, Y: 0},
			{ID: 2, Species: components.SpeciesHerbivore, X: 2, Y: 0, Energy: 5},
			{ID: 3, Species: components.SpeciesCarnivore, X: 1, Y: 1, Energy: 9},
		},
		Counts: [components.NumSpecies]int{1, 1, 1},
	}
}

func TestSummary(t *testing.T) {
	got := Summary(testFrame())
	want := "Tick: 3, Plants: 1, Herbivores: 1, Carnivores: 1"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestGrid(t *testing.T) {
	grid := Grid(testFrame())

	want := []string{"*.h", ".C."}
	if len(grid) != len(want) {
		t.Fatalf("grid has %d rows, want %d", len(grid), len(want))
	}
	for y, row := range grid {
		if string(row) != want[y] {
			t.Errorf("row %d = %q, want %q", y, string(row), want[y])
		}
	}
}

func TestTerminal_ObserveWithoutInput(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminalWithScreen(screen)
	if err != nil {
		t.Fatalf("NewTerminalWithScreen: %v", err)
	}
	defer term.Close()
	screen.SetSize(40, 10)

	term.Observe(testFrame())
	if term.Stopped() {
		t.Fatal("terminal should not stop without input")
	}
}

func TestTerminal_CloseWithUndrainedEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminalWithScreen(screen)
	if err != nil {
		t.Fatalf("NewTerminalWithScreen: %v", err)
	}

	// Queue more events than the terminal buffers, without ever calling Stopped.
	deadline := time.Now().Add(time.Second)
	for posted := 0; posted < 200 && time.Now().Before(deadline); {
		if screen.PostEvent(tcell.NewEventInterrupt(nil)) == nil {
			posted++
		} else {
			time.Sleep(time.Millisecond)
		}
	}

	closed := make(chan struct{})
	go func() {
		term.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on a full event buffer")
	}

	term.Close()
	if !term.Stopped() {
		t.Error("closed terminal should report stopped")
	}
}

func TestPrinter(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).Observe(testFrame())

	want := "Tick: 3, Plants: 1, Herbivores: 1, Carnivores: 1\n" +
		"* . h\n" +
		". C .\n" +
		"======\n\n"
	if buf.String() != want {
		t.Errorf("Printer output =\n%s\nwant\n%s", buf.String(), want)
	}
}
