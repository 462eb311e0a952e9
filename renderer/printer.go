package renderer

import (
	"bufio"
	"io"
	"strings"

	"github.com/pthm-cable/ecosim/game"
)

// Printer writes each frame as plain text: the summary line, the grid, and
// a separator rule.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Observe prints the frame. Write errors are ignored; the run continues.
func (p *Printer) Observe(f game.Frame) {
	bw := bufio.NewWriter(p.w)
	bw.WriteString(Summary(f))
	bw.WriteByte('\n')
	for _, row := range Grid(f) {
		for x, r := range row {
			if x > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteRune(r)
		}
		bw.WriteByte('\n')
	}
	bw.WriteString(strings.Repeat("=", f.Width*2))
	bw.WriteString("\n\n")
	bw.Flush()
}
