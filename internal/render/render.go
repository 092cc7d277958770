// Package render turns laid-out card descriptors into terminal, plain-text
// or JSON output. It never formats numbers; every value it prints comes
// pre-formatted from the kpi package.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/rshade/salesboard/internal/kpi"
	"github.com/rshade/salesboard/internal/palette"
)

// Output formats accepted by New.
const (
	OutputTable = "table"
	OutputPlain = "plain"
	OutputJSON  = "json"
)

const (
	defaultWidth = 100
	maxPercent   = 100.0
)

// Renderer writes a grid of slots.
type Renderer interface {
	Render(w io.Writer, slots []kpi.Slot, columns int) error
}

// New returns the renderer for an output format. "table" picks the styled
// renderer for terminals and falls back to plain text for pipes and files.
func New(output string, w io.Writer, p palette.Palette) (Renderer, error) {
	switch strings.ToLower(output) {
	case "", OutputTable:
		return ForWriter(w, p), nil
	case OutputPlain:
		return &Plain{}, nil
	case OutputJSON:
		return &JSON{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want table, plain or json)", output)
	}
}

// ForWriter returns a Terminal renderer sized to w when w is a TTY, and a
// Plain renderer otherwise.
func ForWriter(w io.Writer, p palette.Palette) Renderer {
	if isWriterTerminal(w) {
		return NewTerminal(p, terminalWidth(w))
	}
	return &Plain{}
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
	}
	return false
}

// terminalWidth returns the width of w, or defaultWidth when it is unknown.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 { //nolint:gosec // fd fits in int
			return width
		}
	}
	return defaultWidth
}

// Grid collects placed slots into rows. It implements kpi.Sink.
type Grid struct {
	rows [][]kpi.Slot
}

// Place appends s to its row.
func (g *Grid) Place(s kpi.Slot) {
	for len(g.rows) <= s.Row {
		g.rows = append(g.rows, nil)
	}
	g.rows[s.Row] = append(g.rows[s.Row], s)
}

// Rows returns the collected rows. Rows whose every card failed are empty.
func (g *Grid) Rows() [][]kpi.Slot {
	return g.rows
}

func collect(slots []kpi.Slot) *Grid {
	g := &Grid{}
	kpi.Dispatch(slots, g)
	return g
}
