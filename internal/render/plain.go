package render

import (
	"fmt"
	"io"

	"github.com/rshade/salesboard/internal/kpi"
)

// plainBarCells is the progress bar width for plain output.
const plainBarCells = 20

// Plain renders cards as unstyled text blocks for CI logs and pipes.
type Plain struct{}

// Render writes one block per built card in row-major order.
func (p *Plain) Render(w io.Writer, slots []kpi.Slot, columns int) error {
	if columns <= 0 {
		return fmt.Errorf("%w: got %d", kpi.ErrInvalidColumnCount, columns)
	}

	first := true
	for _, row := range collect(slots).Rows() {
		for _, s := range row {
			if !first {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			first = false
			if err := writePlainCard(w, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePlainCard(w io.Writer, s kpi.Slot) error {
	c := s.Card
	label := c.Label
	if c.Icon != "" {
		label = c.Icon + " " + label
	}

	if _, err := fmt.Fprintf(w, "[%d,%d] %s: %s\n", s.Row, s.Column, label, c.Value); err != nil {
		return err
	}
	if c.Change != nil {
		line := "  change: " + c.Change.Text
		if c.Previous != "" {
			line += " vs " + c.Previous
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if c.Progress != nil {
		if _, err := fmt.Fprintf(w, "  progress: %s %s of %s (%s)\n",
			ProgressBar(c.Progress.DisplayRatio, plainBarCells),
			c.Progress.RatioText,
			c.Progress.TargetText,
			c.Progress.Status); err != nil {
			return err
		}
	}
	if c.HasTrend() {
		if _, err := fmt.Fprintf(w, "  trend: %s\n", Sparkline(c.Trend, 0)); err != nil {
			return err
		}
	}
	if c.Caption != "" {
		if _, err := fmt.Fprintf(w, "  %s\n", c.Caption); err != nil {
			return err
		}
	}
	return nil
}
