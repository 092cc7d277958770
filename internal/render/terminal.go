package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/salesboard/internal/kpi"
	"github.com/rshade/salesboard/internal/palette"
)

// Card layout constants.
const (
	minCardWidth     = 22
	cardGap          = 1
	cardChromeWidth  = 4 // Border and horizontal padding.
	progressBarCells = 12
	minBarCells      = 4
	percentLabelPad  = 8
)

// Terminal renders cards as rounded lipgloss boxes, one row per grid row.
type Terminal struct {
	palette palette.Palette
	width   int
}

// NewTerminal returns a Terminal renderer for the given total width.
func NewTerminal(p palette.Palette, width int) *Terminal {
	if width <= 0 {
		width = defaultWidth
	}
	return &Terminal{palette: p, width: width}
}

// Render writes every successfully built slot. Failed slots are left out.
func (t *Terminal) Render(w io.Writer, slots []kpi.Slot, columns int) error {
	if columns <= 0 {
		return fmt.Errorf("%w: got %d", kpi.ErrInvalidColumnCount, columns)
	}

	cardWidth := t.CardWidth(columns)
	gap := strings.Repeat(" ", cardGap)

	var lines []string
	for _, row := range collect(slots).Rows() {
		if len(row) == 0 {
			continue
		}
		boxes := make([]string, 0, len(row)*2)
		for i, s := range row {
			if i > 0 {
				boxes = append(boxes, gap)
			}
			boxes = append(boxes, t.RenderCard(s.Card, cardWidth))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}

	if len(lines) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// CardWidth splits the terminal width across columns, never below minCardWidth.
func (t *Terminal) CardWidth(columns int) int {
	if columns <= 0 {
		columns = 1
	}
	width := (t.width - cardGap*(columns-1)) / columns
	if width < minCardWidth {
		return minCardWidth
	}
	return width
}

// RenderCard renders one card box of the given outer width.
func (t *Terminal) RenderCard(card kpi.CardDescriptor, width int) string {
	inner := width - cardChromeWidth
	if inner < 1 {
		inner = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.palette.Color(palette.TextSecondary))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(card.Color)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.palette.Color(palette.TextTertiary))

	label := card.Label
	if card.Icon != "" {
		label = card.Icon + " " + label
	}

	parts := []string{
		labelStyle.Render(truncate(label, inner)),
		valueStyle.Render(card.Value),
	}

	if card.Change != nil {
		changeStyle := lipgloss.NewStyle().Foreground(t.palette.Color(card.Change.Role))
		line := changeStyle.Render(card.Change.Text)
		if card.Previous != "" {
			line += mutedStyle.Render(" vs " + card.Previous)
		}
		parts = append(parts, line)
	}

	if card.Progress != nil {
		parts = append(parts, t.renderProgress(card.Progress, inner))
	}

	if card.HasTrend() {
		sparkStyle := lipgloss.NewStyle().Foreground(t.palette.Color(palette.Primary))
		parts = append(parts, sparkStyle.Render(Sparkline(card.Trend, inner)))
	}

	if card.Caption != "" {
		parts = append(parts, mutedStyle.Italic(true).Render(truncate(card.Caption, inner)))
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.palette.Color(palette.BorderMedium)).
		Padding(0, 1).
		Width(width - 2)

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderProgress draws the capped bar, the uncapped ratio and the status.
func (t *Terminal) renderProgress(p *kpi.TargetProgress, inner int) string {
	cells := progressBarCells
	if inner-percentLabelPad < cells {
		cells = max(inner-percentLabelPad, minBarCells)
	}

	barStyle := lipgloss.NewStyle().Foreground(t.palette.Color(p.Role))
	emptyStyle := lipgloss.NewStyle().Foreground(t.palette.Color(palette.BorderStrong))

	bar := ProgressBar(p.DisplayRatio, cells)
	filled := strings.Count(bar, progressFilledChar)
	rendered := barStyle.Render(strings.Repeat(progressFilledChar, filled)) +
		emptyStyle.Render(strings.Repeat(progressEmptyChar, cells-filled))

	status := barStyle.Render(fmt.Sprintf("%s of %s · %s", p.RatioText, p.TargetText, p.Status))
	return rendered + "\n" + status
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	const ellipsis = "…"
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + ellipsis
}
