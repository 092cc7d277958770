// Package tui provides the interactive card dashboard.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/salesboard/internal/kpi"
	"github.com/rshade/salesboard/internal/palette"
	"github.com/rshade/salesboard/internal/render"
)

// Column bounds for the interactive grid.
const (
	MinColumns = 1
	MaxColumns = 6
)

// DashboardModel is the Bubble Tea model for the card dashboard. It owns a
// fixed set of requests and re-lays them out whenever the column count or
// window size changes.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	title    string
	builder  *kpi.Builder
	requests []kpi.Request

	columns int
	width   int
	height  int

	keys keyMap
	help help.Model

	body     string
	failed   int
	quitting bool
}

// NewDashboardModel creates a dashboard over requests. columns is clamped to
// [MinColumns, MaxColumns].
func NewDashboardModel(title string, builder *kpi.Builder, requests []kpi.Request, columns int) DashboardModel {
	if builder == nil {
		builder = kpi.NewBuilder()
	}
	m := DashboardModel{
		title:    title,
		builder:  builder,
		requests: requests,
		columns:  clampColumns(columns),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.relayout()
	return m
}

// Columns returns the current grid width.
func (m DashboardModel) Columns() int { return m.columns }

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.More):
			m.setColumns(m.columns + 1)
		case key.Matches(msg, m.keys.Less):
			m.setColumns(m.columns - 1)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	p := m.builder.Palette()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Color(palette.Primary))
	mutedStyle := lipgloss.NewStyle().Foreground(p.Color(palette.TextSecondary))

	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n\n")
	}
	b.WriteString(m.body)
	if m.failed > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Color(palette.Danger)).
			Render(pluralCards(m.failed) + " could not be built"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.columnsLabel()))
	b.WriteString("  ")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *DashboardModel) setColumns(n int) {
	n = clampColumns(n)
	if n == m.columns {
		return
	}
	m.columns = n
	m.relayout()
}

func (m *DashboardModel) relayout() {
	slots, err := m.builder.Layout(m.requests, m.columns)
	if err != nil {
		m.body = err.Error() + "\n"
		return
	}
	m.failed = len(kpi.Errors(slots))

	var b strings.Builder
	if err := render.NewTerminal(m.builder.Palette(), m.width).Render(&b, slots, m.columns); err != nil {
		m.body = err.Error() + "\n"
		return
	}
	m.body = b.String()
}

func (m DashboardModel) columnsLabel() string {
	if m.columns == 1 {
		return "1 column"
	}
	return strconv.Itoa(m.columns) + " columns"
}

func clampColumns(n int) int {
	return max(MinColumns, min(MaxColumns, n))
}

func pluralCards(n int) string {
	if n == 1 {
		return "1 card"
	}
	return strconv.Itoa(n) + " cards"
}
