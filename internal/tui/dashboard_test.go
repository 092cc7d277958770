package tui

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/salesboard/internal/format"
	"github.com/rshade/salesboard/internal/kpi"
)

func testRequests() []kpi.Request {
	return []kpi.Request{
		kpi.MetricRequest{Label: "Customers", Value: 42, Format: format.KindNumber},
		kpi.ComparisonRequest{Label: "Orders", Current: 110, Previous: 100},
		kpi.ProgressRequest{Label: "Revenue target", Current: 80, Target: 100},
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m DashboardModel, msg tea.Msg) (DashboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	dm, ok := next.(DashboardModel)
	require.True(t, ok)
	return dm, cmd
}

func TestNewDashboardModel_ClampsColumns(t *testing.T) {
	assert.Equal(t, MinColumns, NewDashboardModel("", nil, testRequests(), 0).Columns())
	assert.Equal(t, MaxColumns, NewDashboardModel("", nil, testRequests(), 99).Columns())
	assert.Equal(t, 3, NewDashboardModel("", nil, testRequests(), 3).Columns())
}

func TestDashboardModel_ColumnKeys(t *testing.T) {
	m := NewDashboardModel("Sales", kpi.NewBuilder(), testRequests(), 2)

	m, cmd := update(t, m, runeKey("+"))
	assert.Nil(t, cmd)
	assert.Equal(t, 3, m.Columns())

	m, _ = update(t, m, runeKey("-"))
	m, _ = update(t, m, runeKey("-"))
	assert.Equal(t, 1, m.Columns())

	m, _ = update(t, m, runeKey("-"))
	assert.Equal(t, MinColumns, m.Columns(), "cannot go below one column")

	for range MaxColumns + 2 {
		m, _ = update(t, m, runeKey("+"))
	}
	assert.Equal(t, MaxColumns, m.Columns())
}

func TestDashboardModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		m := NewDashboardModel("Sales", nil, testRequests(), 2)
		m, cmd := update(t, m, msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestDashboardModel_View(t *testing.T) {
	m := NewDashboardModel("Sales overview", nil, testRequests(), 2)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})

	view := m.View()
	for _, want := range []string{"Sales overview", "Customers", "Orders", "Revenue target", "near target", "2 columns", "quit"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "could not be built")
}

func TestDashboardModel_ViewReportsFailedCards(t *testing.T) {
	requests := append(testRequests(), kpi.MetricRequest{Label: "Broken", Value: math.Inf(1)})
	m := NewDashboardModel("", nil, requests, 1)

	view := m.View()
	assert.Contains(t, view, "1 card could not be built")
	assert.Contains(t, view, "1 column")
	assert.NotContains(t, view, "Broken")
}
