package kpi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	placed []Slot
}

func (r *recordingSink) Place(s Slot) { r.placed = append(r.placed, s) }

func TestAssignSlots(t *testing.T) {
	cols, err := AssignSlots(5, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 0, 1}, cols)

	cols, err = AssignSlots(0, 2)
	require.NoError(t, err)
	assert.Empty(t, cols)

	_, err = AssignSlots(3, 0)
	require.ErrorIs(t, err, ErrInvalidColumnCount)
	_, err = AssignSlots(3, -2)
	require.ErrorIs(t, err, ErrInvalidColumnCount)
}

func TestLayout(t *testing.T) {
	b := NewBuilder()
	requests := []Request{
		KPIRequest{Label: "Revenue", Value: 1000},
		MetricRequest{Label: "Customers", Value: 40},
		ComparisonRequest{Label: "Orders", Current: 110, Previous: 100},
		ProgressRequest{Label: "Target", Current: 90, Target: 100},
		StatRequest{Label: "Top category", Value: 12},
	}

	slots, err := b.Layout(requests, 3)
	require.NoError(t, err)
	require.Len(t, slots, 5)

	wantCols := []int{0, 1, 2, 0, 1}
	wantRows := []int{0, 0, 0, 1, 1}
	wantKinds := []CardKind{KindKPI, KindMetric, KindComparison, KindProgress, KindStat}
	for i, s := range slots {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, wantCols[i], s.Column)
		assert.Equal(t, wantRows[i], s.Row)
		assert.Equal(t, wantKinds[i], s.Card.Kind)
		assert.NoError(t, s.Err)
	}

	rows := Rows(slots)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 2)
}

func TestLayout_InvalidColumns(t *testing.T) {
	_, err := NewBuilder().Layout([]Request{MetricRequest{Label: "x"}}, 0)
	require.ErrorIs(t, err, ErrInvalidColumnCount)
}

func TestLayout_FailureIsolated(t *testing.T) {
	b := NewBuilder()
	requests := []Request{
		MetricRequest{Label: "a", Value: 1},
		MetricRequest{Label: "b", Value: math.NaN()},
		MetricRequest{Label: "c", Value: 3},
	}

	slots, err := b.Layout(requests, 2)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].OK())
	assert.False(t, slots[1].OK())
	assert.True(t, slots[2].OK())
	assert.Equal(t, 1, slots[1].Column)
	assert.Equal(t, 0, slots[2].Column)
	assert.Equal(t, 1, slots[2].Row)
	assert.Equal(t, "3", slots[2].Card.Value)

	errs := Errors(slots)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "card 1")

	sink := &recordingSink{}
	assert.Equal(t, 2, Dispatch(slots, sink))
	require.Len(t, sink.placed, 2)
	assert.Equal(t, "a", sink.placed[0].Card.Label)
	assert.Equal(t, "c", sink.placed[1].Card.Label)
}
