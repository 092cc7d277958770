package kpi

import "fmt"

// Slot is a card placed in a row-major grid.
type Slot struct {
	// Index is the position of the request in the input sequence.
	Index  int
	Row    int
	Column int
	Card   CardDescriptor
	// Err is set when this request failed to build. Siblings are unaffected.
	Err error
}

// OK reports whether the slot holds a built card.
func (s Slot) OK() bool { return s.Err == nil }

// AssignSlots returns the column of each of n items laid out left-to-right
// across the given number of columns: i mod columns.
func AssignSlots(n, columns int) ([]int, error) {
	if columns <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidColumnCount, columns)
	}
	cols := make([]int, n)
	for i := range cols {
		cols[i] = i % columns
	}
	return cols, nil
}

// Layout builds every request and assigns it to a grid position, preserving
// input order. A request that fails to build is kept in its slot with Err
// set; it does not shift or fail its neighbours.
func (b *Builder) Layout(requests []Request, columns int) ([]Slot, error) {
	cols, err := AssignSlots(len(requests), columns)
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, len(requests))
	for i, req := range requests {
		card, buildErr := b.Build(req)
		if buildErr != nil {
			b.logger.Debug().
				Str("operation", "Layout").
				Int("index", i).
				Err(buildErr).
				Msg("card request failed")
		}
		slots[i] = Slot{
			Index:  i,
			Row:    i / columns,
			Column: cols[i],
			Card:   card,
			Err:    buildErr,
		}
	}
	return slots, nil
}

// Rows groups slots by row, in order.
func Rows(slots []Slot) [][]Slot {
	var rows [][]Slot
	for _, s := range slots {
		for len(rows) <= s.Row {
			rows = append(rows, nil)
		}
		rows[s.Row] = append(rows[s.Row], s)
	}
	return rows
}

// Sink receives laid-out cards. It is implemented by renderers.
type Sink interface {
	Place(slot Slot)
}

// Dispatch hands every successfully built slot to sink in input order and
// returns the number placed. Failed slots are skipped.
func Dispatch(slots []Slot, sink Sink) int {
	placed := 0
	for _, s := range slots {
		if !s.OK() {
			continue
		}
		sink.Place(s)
		placed++
	}
	return placed
}

// Errors collects the per-slot build errors, in order.
func Errors(slots []Slot) []error {
	var errs []error
	for _, s := range slots {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("card %d: %w", s.Index, s.Err))
		}
	}
	return errs
}
