package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rshade/salesboard/internal/kpi"
)

// JSON renders the laid-out grid as a single JSON document. Unlike the
// visual renderers it keeps failed slots, with their error message.
type JSON struct{}

type jsonDocument struct {
	Columns int        `json:"columns"`
	Cards   []jsonSlot `json:"cards"`
}

type jsonSlot struct {
	Index  int                 `json:"index"`
	Row    int                 `json:"row"`
	Column int                 `json:"column"`
	Card   *kpi.CardDescriptor `json:"card,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// Render writes the indented document to w.
func (j *JSON) Render(w io.Writer, slots []kpi.Slot, columns int) error {
	if columns <= 0 {
		return fmt.Errorf("%w: got %d", kpi.ErrInvalidColumnCount, columns)
	}

	doc := jsonDocument{Columns: columns, Cards: make([]jsonSlot, 0, len(slots))}
	for _, s := range slots {
		js := jsonSlot{Index: s.Index, Row: s.Row, Column: s.Column}
		if s.OK() {
			card := s.Card
			js.Card = &card
		} else {
			js.Error = s.Err.Error()
		}
		doc.Cards = append(doc.Cards, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding cards: %w", err)
	}
	return nil
}
