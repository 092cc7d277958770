package kpi

import (
	"github.com/rshade/salesboard/internal/palette"
)

// Sign is the direction of a change.
type Sign string

// Change signs.
const (
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
	SignNeutral  Sign = "neutral"
)

// Arrow glyphs. The glyph follows the raw sign of the delta, never the color.
const (
	ArrowUp      = "▲"
	ArrowDown    = "▼"
	ArrowNeutral = "●"
)

// PercentageMultiplier converts a ratio to percentage units.
const PercentageMultiplier = 100.0

// ChangeIndicator describes a period-over-period change.
type ChangeIndicator struct {
	// Delta is the change in percentage units.
	Delta float64 `json:"delta"`
	// Sign is the raw sign of Delta.
	Sign Sign `json:"sign"`
	// ReverseGood is set when a decrease is the favorable direction.
	ReverseGood bool `json:"reverse_good"`
	// Role is the color role: success, danger, or text_secondary when neutral.
	Role palette.Role `json:"role"`
	// Arrow is the glyph for Sign.
	Arrow string `json:"arrow"`
	// Text is the display-ready change, e.g. "▲ 10.0%". Set by the builder.
	Text string `json:"text,omitempty"`
}

// Favorable reports whether the change is in the good direction.
// Neutral changes are never favorable.
func (c ChangeIndicator) Favorable() bool {
	return c.Role == palette.Success
}

// Classify derives sign, color role and arrow from a delta.
//
//   - delta == 0 is neutral regardless of reverseGood
//   - delta > 0 is success, or danger when reverseGood
//   - delta < 0 is danger, or success when reverseGood
//
// NaN deltas classify as neutral.
func Classify(delta float64, reverseGood bool) ChangeIndicator {
	c := ChangeIndicator{Delta: delta, ReverseGood: reverseGood}

	switch {
	case delta > 0:
		c.Sign = SignPositive
		c.Arrow = ArrowUp
		c.Role = palette.Success
		if reverseGood {
			c.Role = palette.Danger
		}
	case delta < 0:
		c.Sign = SignNegative
		c.Arrow = ArrowDown
		c.Role = palette.Danger
		if reverseGood {
			c.Role = palette.Success
		}
	default:
		c.Sign = SignNeutral
		c.Arrow = ArrowNeutral
		c.Role = palette.TextSecondary
	}

	return c
}

// DeltaPercent returns (current-previous)/previous*100.
// A zero previous value yields 0 instead of failing, so a dashboard never
// breaks on an empty baseline period.
func DeltaPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * PercentageMultiplier
}
