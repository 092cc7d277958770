package render

import (
	"math"
	"strings"
)

// Progress bar glyphs.
const (
	progressFilledChar = "█"
	progressEmptyChar  = "░"
)

// sparkLevels are the eight block heights used by Sparkline, lowest first.
var sparkLevels = []rune("▁▂▃▄▅▆▇█") //nolint:gochecknoglobals // Constant glyph table

// ProgressBar returns a bar of width cells with ratio percent filled.
// ratio is clamped to [0, 100].
func ProgressBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > maxPercent {
		ratio = maxPercent
	}
	filled := int(ratio / maxPercent * float64(width))
	return strings.Repeat(progressFilledChar, filled) + strings.Repeat(progressEmptyChar, width-filled)
}

// Sparkline maps samples onto block glyphs scaled between their min and max.
// When width > 0 and there are more samples than width, only the most recent
// width samples are drawn. A flat series renders at mid height.
func Sparkline(samples []float64, width int) string {
	if len(samples) == 0 {
		return ""
	}
	if width > 0 && len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	lo, hi := samples[0], samples[0]
	for _, v := range samples[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	top := len(sparkLevels) - 1
	var sb strings.Builder
	for _, v := range samples {
		idx := top / 2
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		sb.WriteRune(sparkLevels[idx])
	}
	return sb.String()
}
