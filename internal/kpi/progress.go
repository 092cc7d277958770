package kpi

import (
	"fmt"
	"math"

	"github.com/rshade/salesboard/internal/palette"
)

// Default status band thresholds, in percent of target.
const (
	DefaultAchievedThreshold = 100.0
	DefaultNearThreshold     = 80.0

	// MaxDisplayRatio caps the ratio used for progress bars.
	MaxDisplayRatio = 100.0
)

// Status is the achievement band of a progress card.
type Status string

// Progress statuses.
const (
	StatusAchieved    Status = "achieved"
	StatusNearTarget  Status = "near target"
	StatusBelowTarget Status = "below target"
)

// Thresholds are the lower bounds of the achieved and near-target bands.
type Thresholds struct {
	Achieved float64 `yaml:"achieved" json:"achieved"`
	Near     float64 `yaml:"near"     json:"near"`
}

// DefaultThresholds returns 100% achieved and 80% near target.
func DefaultThresholds() Thresholds {
	return Thresholds{Achieved: DefaultAchievedThreshold, Near: DefaultNearThreshold}
}

// Validate checks that both thresholds are finite, non-negative and ordered.
func (t Thresholds) Validate() error {
	for _, v := range []float64{t.Achieved, t.Near} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: thresholds must be finite and >= 0, got achieved=%v near=%v",
				ErrInvalidThresholds, t.Achieved, t.Near)
		}
	}
	if t.Near > t.Achieved {
		return fmt.Errorf("%w: near (%.1f) exceeds achieved (%.1f)", ErrInvalidThresholds, t.Near, t.Achieved)
	}
	return nil
}

// Band returns the status and color role for an uncapped ratio.
func (t Thresholds) Band(ratio float64) (Status, palette.Role) {
	switch {
	case ratio >= t.Achieved:
		return StatusAchieved, palette.Success
	case ratio >= t.Near:
		return StatusNearTarget, palette.Warning
	default:
		return StatusBelowTarget, palette.Danger
	}
}

// TargetProgress is the achievement of a value against a target.
type TargetProgress struct {
	// Ratio is current/target*100, uncapped. It drives Status.
	Ratio float64 `json:"ratio"`
	// DisplayRatio is Ratio capped at 100 for progress bars.
	DisplayRatio float64      `json:"display_ratio"`
	Status       Status       `json:"status"`
	Role         palette.Role `json:"role"`
	// TargetText is the formatted target value. Set by the builder.
	TargetText string `json:"target,omitempty"`
	// RatioText is the formatted uncapped ratio, e.g. "120.0%". Set by the builder.
	RatioText string `json:"ratio_text,omitempty"`
}

// AchievementRatio returns current/target*100, or 0 when target is 0.
func AchievementRatio(current, target float64) float64 {
	if target == 0 {
		return 0
	}
	return current / target * PercentageMultiplier
}

// NewTargetProgress computes ratio, capped display ratio and status band.
func NewTargetProgress(current, target float64, t Thresholds) TargetProgress {
	ratio := AchievementRatio(current, target)
	status, role := t.Band(ratio)
	return TargetProgress{
		Ratio:        ratio,
		DisplayRatio: math.Min(ratio, MaxDisplayRatio),
		Status:       status,
		Role:         role,
	}
}
