package kpi

import "github.com/rshade/salesboard/internal/palette"

// CardDescriptor is a display-ready card. Every text field is already
// formatted; renderers never format numbers themselves. Trend is the only
// numeric payload and is used solely for sparkline hints.
type CardDescriptor struct {
	Kind     CardKind         `json:"kind"`
	Label    string           `json:"label"`
	Value    string           `json:"value"`
	Previous string           `json:"previous,omitempty"`
	Caption  string           `json:"caption,omitempty"`
	Icon     string           `json:"icon,omitempty"`
	Change   *ChangeIndicator `json:"change,omitempty"`
	Progress *TargetProgress  `json:"progress,omitempty"`
	Trend    []float64        `json:"trend,omitempty"`
	Role     palette.Role     `json:"role"`
	Color    string           `json:"color"`
}

// HasTrend reports whether the card carries at least two samples, the
// minimum for a meaningful sparkline.
func (c CardDescriptor) HasTrend() bool {
	return len(c.Trend) > 1
}
