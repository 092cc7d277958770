package kpi

import (
	"fmt"
	"math"
	"strings"

	"github.com/rshade/salesboard/internal/format"
	"github.com/rshade/salesboard/internal/palette"
)

// CardKind tags the five card variants.
type CardKind string

// Card kinds.
const (
	KindKPI        CardKind = "kpi"
	KindMetric     CardKind = "metric"
	KindComparison CardKind = "comparison"
	KindProgress   CardKind = "progress"
	KindStat       CardKind = "stat"
)

// Request is one card to build. It is implemented only by the request types
// in this package; Builder.Build switches over them exhaustively.
type Request interface {
	CardKind() CardKind
	Validate() error
	sealed()
}

// KPIRequest is a headline metric with optional change and sparkline.
//
// Defaults: Format currency, Role primary.
type KPIRequest struct {
	Label    string
	Value    float64
	Format   format.Kind
	Decimals int
	// Delta is an explicit change in percentage units. Nil means no change line.
	Delta       *float64
	ReverseGood bool
	// Trend holds ordered samples for a sparkline hint.
	Trend   []float64
	Role    palette.Role
	Caption string
}

// MetricRequest is a plain labelled value.
//
// Defaults: Format number, Role text_primary.
type MetricRequest struct {
	Label    string
	Value    float64
	Format   format.Kind
	Decimals int
	Caption  string
	Role     palette.Role
}

// ComparisonRequest compares a current value with a previous one.
//
// Defaults: Format number, DeltaDecimals 1.
type ComparisonRequest struct {
	Label         string
	Current       float64
	Previous      float64
	Format        format.Kind
	Decimals      int
	DeltaDecimals *int
	ReverseGood   bool
}

// ProgressRequest measures a value against a target.
//
// Defaults: Format currency, Thresholds from the Builder.
type ProgressRequest struct {
	Label      string
	Current    float64
	Target     float64
	Format     format.Kind
	Decimals   int
	Thresholds *Thresholds
}

// StatRequest is a compact tile with an optional icon.
//
// Defaults: Format number, Role info.
type StatRequest struct {
	Label    string
	Value    float64
	Format   format.Kind
	Decimals int
	Icon     string
	Role     palette.Role
}

// defaultDeltaDecimals is the precision of change percentages.
const defaultDeltaDecimals = 1

func (KPIRequest) CardKind() CardKind        { return KindKPI }
func (MetricRequest) CardKind() CardKind     { return KindMetric }
func (ComparisonRequest) CardKind() CardKind { return KindComparison }
func (ProgressRequest) CardKind() CardKind   { return KindProgress }
func (StatRequest) CardKind() CardKind       { return KindStat }

func (KPIRequest) sealed()        {}
func (MetricRequest) sealed()     {}
func (ComparisonRequest) sealed() {}
func (ProgressRequest) sealed()   {}
func (StatRequest) sealed()       {}

// Validate checks the label, format, precision and numeric inputs.
func (r KPIRequest) Validate() error {
	if err := validateCommon(r.Label, r.Format, r.Decimals); err != nil {
		return err
	}
	if r.Delta != nil {
		if err := requireFinite("delta", *r.Delta); err != nil {
			return err
		}
	}
	for i, v := range r.Trend {
		if err := requireFinite(fmt.Sprintf("trend[%d]", i), v); err != nil {
			return err
		}
	}
	if err := validateRole(r.Role); err != nil {
		return err
	}
	return requireFinite("value", r.Value)
}

// Validate checks the label, format, precision and value.
func (r MetricRequest) Validate() error {
	if err := validateCommon(r.Label, r.Format, r.Decimals); err != nil {
		return err
	}
	if err := validateRole(r.Role); err != nil {
		return err
	}
	return requireFinite("value", r.Value)
}

// Validate checks the label, format, precision and both values.
func (r ComparisonRequest) Validate() error {
	if err := validateCommon(r.Label, r.Format, r.Decimals); err != nil {
		return err
	}
	if r.DeltaDecimals != nil && *r.DeltaDecimals < 0 {
		return fmt.Errorf("%w: delta decimals must be >= 0, got %d", ErrInvalidRequest, *r.DeltaDecimals)
	}
	if err := requireFinite("current", r.Current); err != nil {
		return err
	}
	return requireFinite("previous", r.Previous)
}

// Validate checks the label, format, precision, values and any threshold override.
func (r ProgressRequest) Validate() error {
	if err := validateCommon(r.Label, r.Format, r.Decimals); err != nil {
		return err
	}
	if r.Thresholds != nil {
		if err := r.Thresholds.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	if err := requireFinite("current", r.Current); err != nil {
		return err
	}
	return requireFinite("target", r.Target)
}

// Validate checks the label, format, precision and value.
func (r StatRequest) Validate() error {
	if err := validateCommon(r.Label, r.Format, r.Decimals); err != nil {
		return err
	}
	if err := validateRole(r.Role); err != nil {
		return err
	}
	return requireFinite("value", r.Value)
}

func validateCommon(label string, kind format.Kind, decimals int) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidRequest)
	}
	if kind != "" && !kind.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRequest, format.ErrInvalidFormatKind, kind)
	}
	if decimals < 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidRequest, format.ErrNegativePrecision, decimals)
	}
	return nil
}

func validateRole(role palette.Role) error {
	if role == "" {
		return nil
	}
	if _, err := palette.ParseRole(string(role)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func requireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s: %w: %v", ErrInvalidRequest, field, format.ErrNonFiniteValue, v)
	}
	return nil
}

func kindOr(k, fallback format.Kind) format.Kind {
	if k == "" {
		return fallback
	}
	return k
}

func roleOr(r, fallback palette.Role) palette.Role {
	if r == "" {
		return fallback
	}
	return r
}
