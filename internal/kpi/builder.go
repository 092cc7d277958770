package kpi

import (
	"fmt"
	"math"
	"slices"

	"github.com/rs/zerolog"

	"github.com/rshade/salesboard/internal/format"
	"github.com/rshade/salesboard/internal/palette"
)

// Builder turns card requests into descriptors. It holds only immutable
// configuration, so one Builder may serve concurrent render calls.
type Builder struct {
	palette    palette.Palette
	formatter  *format.Formatter
	thresholds Thresholds
	logger     zerolog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithPalette sets the palette used to resolve card colors.
func WithPalette(p palette.Palette) BuilderOption {
	return func(b *Builder) { b.palette = p }
}

// WithFormatter sets the value formatter.
func WithFormatter(f *format.Formatter) BuilderOption {
	return func(b *Builder) {
		if f != nil {
			b.formatter = f
		}
	}
}

// WithThresholds sets the default progress status bands.
func WithThresholds(t Thresholds) BuilderOption {
	return func(b *Builder) { b.thresholds = t }
}

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder returns a Builder with the default palette, a "$" formatter and
// 100/80 thresholds unless overridden.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		palette:    palette.Default(),
		formatter:  format.New(),
		thresholds: DefaultThresholds(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Palette returns the builder's palette.
func (b *Builder) Palette() palette.Palette { return b.palette }

// Build dispatches on the request variant.
func (b *Builder) Build(req Request) (CardDescriptor, error) {
	switch r := req.(type) {
	case KPIRequest:
		return b.BuildKPI(r)
	case MetricRequest:
		return b.BuildMetric(r)
	case ComparisonRequest:
		return b.BuildComparison(r)
	case ProgressRequest:
		return b.BuildProgress(r)
	case StatRequest:
		return b.BuildStat(r)
	case nil:
		return CardDescriptor{}, fmt.Errorf("%w: nil request", ErrInvalidRequest)
	default:
		return CardDescriptor{}, fmt.Errorf("%w: unsupported request %T", ErrInvalidRequest, req)
	}
}

// BuildKPI builds a headline card. When Delta is set the change line is
// classified with ReverseGood; the card keeps its own role color.
func (b *Builder) BuildKPI(r KPIRequest) (CardDescriptor, error) {
	if err := r.Validate(); err != nil {
		return CardDescriptor{}, err
	}

	value, err := b.formatter.Format(r.Value, kindOr(r.Format, format.KindCurrency), r.Decimals)
	if err != nil {
		return CardDescriptor{}, err
	}

	card := b.card(KindKPI, r.Label, value, roleOr(r.Role, palette.Primary))
	card.Caption = r.Caption
	card.Trend = slices.Clone(r.Trend)

	if r.Delta != nil {
		change, changeErr := b.change(*r.Delta, r.ReverseGood, defaultDeltaDecimals)
		if changeErr != nil {
			return CardDescriptor{}, changeErr
		}
		card.Change = &change
	}

	return card, nil
}

// BuildMetric builds a plain labelled value card.
func (b *Builder) BuildMetric(r MetricRequest) (CardDescriptor, error) {
	if err := r.Validate(); err != nil {
		return CardDescriptor{}, err
	}

	value, err := b.formatter.Format(r.Value, kindOr(r.Format, format.KindNumber), r.Decimals)
	if err != nil {
		return CardDescriptor{}, err
	}

	card := b.card(KindMetric, r.Label, value, roleOr(r.Role, palette.TextPrimary))
	card.Caption = r.Caption
	return card, nil
}

// BuildComparison builds a current-vs-previous card. The delta is
// (current-previous)/previous*100, or 0 when previous is 0. The card color
// follows the change classification.
func (b *Builder) BuildComparison(r ComparisonRequest) (CardDescriptor, error) {
	if err := r.Validate(); err != nil {
		return CardDescriptor{}, err
	}

	kind := kindOr(r.Format, format.KindNumber)
	current, err := b.formatter.Format(r.Current, kind, r.Decimals)
	if err != nil {
		return CardDescriptor{}, err
	}
	previous, err := b.formatter.Format(r.Previous, kind, r.Decimals)
	if err != nil {
		return CardDescriptor{}, err
	}

	if r.Previous == 0 {
		b.logger.Debug().
			Str("operation", "BuildComparison").
			Str("label", r.Label).
			Float64("current", r.Current).
			Msg("zero baseline, delta normalized to 0")
	}

	deltaDecimals := defaultDeltaDecimals
	if r.DeltaDecimals != nil {
		deltaDecimals = *r.DeltaDecimals
	}
	delta := DeltaPercent(r.Current, r.Previous)
	if err = checkRange("delta", delta, r.Current, r.Previous); err != nil {
		return CardDescriptor{}, err
	}
	change, err := b.change(delta, r.ReverseGood, deltaDecimals)
	if err != nil {
		return CardDescriptor{}, err
	}

	card := b.card(KindComparison, r.Label, current, change.Role)
	card.Previous = previous
	card.Change = &change
	return card, nil
}

// BuildProgress builds a target-achievement card. The ratio is
// current/target*100, or 0 when target is 0; the status band uses the
// uncapped ratio while DisplayRatio is capped at 100.
func (b *Builder) BuildProgress(r ProgressRequest) (CardDescriptor, error) {
	if err := r.Validate(); err != nil {
		return CardDescriptor{}, err
	}

	kind := kindOr(r.Format, format.KindCurrency)
	current, err := b.formatter.Format(r.Current, kind, r.Decimals)
	if err != nil {
		return CardDescriptor{}, err
	}
	target, err := b.formatter.Format(r.Target, kind, r.Decimals)
	if err != nil {
		return CardDescriptor{}, err
	}

	thresholds := b.thresholds
	if r.Thresholds != nil {
		thresholds = *r.Thresholds
	}

	if r.Target == 0 {
		b.logger.Debug().
			Str("operation", "BuildProgress").
			Str("label", r.Label).
			Float64("current", r.Current).
			Msg("zero target, ratio normalized to 0")
	}

	if err = checkRange("ratio", AchievementRatio(r.Current, r.Target), r.Current, r.Target); err != nil {
		return CardDescriptor{}, err
	}
	progress := NewTargetProgress(r.Current, r.Target, thresholds)
	progress.TargetText = target
	progress.RatioText, err = b.formatter.Format(progress.Ratio, format.KindPercent, defaultDeltaDecimals)
	if err != nil {
		return CardDescriptor{}, err
	}

	card := b.card(KindProgress, r.Label, current, progress.Role)
	card.Progress = &progress
	return card, nil
}

// BuildStat builds a compact stat tile.
func (b *Builder) BuildStat(r StatRequest) (CardDescriptor, error) {
	if err := r.Validate(); err != nil {
		return CardDescriptor{}, err
	}

	value, err := b.formatter.Format(r.Value, kindOr(r.Format, format.KindNumber), r.Decimals)
	if err != nil {
		return CardDescriptor{}, err
	}

	card := b.card(KindStat, r.Label, value, roleOr(r.Role, palette.Info))
	card.Icon = r.Icon
	return card, nil
}

func (b *Builder) card(kind CardKind, label, value string, role palette.Role) CardDescriptor {
	return CardDescriptor{
		Kind:  kind,
		Label: label,
		Value: value,
		Role:  role,
		Color: b.palette.Hex(role),
	}
}

// change classifies delta and renders "▲ 10.0%" style text from its magnitude.
func (b *Builder) change(delta float64, reverseGood bool, decimals int) (ChangeIndicator, error) {
	c := Classify(delta, reverseGood)
	pct, err := b.formatter.Format(math.Abs(delta), format.KindPercent, decimals)
	if err != nil {
		return ChangeIndicator{}, err
	}
	c.Text = c.Arrow + " " + pct
	return c, nil
}

// checkRange rejects a derived percentage that overflowed from finite inputs.
func checkRange(name string, v, a, b float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("%w: %s of %v and %v", ErrOverflow, name, a, b)
	}
	return nil
}
