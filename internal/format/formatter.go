package format

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySymbol is used when no symbol is configured.
const DefaultCurrencySymbol = "$"

// Compact magnitude tiers. Only K and M are supported.
const (
	ThousandThreshold = 1_000.0
	MillionThreshold  = 1_000_000.0

	compactDecimals = 1
)

// Formatter turns numbers into display strings. It is immutable once built
// and safe for concurrent use.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithCurrencySymbol overrides the "$" prefix used by currency and compact kinds.
func WithCurrencySymbol(symbol string) Option {
	return func(f *Formatter) {
		f.symbol = symbol
	}
}

// New returns a Formatter using English digit grouping.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		symbol:  DefaultCurrencySymbol,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CurrencySymbol returns the configured currency prefix.
func (f *Formatter) CurrencySymbol() string {
	return f.symbol
}

//nolint:gochecknoglobals // Default formatter backing the package-level Format helper.
var defaultFormatter = New()

// Format formats value with the default "$" formatter.
func Format(value float64, kind Kind, decimals int) (string, error) {
	return defaultFormatter.Format(value, kind, decimals)
}

// Format renders value according to kind.
//
//   - number:   "1,234.50" with exactly decimals fractional digits
//   - currency: "$1,234.50", negative values as "-$1,234.50"
//   - percent:  "12.3%" (value is already in percentage units)
//   - compact:  "$1.5M", "$2.5K", "$500"; decimals is ignored
//
// It returns ErrNonFiniteValue for NaN or ±Inf, ErrInvalidFormatKind for an
// unknown kind and ErrNegativePrecision when decimals < 0.
func (f *Formatter) Format(value float64, kind Kind, decimals int) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%w: %v", ErrNonFiniteValue, value)
	}
	if decimals < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativePrecision, decimals)
	}

	switch kind {
	case KindNumber:
		return f.grouped(value, decimals), nil
	case KindCurrency:
		return f.currency(value, decimals), nil
	case KindPercent:
		return f.grouped(value, decimals) + "%", nil
	case KindCompact:
		return f.compact(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormatKind, kind)
	}
}

// FormatMetric formats a validated MetricValue.
func (f *Formatter) FormatMetric(m MetricValue) (string, error) {
	return f.Format(m.Value, m.Kind, m.Decimals)
}

// grouped rounds half away from zero and adds thousand separators.
func (f *Formatter) grouped(value float64, decimals int) string {
	format := fmt.Sprintf("%%.%df", decimals)
	return f.printer.Sprintf(format, roundHalfAway(value, decimals))
}

func roundHalfAway(value float64, decimals int) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(int32(decimals)).Float64() //nolint:gosec // decimals is small
	return rounded
}

func (f *Formatter) currency(value float64, decimals int) string {
	body := f.grouped(math.Abs(value), decimals)
	if value < 0 && !isZeroString(body) {
		return "-" + f.symbol + body
	}
	return f.symbol + body
}

// compact abbreviates by magnitude. Negative values keep their sign ahead of
// the symbol: -1,500,000 renders as "-$1.5M". A value that rounds up to the
// next tier's threshold moves to that tier, so 999,999 renders as "$1.0M".
func (f *Formatter) compact(value float64) string {
	abs := math.Abs(value)

	var body string
	switch {
	case abs >= MillionThreshold || roundHalfAway(abs/ThousandThreshold, compactDecimals) >= ThousandThreshold:
		body = f.grouped(abs/MillionThreshold, compactDecimals) + "M"
	case abs >= ThousandThreshold || roundHalfAway(abs, 0) >= ThousandThreshold:
		body = f.grouped(abs/ThousandThreshold, compactDecimals) + "K"
	default:
		body = f.grouped(abs, 0)
	}

	if value < 0 && !isZeroString(body) {
		return "-" + f.symbol + body
	}
	return f.symbol + body
}

// isZeroString reports whether a rendered number is all zeros, so that tiny
// negatives that round to zero do not render as "-$0".
func isZeroString(s string) bool {
	for _, c := range s {
		if c >= '1' && c <= '9' {
			return false
		}
	}
	return true
}
