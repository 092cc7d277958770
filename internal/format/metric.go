package format

import (
	"fmt"
	"math"
)

// MetricValue is a number paired with the way it should be displayed.
type MetricValue struct {
	Value    float64
	Kind     Kind
	Decimals int
}

// NewMetricValue validates the value, kind and precision up front so that
// formatting the result cannot fail.
func NewMetricValue(value float64, kind Kind, decimals int) (MetricValue, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MetricValue{}, fmt.Errorf("%w: %v", ErrNonFiniteValue, value)
	}
	if !kind.Valid() {
		return MetricValue{}, fmt.Errorf("%w: %q", ErrInvalidFormatKind, kind)
	}
	if decimals < 0 {
		return MetricValue{}, fmt.Errorf("%w: %d", ErrNegativePrecision, decimals)
	}
	return MetricValue{Value: value, Kind: kind, Decimals: decimals}, nil
}

// String formats the metric with the default formatter.
func (m MetricValue) String() string {
	s, err := defaultFormatter.FormatMetric(m)
	if err != nil {
		return fmt.Sprintf("%%!(%v)", err)
	}
	return s
}
