package format

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by the formatter. Compare with errors.Is.
var (
	// ErrInvalidFormatKind indicates a format kind outside number, currency, percent and compact.
	ErrInvalidFormatKind = constError("invalid format kind")

	// ErrNonFiniteValue indicates a NaN or infinite input value.
	ErrNonFiniteValue = constError("non-finite value")

	// ErrNegativePrecision indicates a negative number of decimal places.
	ErrNegativePrecision = constError("negative decimal precision")
)
