package kpi

import "errors"

// Errors returned by card building and layout.
var (
	// ErrInvalidColumnCount is returned by Layout when columns <= 0.
	ErrInvalidColumnCount = errors.New("column count must be >= 1")

	// ErrInvalidRequest wraps validation failures of a single card request.
	ErrInvalidRequest = errors.New("invalid card request")

	// ErrInvalidThresholds indicates inconsistent status band thresholds.
	ErrInvalidThresholds = errors.New("invalid progress thresholds")

	// ErrOverflow indicates finite inputs whose delta or ratio is not representable.
	ErrOverflow = errors.New("result out of range")
)
