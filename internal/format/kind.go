package format

import (
	"fmt"
	"strings"
)

// Kind selects how a value is rendered.
type Kind string

// Supported format kinds.
const (
	// KindNumber renders a thousands-grouped number.
	KindNumber Kind = "number"
	// KindCurrency renders a grouped number prefixed with the currency symbol.
	KindCurrency Kind = "currency"
	// KindPercent renders a value already in percentage units followed by "%".
	KindPercent Kind = "percent"
	// KindCompact abbreviates large magnitudes with K/M suffixes.
	KindCompact Kind = "compact"
)

// kindAliases maps accepted spellings to their canonical kind.
//
//nolint:gochecknoglobals // Constant lookup table
var kindAliases = map[string]Kind{
	"number":            KindNumber,
	"plain-number":      KindNumber,
	"currency":          KindCurrency,
	"percent":           KindPercent,
	"compact":           KindCompact,
	"compact-magnitude": KindCompact,
}

// ParseKind converts a user-supplied name into a Kind.
// Names are case-insensitive; "plain-number" and "compact-magnitude" are accepted aliases.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormatKind, s)
}

// Valid reports whether k is one of the four supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNumber, KindCurrency, KindPercent, KindCompact:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }
