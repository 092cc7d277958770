// Package palette holds the read-only mapping from semantic color roles to
// concrete colors shared by every card and renderer.
package palette

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Role is a semantic color slot.
type Role string

// Recognized roles.
const (
	Primary       Role = "primary"
	PrimaryLight  Role = "primary_light"
	Success       Role = "success"
	Warning       Role = "warning"
	Danger        Role = "danger"
	Info          Role = "info"
	TextPrimary   Role = "text_primary"
	TextSecondary Role = "text_secondary"
	TextTertiary  Role = "text_tertiary"
	BorderSubtle  Role = "border_subtle"
	BorderMedium  Role = "border_medium"
	BorderStrong  Role = "border_strong"
)

// Palette errors.
var (
	ErrUnknownRole  = errors.New("unknown palette role")
	ErrInvalidColor = errors.New("invalid color value")
)

// hexColor accepts #RGB and #RRGGBB.
var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`) //nolint:gochecknoglobals // Compiled once

// defaultColors is the built-in dashboard theme.
//
//nolint:gochecknoglobals // Constant lookup table, copied into every Palette
var defaultColors = map[Role]string{
	Primary:       "#2563EB",
	PrimaryLight:  "#DBEAFE",
	Success:       "#10B981",
	Warning:       "#F59E0B",
	Danger:        "#EF4444",
	Info:          "#3B82F6",
	TextPrimary:   "#111827",
	TextSecondary: "#6B7280",
	TextTertiary:  "#9CA3AF",
	BorderSubtle:  "#F3F4F6",
	BorderMedium:  "#E5E7EB",
	BorderStrong:  "#D1D5DB",
}

// Roles returns every recognized role in a stable order.
func Roles() []Role {
	roles := make([]Role, 0, len(defaultColors))
	for r := range defaultColors {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// ParseRole converts a configuration key into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := defaultColors[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Palette maps roles to colors. The zero value behaves like Default().
// A Palette is never mutated after construction, so it may be shared
// across goroutines without locking.
type Palette struct {
	colors map[Role]string
}

// Default returns the built-in palette.
func Default() Palette {
	return Palette{colors: copyColors(defaultColors)}
}

// WithOverrides returns a new palette with the given role→hex overrides
// applied on top of p. p itself is left unchanged.
func (p Palette) WithOverrides(overrides map[string]string) (Palette, error) {
	next := copyColors(p.table())
	for key, value := range overrides {
		role, err := ParseRole(key)
		if err != nil {
			return Palette{}, err
		}
		value = strings.TrimSpace(value)
		if !hexColor.MatchString(value) {
			return Palette{}, fmt.Errorf("%w: %s=%q", ErrInvalidColor, key, value)
		}
		next[role] = strings.ToUpper(value)
	}
	return Palette{colors: next}, nil
}

// Hex returns the color for role, or the text_primary color for an unknown role.
func (p Palette) Hex(role Role) string {
	table := p.table()
	if c, ok := table[role]; ok {
		return c
	}
	return table[TextPrimary]
}

// Color returns the lipgloss color for role.
func (p Palette) Color(role Role) lipgloss.Color {
	return lipgloss.Color(p.Hex(role))
}

func (p Palette) table() map[Role]string {
	if p.colors == nil {
		return defaultColors
	}
	return p.colors
}

func copyColors(src map[Role]string) map[Role]string {
	dst := make(map[Role]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
