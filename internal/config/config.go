// Package config loads the salesboard YAML configuration: display defaults,
// palette overrides, progress thresholds, period targets and logging.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/salesboard/internal/format"
	"github.com/rshade/salesboard/internal/kpi"
	"github.com/rshade/salesboard/internal/palette"
)

const (
	// CurrentVersion is written by default and assumed when the file omits it.
	CurrentVersion = "1.0.0"
	// SupportedVersions is the semver constraint a config file must satisfy.
	SupportedVersions = ">= 1.0.0, < 2.0.0"

	// DefaultColumns is the card grid width used when nothing else is set.
	DefaultColumns = 3
	// DefaultCurrencySymbol prefixes currency values.
	DefaultCurrencySymbol = "$"
)

// Environment variables that override file settings.
const (
	EnvConfigPath = "SALESBOARD_CONFIG"
	EnvLogLevel   = "SALESBOARD_LOG_LEVEL"
	EnvColumns    = "SALESBOARD_COLUMNS"
)

// Validation errors. Validate joins every problem it finds.
var (
	ErrInvalidVersion        = errors.New("invalid config version")
	ErrUnsupportedVersion    = errors.New("unsupported config version")
	ErrInvalidCurrencySymbol = errors.New("currency symbol must not be empty")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrInvalidLogFormat      = errors.New("invalid log format")
	ErrInvalidLogLevel       = errors.New("invalid log level")
	ErrInvalidEnv            = errors.New("invalid environment override")
)

// Config is the parsed salesboard.yaml.
type Config struct {
	Version        string             `yaml:"version" json:"version"`
	CurrencySymbol string             `yaml:"currency_symbol" json:"currency_symbol"`
	Columns        int                `yaml:"columns" json:"columns"`
	Thresholds     kpi.Thresholds     `yaml:"thresholds" json:"thresholds"`
	Palette        map[string]string  `yaml:"palette,omitempty" json:"palette,omitempty"`
	Targets        map[string]float64 `yaml:"targets,omitempty" json:"targets,omitempty"`
	Logging        LoggingConfig      `yaml:"logging" json:"logging"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Version:        CurrentVersion,
		CurrencySymbol: DefaultCurrencySymbol,
		Columns:        DefaultColumns,
		Thresholds:     kpi.DefaultThresholds(),
		Logging:        DefaultLoggingConfig(),
	}
}

// Load reads path on top of the defaults. Keys absent from the file keep
// their default value; unknown keys are rejected. The result is not validated.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from flag, env or home dir
	if err != nil {
		return nil, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r on top of the defaults. An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := New()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	return cfg, nil
}

// ApplyEnv applies SALESBOARD_LOG_LEVEL and SALESBOARD_COLUMNS.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvColumns); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidEnv, EnvColumns, v)
		}
		c.Columns = n
	}
	return nil
}

// Validate checks every section and returns all problems joined together.
func (c *Config) Validate() error {
	var errs []error

	if err := checkVersion(c.Version); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errs = append(errs, ErrInvalidCurrencySymbol)
	}
	if c.Columns < 1 {
		errs = append(errs, fmt.Errorf("columns: %w: got %d", kpi.ErrInvalidColumnCount, c.Columns))
	}
	if err := c.Thresholds.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("thresholds: %w", err))
	}
	if _, err := palette.Default().WithOverrides(c.Palette); err != nil {
		errs = append(errs, fmt.Errorf("palette: %w", err))
	}
	for _, name := range sortedKeys(c.Targets) {
		v := c.Targets[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, errorf(ErrInvalidTarget, "%s: %v", name, v))
		}
	}
	errs = append(errs, c.Logging.validate()...)

	return errors.Join(errs...)
}

// BuildPalette returns the default palette with the configured overrides applied.
func (c *Config) BuildPalette() (palette.Palette, error) {
	return palette.Default().WithOverrides(c.Palette)
}

// Formatter returns a formatter using the configured currency symbol.
func (c *Config) Formatter() *format.Formatter {
	return format.New(format.WithCurrencySymbol(c.CurrencySymbol))
}

// Builder returns a card builder wired with the configured palette,
// formatter and thresholds.
func (c *Config) Builder(logger zerolog.Logger) (*kpi.Builder, error) {
	p, err := c.BuildPalette()
	if err != nil {
		return nil, err
	}
	return kpi.NewBuilder(
		kpi.WithPalette(p),
		kpi.WithFormatter(c.Formatter()),
		kpi.WithThresholds(c.Thresholds),
		kpi.WithLogger(logger),
	), nil
}

func checkVersion(v string) error {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return errorf(ErrInvalidVersion, "%q: %v", v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(ver) {
		return errorf(ErrUnsupportedVersion, "%s does not satisfy %q", ver, SupportedVersions)
	}
	return nil
}

func errorf(sentinel error, msg string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(msg, args...))
}
