package config

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/salesboard/internal/logging"
)

// Default logging settings.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = logging.FormatConsole
)

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	// Level is a zerolog level name.
	Level string `yaml:"level" json:"level"`
	// Format is "console" or "json".
	Format string `yaml:"format" json:"format"`
	// File, when set, sends logs to this path instead of stderr.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// DefaultLoggingConfig returns info-level console logging on stderr.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat}
}

// ToLoggingConfig converts the file settings into a logger config.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	cfg := logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: logging.OutputStderr,
	}
	if lc.File != "" {
		cfg.Output = logging.OutputFile
		cfg.File = filepath.Clean(lc.File)
	}
	return cfg
}

func (lc LoggingConfig) validate() []error {
	var errs []error
	switch lc.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, errorf(ErrInvalidLogFormat, "%q", lc.Format))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(lc.Level)); err != nil {
		errs = append(errs, errorf(ErrInvalidLogLevel, "%q", lc.Level))
	}
	return errs
}
