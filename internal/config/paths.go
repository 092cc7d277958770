package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const (
	configDirName  = ".salesboard"
	configFileName = "config.yaml"
)

// DefaultPath returns ~/.salesboard/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// ResolvePath picks the config file location. It checks (in order):
//  1. flagValue (--config)
//  2. SALESBOARD_CONFIG
//  3. ~/.salesboard/config.yaml
//
// explicit reports whether the path came from the flag or the environment.
func ResolvePath(flagValue string, lookupEnv func(string) (string, bool)) (path string, explicit bool, err error) {
	if flagValue != "" {
		return flagValue, true, nil
	}
	if v, ok := lookupEnv(EnvConfigPath); ok && v != "" {
		return v, true, nil
	}
	path, err = DefaultPath()
	return path, false, err
}

// Discover resolves, loads, applies environment overrides and validates the
// configuration. A missing default file yields the defaults; a missing file
// named by flag or environment is an error. The returned path is empty when
// no file was read.
func Discover(flagValue string, lookupEnv func(string) (string, bool)) (*Config, string, error) {
	path, explicit, err := ResolvePath(flagValue, lookupEnv)
	if err != nil {
		// No home directory: run on defaults.
		path = ""
	}

	cfg := New()
	if path != "" {
		loaded, loadErr := Load(path)
		switch {
		case loadErr == nil:
			cfg = loaded
		case !explicit && errors.Is(loadErr, fs.ErrNotExist):
			path = ""
		default:
			return nil, "", loadErr
		}
	}

	if envErr := cfg.ApplyEnv(lookupEnv); envErr != nil {
		return nil, path, envErr
	}
	if valErr := cfg.Validate(); valErr != nil {
		return nil, path, fmt.Errorf("invalid configuration: %w", valErr)
	}
	return cfg, path, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
