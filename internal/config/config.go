// Package config loads bigcalc settings from defaults, a TOML file and
// environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

const (
	// FileName is the configuration file searched for upward from the
	// working directory.
	FileName = "bigcalc.toml"
	// EnvPrefix prefixes every environment override, e.g. BIGCALC_WORKERS.
	EnvPrefix = "BIGCALC_"
)

// Notations understood by the evaluator.
const (
	NotationInfix   = "infix"
	NotationPostfix = "postfix"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds bigcalc settings.
type Config struct {
	Notation string `toml:"notation" env:"NOTATION"`
	Color    string `toml:"color" env:"COLOR"`
	// Group separates groups of three digits in printed results.
	// Empty disables grouping.
	Group string `toml:"group" env:"GROUP"`
	// Workers limits parallel batch evaluation. 0 means one per CPU.
	Workers int64 `toml:"workers" env:"WORKERS"`
	// History is the SQLite database path. Empty disables history.
	History  string `toml:"history" env:"HISTORY"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`

	// Path is the file the settings were read from, if any.
	Path string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Notation: NotationInfix,
		Color:    ColorAuto,
		LogLevel: logrus.InfoLevel.String(),
	}
}

// Find looks for [FileName] in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load builds the configuration.
// If path is empty, [FileName] is searched for upward from startDir and
// its absence is not an error.
func Load(path, startDir string) (Config, error) {
	cfg := Default()

	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
		cfg.Path = path
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Notation = strings.ToLower(strings.TrimSpace(cfg.Notation))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Notation {
	case NotationInfix, NotationPostfix:
	default:
		return fmt.Errorf("invalid notation %q (expected %s|%s)", c.Notation, NotationInfix, NotationPostfix)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q (expected %s|%s|%s)", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d (expected 0 or more)", c.Workers)
	}
	if _, err := safecast.Conv[int](c.Workers); err != nil {
		return fmt.Errorf("invalid workers %d: %w", c.Workers, err)
	}
	if strings.ContainsAny(c.Group, "0123456789-") {
		return fmt.Errorf("invalid group separator %q", c.Group)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// WorkerLimit returns the number of parallel workers to use.
func (c Config) WorkerLimit() int {
	n, err := safecast.Conv[int](c.Workers)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Level returns the configured log level, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
