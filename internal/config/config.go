// Package config loads bindctl settings from an optional YAML file and
// BINDCTL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/openbindings/binding-go/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "BINDCTL_"

// maxFileSize bounds the config file read by Load.
const maxFileSize = 64 * 1024

// Config holds bindctl settings.
type Config struct {
	Log LogConfig `koanf:"log"`

	// Strict rejects unknown manifest fields and unsupported manifest
	// versions during validation.
	Strict bool `koanf:"strict"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Load reads the YAML file at path, if path is not empty, then applies
// environment overrides and defaults. A missing file is an error.
//
// Environment variables map to keys by dropping the prefix and splitting at
// the first underscore: BINDCTL_LOG_LEVEL sets log.level.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("config file %s is a directory", path)
		}
		if info.Size() > maxFileSize {
			return nil, fmt.Errorf("config file %s too large: %d bytes (max %d)", path, info.Size(), maxFileSize)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey maps BINDCTL_LOG_LEVEL to log.level and BINDCTL_STRICT to strict.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = logging.FormatConsole
	}
}

// Validate checks the log settings.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	if c.Log.Format != logging.FormatJSON && c.Log.Format != logging.FormatConsole {
		errs = append(errs, fmt.Errorf("log.format %q must be %q or %q", c.Log.Format, logging.FormatJSON, logging.FormatConsole))
	}
	return errors.Join(errs...)
}
