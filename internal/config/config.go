// Package config loads the demo configuration.
//
// Precedence (highest to lowest): flags > environment > config file > defaults.
// Environment variables use the SQLITE_COLLATE_ prefix, e.g.
// SQLITE_COLLATE_LOCALE=de maps to the "locale" key.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	sqlite "go.riyazali.net/sqlite-collate"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SQLITE_COLLATE_"

// Defaults.
const (
	DefaultDatabase = "test.db"
	DefaultLocale   = "ja"
	DefaultStrength = "primary"
	DefaultOutput   = OutputTable
)

// Output formats.
const (
	OutputTable  = "table"
	OutputPretty = "pretty"
)

// Config holds every setting of the demo.
type Config struct {
	Database         string `koanf:"database"`
	Width            int    `koanf:"width"`
	Locale           string `koanf:"locale"`
	Strength         string `koanf:"strength"`
	IgnoreWhitespace bool   `koanf:"ignore_whitespace"`
	Numeric          bool   `koanf:"numeric"`
	Collation        string `koanf:"collation"`
	Output           string `koanf:"output"`
	Verbose          bool   `koanf:"verbose"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Database:         DefaultDatabase,
		Width:            sqlite.DefaultColumnWidth,
		Locale:           DefaultLocale,
		Strength:         DefaultStrength,
		IgnoreWhitespace: true,
		Collation:        sqlite.CollationName,
		Output:           DefaultOutput,
	}
}

func defaults() map[string]interface{} {
	var d = Default()
	return map[string]interface{}{
		"database":          d.Database,
		"width":             d.Width,
		"locale":            d.Locale,
		"strength":          d.Strength,
		"ignore_whitespace": d.IgnoreWhitespace,
		"numeric":           d.Numeric,
		"collation":         d.Collation,
		"output":            d.Output,
		"verbose":           d.Verbose,
	}
}

// Load reads defaults, the optional YAML file at cfgFile, the environment and
// any explicitly set flags, in that order. Flag names use kebab-case for
// snake_case keys (--ignore-whitespace sets ignore_whitespace).
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// SQLITE_COLLATE_IGNORE_WHITESPACE -> ignore_whitespace
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("config: database path must not be empty")
	}
	if c.Width < 1 {
		return fmt.Errorf("config: width must be at least 1, got %d", c.Width)
	}
	if c.Collation == "" {
		return fmt.Errorf("config: collation name must not be empty")
	}
	if _, err := sqlite.ParseStrength(c.Strength); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Output {
	case OutputTable, OutputPretty:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output)
	}
	return nil
}

// CollatorOptions returns the collator settings. Call Validate first.
func (c *Config) CollatorOptions() sqlite.CollatorOptions {
	var strength, _ = sqlite.ParseStrength(c.Strength)
	return sqlite.CollatorOptions{
		Locale:           c.Locale,
		Strength:         strength,
		IgnoreWhitespace: c.IgnoreWhitespace,
		Numeric:          c.Numeric,
	}
}
