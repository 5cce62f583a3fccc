package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlite "go.riyazali.net/sqlite-collate"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("database", DefaultDatabase, "")
	flags.Int("width", sqlite.DefaultColumnWidth, "")
	flags.String("locale", DefaultLocale, "")
	flags.String("strength", DefaultStrength, "")
	flags.Bool("ignore-whitespace", true, "")
	flags.String("output", DefaultOutput, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	opts := cfg.CollatorOptions()
	assert.Equal(t, "ja", opts.Locale)
	assert.Equal(t, sqlite.Primary, opts.Strength)
	assert.True(t, opts.IgnoreWhitespace)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlite-collate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: de\nwidth: 20\noutput: pretty\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, OutputPretty, cfg.Output)
	assert.Equal(t, DefaultDatabase, cfg.Database)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlite-collate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: de\nstrength: secondary\ndatabase: file.db\n"), 0o600))

	t.Setenv("SQLITE_COLLATE_LOCALE", "fr")
	t.Setenv("SQLITE_COLLATE_IGNORE_WHITESPACE", "false")

	cfg, err := Load(path, testFlags(t, "--locale", "sv", "--width", "8"))
	require.NoError(t, err)

	assert.Equal(t, "sv", cfg.Locale)          // flag over env and file
	assert.Equal(t, 8, cfg.Width)              // flag over default
	assert.False(t, cfg.IgnoreWhitespace)      // env over default
	assert.Equal(t, "secondary", cfg.Strength) // file over default
	assert.Equal(t, "file.db", cfg.Database)   // unset flags keep the file value
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"database":  func(c *Config) { c.Database = "" },
		"width":     func(c *Config) { c.Width = 0 },
		"collation": func(c *Config) { c.Collation = "" },
		"strength":  func(c *Config) { c.Strength = "loud" },
		"output":    func(c *Config) { c.Output = "xml" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestLoadRejectsInvalidFlag(t *testing.T) {
	_, err := Load("", testFlags(t, "--output", "xml"))
	assert.ErrorContains(t, err, "unknown output format")
}
