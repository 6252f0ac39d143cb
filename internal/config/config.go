package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/moasq/mkchoice/internal/terminal"
)

// EnvPath names the environment variable that overrides the config file path.
const EnvPath = "MKCHOICE_CONFIG"

// Config holds the user's defaults. Command-line flags take precedence.
type Config struct {
	// Prompt is shown above the options.
	Prompt string `yaml:"prompt"`

	// Vanish erases the picker from the terminal once a choice is made.
	Vanish bool `yaml:"vanish"`

	// Highlight names the color of the selected option (see terminal.ColorNames).
	Highlight string `yaml:"highlight"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Path is the file the config was read from, empty when defaults are used.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prompt:    "Choose one:",
		Highlight: "green",
		LogLevel:  "warn",
	}
}

// DefaultPath returns the config file location: $MKCHOICE_CONFIG if set,
// otherwise mkchoice/config.yaml under the user config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "mkchoice", "config.yaml"), nil
}

// Load reads the config file at path, or at DefaultPath if path is empty.
// A missing file is not an error; the defaults are returned.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Validate checks that named values are recognized.
func (c *Config) Validate() error {
	if _, ok := terminal.ColorByName(c.Highlight); !ok {
		return fmt.Errorf("unknown highlight color %q (want one of %v)", c.Highlight, terminal.ColorNames())
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// HighlightSeq returns the escape sequence for the configured highlight color,
// falling back to green.
func (c *Config) HighlightSeq() string {
	if seq, ok := terminal.ColorByName(c.Highlight); ok {
		return seq
	}
	return terminal.Green
}
