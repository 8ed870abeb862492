// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/glance/internal/constants"
)

// Config is the root configuration structure.
type Config struct {
	// TabWidth is the rendering stride for tab expansion. Defaults to 4.
	TabWidth int `toml:"tab_width"`
	// MaxLines and MaxLineLength cap what is loaded from a file. Zero
	// means unlimited.
	MaxLines      int `toml:"max_lines"`
	MaxLineLength int `toml:"max_line_length"`
	// EscapeTimeoutMs is the window for the bytes that follow ESC.
	EscapeTimeoutMs *int   `toml:"escape_timeout_ms"`
	Hint            string `toml:"hint"`

	Log     LogConfig     `toml:"log"`
	History HistoryConfig `toml:"history"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// File receives JSON log lines. Empty disables logging, since the
	// terminal itself is busy drawing the viewer.
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// LevelOrDefault returns the configured level or "info" if unset.
func (l LogConfig) LevelOrDefault() string {
	if l.Level == "" {
		return "info"
	}
	return l.Level
}

// HistoryConfig holds cursor-position history settings.
type HistoryConfig struct {
	Enabled       *bool  `toml:"enabled"`
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"`
}

// EnabledOrDefault reports whether history is on; it defaults to true.
func (h HistoryConfig) EnabledOrDefault() bool {
	if h.Enabled == nil {
		return true
	}
	return *h.Enabled
}

// RetentionOrDefault returns how long positions are kept, 90 days if unset.
func (h HistoryConfig) RetentionOrDefault() time.Duration {
	days := h.RetentionDays
	if days <= 0 {
		days = 90
	}
	return time.Duration(days) * 24 * time.Hour
}

// PathOrDefault returns the history database path, under DataDir if unset.
func (h HistoryConfig) PathOrDefault() (string, error) {
	if h.Path != "" {
		return h.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// TabWidthOrDefault returns the configured tab width or 4 if unset.
func (c *Config) TabWidthOrDefault() int {
	if c.TabWidth <= 0 {
		return constants.TabWidth
	}
	return c.TabWidth
}

// EscapeTimeout returns the ESC continuation window.
func (c *Config) EscapeTimeout() time.Duration {
	ms := constants.DefaultEscapeTimeoutMs
	if c.EscapeTimeoutMs != nil {
		ms = *c.EscapeTimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

// HintOrDefault returns the message bar text.
func (c *Config) HintOrDefault() string {
	if c.Hint == "" {
		return constants.DefaultHint
	}
	return c.Hint
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		_, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.TabWidth < 0 || c.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("tab_width=%d must be between 1 and 16", c.TabWidth))
	}
	if c.MaxLines < 0 {
		errs = append(errs, fmt.Errorf("max_lines=%d must not be negative", c.MaxLines))
	}
	if c.MaxLineLength < 0 {
		errs = append(errs, fmt.Errorf("max_line_length=%d must not be negative", c.MaxLineLength))
	}
	if c.EscapeTimeoutMs != nil && (*c.EscapeTimeoutMs < 0 || *c.EscapeTimeoutMs > 1000) {
		errs = append(errs, fmt.Errorf("escape_timeout_ms=%d must be between 0 and 1000", *c.EscapeTimeoutMs))
	}
	if _, err := zerolog.ParseLevel(c.Log.LevelOrDefault()); err != nil {
		errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
	}
	if c.History.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("history.retention_days=%d must not be negative", c.History.RetentionDays))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"GLANCE_LOG_FILE", func(v string) {
			if v != "" {
				cfg.Log.File = v
			}
		}},
		{"GLANCE_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"GLANCE_HISTORY", func(v string) {
			switch v {
			case "0", "false", "off":
				off := false
				cfg.History.Enabled = &off
			case "1", "true", "on":
				on := true
				cfg.History.Enabled = &on
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// Path returns the config file location: $GLANCE_CONFIG, or config.toml
// under DataDir.
func Path() (string, error) {
	if p := os.Getenv("GLANCE_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the path to the glance data directory (~/.config/glance).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "glance"), nil
}
