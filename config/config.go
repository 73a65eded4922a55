// Package config loads scribe's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration. The zero value is not valid; start from
// Default.
type Config struct {
	// Theme is the path of an FSS stylesheet. Empty uses the built-in look.
	Theme       string            `toml:"theme"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Status      StatusConfig      `toml:"status"`
	Split       SplitConfig       `toml:"split"`
	Log         LogConfig         `toml:"log"`
	Web         WebConfig         `toml:"web"`
}

type DiagnosticsConfig struct {
	Debounce   Duration `toml:"debounce"`
	TreeSitter bool     `toml:"tree_sitter"`
}

type StatusConfig struct {
	ClearAfter Duration `toml:"clear_after"`
}

type SplitConfig struct {
	Direction string `toml:"direction"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type WebConfig struct {
	// Addr serves the JSON-RPC bridge when set, e.g. ":8080".
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("200ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{
			Debounce:   Duration{200 * time.Millisecond},
			TreeSitter: true,
		},
		Status: StatusConfig{ClearAfter: Duration{3 * time.Second}},
		Split:  SplitConfig{Direction: "vertical"},
		Log: LogConfig{
			File:  defaultLogFile(),
			Level: "info",
		},
	}
}

// Path returns the config file location: $XDG_CONFIG_HOME/scribe/config.toml
// or ~/.config/scribe/config.toml.
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "scribe", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "scribe", "config.toml")
}

func defaultLogFile() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "scribe", "scribe.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "scribe", "scribe.log")
}

// Load reads the config at path over the defaults. An empty path means
// Path(); a missing file at the default location is not an error, but a
// missing explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Diagnostics.Debounce.Duration <= 0 {
		return fmt.Errorf("[diagnostics].debounce must be positive, got %s", c.Diagnostics.Debounce.Duration)
	}
	if c.Status.ClearAfter.Duration < 0 {
		return fmt.Errorf("[status].clear_after must not be negative, got %s", c.Status.ClearAfter.Duration)
	}
	switch strings.ToLower(c.Split.Direction) {
	case "", "vertical", "horizontal":
	default:
		return fmt.Errorf("[split].direction must be vertical or horizontal, got %q", c.Split.Direction)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses [log].level.
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	name := strings.TrimSpace(c.Log.Level)
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("[log].level: unknown level %q", c.Log.Level)
	}
	return level, nil
}
