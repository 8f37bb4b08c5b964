// Package config handles agendalink configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/logutil"
	"github.com/aidanlsb/agendalink/internal/settings"
)

// Config represents the agendalink configuration file.
type Config struct {
	// Agenda holds the pipeline options.
	Agenda AgendaConfig `toml:"agenda"`

	// Notes controls stub note creation.
	Notes NotesConfig `toml:"notes"`

	// Logging controls diagnostic output on stderr.
	Logging LoggingConfig `toml:"logging"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// AgendaConfig mirrors settings.Settings. Zero values mean "use the default".
type AgendaConfig struct {
	// DateFormat is YYYY-MM-DD, YYYYMMDD or none.
	DateFormat string `toml:"date_format"`

	// ReplacementChar is substituted for characters that are illegal in filenames.
	ReplacementChar string `toml:"replacement_char"`

	// MaxFilenameLength caps the title before the date is appended.
	MaxFilenameLength int `toml:"max_filename_length"`

	// UserName enables one-on-one normalization.
	UserName string `toml:"user_name"`
}

// NotesConfig controls stub note creation.
type NotesConfig struct {
	Dir    string `toml:"dir"`
	Create bool   `toml:"create"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Settings converts the agenda section into validated pipeline settings.
func (c *Config) Settings() (settings.Settings, error) {
	s := settings.Defaults()

	if v := strings.TrimSpace(c.Agenda.DateFormat); v != "" {
		f, err := dates.ParseFormat(v)
		if err != nil {
			return s, fmt.Errorf("agenda.date_format: %w", err)
		}
		s.DateFormat = f
	}
	if c.Agenda.ReplacementChar != "" {
		s.ReplacementChar = c.Agenda.ReplacementChar
	}
	if c.Agenda.MaxFilenameLength != 0 {
		s.MaxFilenameLength = c.Agenda.MaxFilenameLength
	}
	s.UserName = strings.TrimSpace(c.Agenda.UserName)

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate reports the first invalid value in the file.
func (c *Config) Validate() error {
	if _, err := c.Settings(); err != nil {
		return err
	}
	if lvl := strings.TrimSpace(c.Logging.Level); lvl != "" {
		if _, err := logutil.ParseLevel(lvl); err != nil {
			return err
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q (expected text or json)", c.Logging.Format)
	}
	return nil
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadOptional(DefaultPath())
}

// LoadOptional loads path, returning an empty config when it does not exist.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/agendalink/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if p, err := XDGPath(); err == nil {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "agendalink", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/agendalink/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "agendalink", "config.toml"), nil
}

const defaultConfig = `# agendalink configuration

[agenda]
# Date appended to every title: "YYYY-MM-DD", "YYYYMMDD" or "none".
date_format = "YYYY-MM-DD"

# Substituted for characters that are illegal in filenames.
replacement_char = "-"

# Titles are cut to this many characters before the date is appended.
max_filename_length = 200

# Your name, as it appears in calendar entries. Enables one-on-one
# normalization ("Jacob / Shawn" -> "Jacob one-on-one").
# user_name = "Shawn"

[notes]
# Where --create-notes writes stub notes.
# dir = "~/notes/meetings"
# create = false

[logging]
# level = "info"
# format = "text"

# Optional UI accent color. Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

// CreateDefault creates a default config file at path if it doesn't exist.
// It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
