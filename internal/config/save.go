package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/agendalink/internal/atomicfile"
	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/filename"
	"github.com/aidanlsb/agendalink/internal/settings"
)

type persistedConfig struct {
	Agenda  *persistedAgenda  `toml:"agenda,omitempty"`
	Notes   *persistedNotes   `toml:"notes,omitempty"`
	Logging *persistedLogging `toml:"logging,omitempty"`
	UI      *persistedUI      `toml:"ui,omitempty"`
}

type persistedAgenda struct {
	DateFormat        *string `toml:"date_format,omitempty"`
	ReplacementChar   *string `toml:"replacement_char,omitempty"`
	MaxFilenameLength *int    `toml:"max_filename_length,omitempty"`
	UserName          *string `toml:"user_name,omitempty"`
}

type persistedNotes struct {
	Dir    *string `toml:"dir,omitempty"`
	Create *bool   `toml:"create,omitempty"`
}

type persistedLogging struct {
	Level  *string `toml:"level,omitempty"`
	Format *string `toml:"format,omitempty"`
}

type persistedUI struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// The replacement character may legitimately be a space, so it is not trimmed.
func rawPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// SaveTo writes the config to a specific path atomically. Empty values are
// omitted so that defaults keep applying.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	var out persistedConfig

	agenda := persistedAgenda{
		DateFormat:      nonEmptyPtr(cfg.Agenda.DateFormat),
		ReplacementChar: rawPtr(cfg.Agenda.ReplacementChar),
		UserName:        nonEmptyPtr(cfg.Agenda.UserName),
	}
	if cfg.Agenda.MaxFilenameLength != 0 {
		n := cfg.Agenda.MaxFilenameLength
		agenda.MaxFilenameLength = &n
	}
	if agenda != (persistedAgenda{}) {
		out.Agenda = &agenda
	}

	notes := persistedNotes{Dir: nonEmptyPtr(cfg.Notes.Dir)}
	if cfg.Notes.Create {
		create := true
		notes.Create = &create
	}
	if notes != (persistedNotes{}) {
		out.Notes = &notes
	}

	logging := persistedLogging{
		Level:  nonEmptyPtr(cfg.Logging.Level),
		Format: nonEmptyPtr(cfg.Logging.Format),
	}
	if logging != (persistedLogging{}) {
		out.Logging = &logging
	}

	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUI{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// setters maps dotted keys to validating assignments.
var setters = map[string]func(*Config, string) error{
	"agenda.date_format": func(c *Config, v string) error {
		f, err := dates.ParseFormat(v)
		if err != nil {
			return err
		}
		c.Agenda.DateFormat = string(f)
		return nil
	},
	"agenda.replacement_char": func(c *Config, v string) error {
		if err := settings.ValidateReplacementChar(v); err != nil {
			return err
		}
		c.Agenda.ReplacementChar = v
		return nil
	},
	"agenda.max_filename_length": func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return fmt.Errorf("expected a positive number, got %q", v)
		}
		if n < filename.MinLength {
			return fmt.Errorf("must be at least %d, got %d", filename.MinLength, n)
		}
		c.Agenda.MaxFilenameLength = n
		return nil
	},
	"agenda.user_name": func(c *Config, v string) error {
		c.Agenda.UserName = strings.TrimSpace(v)
		return nil
	},
	"notes.dir": func(c *Config, v string) error {
		c.Notes.Dir = strings.TrimSpace(v)
		return nil
	},
	"notes.create": func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		c.Notes.Create = b
		return nil
	},
	"logging.level": func(c *Config, v string) error {
		c.Logging.Level = strings.TrimSpace(v)
		return nil
	},
	"logging.format": func(c *Config, v string) error {
		c.Logging.Format = strings.TrimSpace(v)
		return nil
	},
	"ui.accent": func(c *Config, v string) error {
		c.UI.Accent = strings.TrimSpace(v)
		return nil
	},
}

// Keys returns every key accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to the dotted key (for example "agenda.user_name").
func (c *Config) Set(key, value string) error {
	set, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// Unset clears the dotted key so that its default applies again.
func (c *Config) Unset(key string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "agenda.date_format":
		c.Agenda.DateFormat = ""
	case "agenda.replacement_char":
		c.Agenda.ReplacementChar = ""
	case "agenda.max_filename_length":
		c.Agenda.MaxFilenameLength = 0
	case "agenda.user_name":
		c.Agenda.UserName = ""
	case "notes.dir":
		c.Notes.Dir = ""
	case "notes.create":
		c.Notes.Create = false
	case "logging.level":
		c.Logging.Level = ""
	case "logging.format":
		c.Logging.Format = ""
	case "ui.accent":
		c.UI.Accent = ""
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}
