package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvUserName          = "AGENDALINK_USER_NAME"
	EnvDateFormat        = "AGENDALINK_DATE_FORMAT"
	EnvReplacementChar   = "AGENDALINK_REPLACEMENT_CHAR"
	EnvMaxFilenameLength = "AGENDALINK_MAX_FILENAME_LENGTH"
	EnvNotesDir          = "AGENDALINK_NOTES_DIR"
	EnvLogLevel          = "AGENDALINK_LOG_LEVEL"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored and variables that are already set
// are left alone.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with any non-empty AGENDALINK_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvUserName); ok && strings.TrimSpace(v) != "" {
		c.Agenda.UserName = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDateFormat); ok && strings.TrimSpace(v) != "" {
		c.Agenda.DateFormat = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvReplacementChar); ok && v != "" {
		c.Agenda.ReplacementChar = v
	}
	if v, ok := lookup(EnvMaxFilenameLength); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvMaxFilenameLength, v)
		}
		c.Agenda.MaxFilenameLength = n
	}
	if v, ok := lookup(EnvNotesDir); ok && strings.TrimSpace(v) != "" {
		c.Notes.Dir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = strings.TrimSpace(v)
	}
	return nil
}
