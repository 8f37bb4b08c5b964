// Package settings defines the per-invocation options of the agenda pipeline.
//
// A Settings value is built once (from config, environment and flags), validated
// here, and then passed by value into every stage. The stages themselves trust
// it and never re-validate.
package settings

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/filename"
)

// Defaults.
const (
	DefaultDateFormat        = dates.FormatDashed
	DefaultReplacementChar   = "-"
	DefaultMaxFilenameLength = 200
)

// Settings are the user-configurable pipeline options.
type Settings struct {
	// DateFormat controls the date suffix. FormatNone skips the date step.
	DateFormat dates.Format

	// ReplacementChar is substituted for illegal filename characters.
	ReplacementChar string

	// MaxFilenameLength caps the sanitized title, before the date is added.
	MaxFilenameLength int

	// UserName enables one-on-one normalization. Empty disables it.
	UserName string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		DateFormat:        DefaultDateFormat,
		ReplacementChar:   DefaultReplacementChar,
		MaxFilenameLength: DefaultMaxFilenameLength,
	}
}

// Validate checks every field and returns the first problem found.
func (s Settings) Validate() error {
	if !s.DateFormat.Valid() {
		return fmt.Errorf("invalid date format %q (want one of %s, %s, %s)",
			s.DateFormat, dates.FormatDashed, dates.FormatCompact, dates.FormatNone)
	}
	if err := ValidateReplacementChar(s.ReplacementChar); err != nil {
		return err
	}
	if s.MaxFilenameLength <= 0 {
		return fmt.Errorf("max filename length must be positive, got %d", s.MaxFilenameLength)
	}
	if s.MaxFilenameLength < filename.MinLength {
		return fmt.Errorf("max filename length must be at least %d, got %d", filename.MinLength, s.MaxFilenameLength)
	}
	return nil
}

// ValidateReplacementChar checks that c is exactly one character and not itself
// an illegal filename character.
func ValidateReplacementChar(c string) error {
	if utf8.RuneCountInString(c) != 1 {
		return fmt.Errorf("replacement character must be a single character, got %q", c)
	}
	if filename.ContainsIllegal(c) {
		return fmt.Errorf("replacement character %q is itself illegal in filenames (%s)", c, filename.IllegalChars)
	}
	return nil
}

// SanitizeOptions returns the sanitizer options implied by s.
func (s Settings) SanitizeOptions() filename.Options {
	return filename.Options{
		Replacement: s.ReplacementChar,
		MaxLength:   s.MaxFilenameLength,
	}
}

// DatesEnabled reports whether titles get a date suffix.
func (s Settings) DatesEnabled() bool {
	return s.DateFormat != dates.FormatNone
}

// OneOnOneEnabled reports whether one-on-one normalization is active.
func (s Settings) OneOnOneEnabled() bool {
	return strings.TrimSpace(s.UserName) != ""
}
