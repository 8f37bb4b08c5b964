package settings

import (
	"testing"

	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/filename"
)

func TestDefaultsAreValid(t *testing.T) {
	s := Defaults()
	if err := s.Validate(); err != nil {
		t.Fatalf("Defaults().Validate(): %v", err)
	}
	if s.OneOnOneEnabled() {
		t.Fatalf("expected one-on-one normalization to be off without a user name")
	}
	if !s.DatesEnabled() {
		t.Fatalf("expected dates to be on by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"underscore replacement", func(s *Settings) { s.ReplacementChar = "_" }, false},
		{"unicode replacement", func(s *Settings) { s.ReplacementChar = "·" }, false},
		{"empty replacement", func(s *Settings) { s.ReplacementChar = "" }, true},
		{"two char replacement", func(s *Settings) { s.ReplacementChar = "--" }, true},
		{"illegal replacement", func(s *Settings) { s.ReplacementChar = "/" }, true},
		{"pipe replacement", func(s *Settings) { s.ReplacementChar = "|" }, true},
		{"zero length", func(s *Settings) { s.MaxFilenameLength = 0 }, true},
		{"negative length", func(s *Settings) { s.MaxFilenameLength = -5 }, true},
		{"shorter than fallback", func(s *Settings) { s.MaxFilenameLength = filename.MinLength - 1 }, true},
		{"fallback fits exactly", func(s *Settings) { s.MaxFilenameLength = filename.MinLength }, false},
		{"none format", func(s *Settings) { s.DateFormat = dates.FormatNone }, false},
		{"unknown format", func(s *Settings) { s.DateFormat = "MM/DD" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeOptions(t *testing.T) {
	s := Settings{ReplacementChar: "_", MaxFilenameLength: 42}
	opts := s.SanitizeOptions()
	if opts.Replacement != "_" || opts.MaxLength != 42 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
