package cli

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/source"
)

func TestDateFormatValue(t *testing.T) {
	var v dateFormatValue
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&v, "date-format", "")

	if flagChanged(fs, "date-format") {
		t.Fatal("flag reported changed before parsing")
	}
	if err := fs.Parse([]string{"--date-format", "yyyymmdd"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.format != dates.FormatCompact {
		t.Fatalf("format = %q, want %q", v.format, dates.FormatCompact)
	}
	if !flagChanged(fs, "date-format") {
		t.Fatal("expected flag to be changed")
	}
	if err := v.Set("MM/DD"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSourceFormatValue(t *testing.T) {
	var v sourceFormatValue
	for in, want := range map[string]source.Format{
		"md":   source.FormatMarkdown,
		"ical": source.FormatICS,
		"txt":  source.FormatText,
	} {
		if err := v.Set(in); err != nil {
			t.Fatalf("Set(%q): %v", in, err)
		}
		if v.format != want {
			t.Fatalf("Set(%q) = %q, want %q", in, v.format, want)
		}
	}
	if err := v.Set("docx"); err == nil {
		t.Fatal("expected error for unknown source format")
	}
}

func TestFormatChoices(t *testing.T) {
	if got := formatChoices(dates.Formats); got != "(YYYY-MM-DD|YYYYMMDD|none)" {
		t.Fatalf("formatChoices = %q", got)
	}
	if flagChanged(pflag.NewFlagSet("x", pflag.ContinueOnError), "missing") {
		t.Fatal("missing flag reported changed")
	}
}
