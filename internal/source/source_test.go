package source

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "text", want: FormatText},
		{in: "MD", want: FormatMarkdown},
		{in: " ics ", want: FormatICS},
		{in: "icalendar", want: FormatICS},
		{in: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := map[string]Format{
		"daily/2026-02-18.md": FormatMarkdown,
		"agenda.MARKDOWN":     FormatMarkdown,
		"export.ics":          FormatICS,
		"paste.txt":           FormatText,
		"-":                   FormatText,
	}
	for path, want := range tests {
		if got := Detect(path); got != want {
			t.Errorf("Detect(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestTextLines(t *testing.T) {
	got := TextLines("Jacob / Shawn\r\nAll day\r\n")
	want := []string{"Jacob / Shawn", "All day"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TextLines = %#v, want %#v", got, want)
	}
	if TextLines("") != nil {
		t.Fatalf("expected nil for empty text")
	}
}

func TestMarkdownLines(t *testing.T) {
	content := strings.Join([]string{
		"---",
		"date: 2026-02-18",
		"---",
		"# Agenda",
		"",
		"- Jacob / Shawn",
		"- Lunch 12 – 1pm",
		"  - Nested item",
		"",
		"Quarterly planning",
		"Phoenix, AZ",
		"",
		"```",
		"not an event",
		"```",
		"",
		"    indented code",
		"",
		"> Design review",
		"",
	}, "\n")

	got := MarkdownLines([]byte(content))
	want := []string{
		"Jacob / Shawn",
		"Lunch 12 – 1pm",
		"Nested item",
		"Quarterly planning",
		"Phoenix, AZ",
		"Design review",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MarkdownLines = %#v, want %#v", got, want)
	}
}

func TestMarkdownKeepsUnclosedFrontmatter(t *testing.T) {
	got := stripFrontmatter("---\nStandup")
	if got != "---\nStandup" {
		t.Fatalf("stripFrontmatter = %q", got)
	}
}

func TestLinesICS(t *testing.T) {
	cal := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//agendalink//test//EN",
		"BEGIN:VEVENT",
		"UID:a",
		"SUMMARY:Design review",
		"DTSTART:20260218T150000Z",
		"DTEND:20260218T160000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	day := time.Date(2026, time.February, 18, 0, 0, 0, 0, time.UTC)
	got, err := Lines(FormatICS, []byte(cal), Options{Day: day})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Design review"}) {
		t.Fatalf("Lines = %#v", got)
	}
}

func TestLinesUnknownFormat(t *testing.T) {
	if _, err := Lines(Format("pdf"), []byte("x"), Options{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
