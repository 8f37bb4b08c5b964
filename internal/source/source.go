// Package source turns input documents into raw agenda lines.
package source

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aidanlsb/agendalink/internal/ics"
)

// Format identifies how an input document is read.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatICS      Format = "ics"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatMarkdown, FormatICS}

// ParseFormat parses a --from value. Common aliases are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "ics", "ical", "icalendar":
		return FormatICS, nil
	}
	return "", fmt.Errorf("unknown input format %q (expected text, markdown, or ics)", s)
}

// Detect guesses the format from a file extension, defaulting to text.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".ics", ".ical":
		return FormatICS
	default:
		return FormatText
	}
}

// Options carries what the calendar reader needs.
type Options struct {
	// Day selects which calendar day is read from an ICS file. Its location is
	// used for floating times.
	Day time.Time

	Logger *slog.Logger
}

// Lines reads content in the given format and returns its agenda lines.
func Lines(format Format, content []byte, opts Options) ([]string, error) {
	switch format {
	case FormatText, "":
		return TextLines(string(content)), nil
	case FormatMarkdown:
		return MarkdownLines(content), nil
	case FormatICS:
		day := opts.Day
		if day.IsZero() {
			day = time.Now()
		}
		events, err := ics.Parse(content, day.Location(), opts.Logger)
		if err != nil {
			return nil, err
		}
		return ics.Lines(ics.OccurrencesOn(events, day, opts.Logger)), nil
	}
	return nil, fmt.Errorf("unsupported input format %q", format)
}

// TextLines splits plain text on newlines. A trailing newline does not add an
// empty final line.
func TextLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
