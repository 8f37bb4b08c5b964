// Package dates extracts and formats the dates appended to agenda titles.
//
// Two textual layouts are supported, dashed (2026-02-18) and compact (20260218).
// Extraction is structural only: the digits are not checked against a calendar,
// and out-of-range months or days roll over the way time.Date normalizes them.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/agendalink/internal/match"
)

// Format selects how a date is rendered in a title.
type Format string

const (
	FormatDashed  Format = "YYYY-MM-DD"
	FormatCompact Format = "YYYYMMDD"
	FormatNone    Format = "none"
)

// Go layouts for each Format.
const (
	DashedLayout  = "2006-01-02"
	CompactLayout = "20060102"
)

// Formats lists every accepted Format in display order.
var Formats = []Format{FormatDashed, FormatCompact, FormatNone}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid date format %q (want one of %s, %s, %s)", s, FormatDashed, FormatCompact, FormatNone)
}

// Valid reports whether f is one of the canonical Formats.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Layout returns the Go layout for f, or "" for FormatNone.
func (f Format) Layout() string {
	switch f {
	case FormatDashed:
		return DashedLayout
	case FormatCompact:
		return CompactLayout
	default:
		return ""
	}
}

var (
	dashedAnywhere  = match.New("dashed", `(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})`)
	compactAnywhere = match.New("compact", `(?P<year>\d{4})(?P<month>\d{2})(?P<day>\d{2})`)

	dashedAtEnd  = match.New("dashed-suffix", `(?P<date>\d{4}-\d{2}-\d{2})$`)
	compactAtEnd = match.New("compact-suffix", `(?P<date>\d{8})$`)

	// Dashed is tried before compact in both directions.
	anywhere = match.Chain{dashedAnywhere, compactAnywhere}
	atEnd    = match.Chain{dashedAtEnd, compactAtEnd}
)

// Extract finds the first date in filename, preferring the dashed form.
// The returned time is midnight in loc (time.Local when loc is nil).
func Extract(filename string, loc *time.Location) (time.Time, bool) {
	_, c, ok := anywhere.First(filename)
	if !ok {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	year, _ := strconv.Atoi(c.Get("year"))
	month, _ := strconv.Atoi(c.Get("month"))
	day, _ := strconv.Atoi(c.Get("day"))
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
}

// TrailingDate returns the date string at the very end of s (dashed first, then
// compact) and s with that date and any whitespace before it removed.
func TrailingDate(s string) (date string, rest string, ok bool) {
	_, c, ok := atEnd.First(s)
	if !ok {
		return "", s, false
	}
	date = c.Get("date")
	return date, strings.TrimSpace(s[:c.Start]), true
}

// FormatDate renders t using f. FormatNone renders as "".
func FormatDate(f Format, t time.Time) string {
	layout := f.Layout()
	if layout == "" {
		return ""
	}
	return t.Format(layout)
}

// ReferenceDate picks the date to stamp on titles: the date found in reference,
// if any, otherwise now.
func ReferenceDate(reference string, now time.Time) (time.Time, bool) {
	if reference != "" {
		if d, ok := Extract(reference, now.Location()); ok {
			return d, true
		}
	}
	return now, false
}

// AppendDate appends the reference (or current) date to title, separated by a
// single space.
func AppendDate(title string, f Format, reference string, now time.Time) string {
	d, _ := ReferenceDate(reference, now)
	return title + " " + FormatDate(f, d)
}

// ParseDateArg parses a CLI date argument which can be:
// - "today", "yesterday", "tomorrow" (relative to now)
// - "YYYY-MM-DD" or "YYYYMMDD"
// - Empty string defaults to today
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	dateArg := strings.ToLower(strings.TrimSpace(arg))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch dateArg {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	for _, layout := range []string{DashedLayout, CompactLayout} {
		if t, err := time.ParseInLocation(layout, dateArg, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date '%s', use YYYY-MM-DD, YYYYMMDD or today/yesterday/tomorrow", arg)
}
