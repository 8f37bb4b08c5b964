// Package selection extracts and replaces a range of lines in a document.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive, 1-indexed span of lines.
type Range struct {
	Start int
	End   int
}

// ParseRange parses "A:B", "A:" (to end of file), ":B" (from the start) or "A".
// A zero End means "through the last line".
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty line range")
	}

	startStr, endStr, hasColon := strings.Cut(s, ":")
	if !hasColon {
		endStr = startStr
	}

	r := Range{Start: 1}
	if startStr != "" {
		n, err := strconv.Atoi(strings.TrimSpace(startStr))
		if err != nil || n < 1 {
			return Range{}, fmt.Errorf("invalid start line %q", startStr)
		}
		r.Start = n
	}
	if endStr != "" {
		n, err := strconv.Atoi(strings.TrimSpace(endStr))
		if err != nil || n < 1 {
			return Range{}, fmt.Errorf("invalid end line %q", endStr)
		}
		r.End = n
	}
	if r.End != 0 && r.End < r.Start {
		return Range{}, fmt.Errorf("line range %d:%d ends before it starts", r.Start, r.End)
	}
	return r, nil
}

func (r Range) String() string {
	if r.End == 0 {
		return fmt.Sprintf("%d:", r.Start)
	}
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// Document is file content split into lines.
type Document struct {
	lines           []string
	trailingNewline bool
}

// Parse splits content into lines, remembering whether it ended with a newline.
func Parse(content string) *Document {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	doc := &Document{}
	if content == "" {
		return doc
	}
	doc.trailingNewline = strings.HasSuffix(content, "\n")
	doc.lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	return doc
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// resolve clamps r to the document and returns zero-based bounds [lo, hi).
func (d *Document) resolve(r Range) (int, int, error) {
	if r.Start > len(d.lines) {
		return 0, 0, fmt.Errorf("line %d is past the end of the file (%d lines)", r.Start, len(d.lines))
	}
	hi := r.End
	if hi == 0 || hi > len(d.lines) {
		hi = len(d.lines)
	}
	return r.Start - 1, hi, nil
}

// Lines returns the lines covered by r.
func (d *Document) Lines(r Range) ([]string, error) {
	lo, hi, err := d.resolve(r)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), d.lines[lo:hi]...), nil
}

// Replace swaps the lines covered by r for replacement and returns the new content.
func (d *Document) Replace(r Range, replacement []string) (string, error) {
	lo, hi, err := d.resolve(r)
	if err != nil {
		return "", err
	}

	out := make([]string, 0, len(d.lines)-(hi-lo)+len(replacement))
	out = append(out, d.lines[:lo]...)
	out = append(out, replacement...)
	out = append(out, d.lines[hi:]...)

	content := strings.Join(out, "\n")
	if d.trailingNewline && len(out) > 0 {
		content += "\n"
	}
	return content, nil
}
