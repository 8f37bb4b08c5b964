// Package filename turns arbitrary text into a note title that is safe to use as
// a filename on every common platform.
//
// Sanitize is idempotent whenever MaxLength is at least MinLength: feeding its
// output back in returns the same string.
package filename

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aidanlsb/agendalink/internal/wikilink"
)

// IllegalChars lists the characters that may not appear in a note title.
const IllegalChars = `[]#^|*"\/:?<>`

// Fallback is returned when nothing survives sanitization. It is never truncated.
const Fallback = "untitled"

// MinLength is the smallest MaxLength that can hold Fallback.
const MinLength = len(Fallback)

// Options controls sanitization.
type Options struct {
	// Replacement is substituted for each illegal character. It must be a single
	// character that is not itself illegal.
	Replacement string

	// MaxLength is the maximum title length in characters.
	MaxLength int
}

// IsIllegal reports whether r may not appear in a title.
func IsIllegal(r rune) bool {
	return strings.ContainsRune(IllegalChars, r)
}

// ContainsIllegal reports whether s contains any illegal character.
func ContainsIllegal(s string) bool {
	return strings.ContainsAny(s, IllegalChars)
}

// Sanitize returns a filename-safe version of text.
func Sanitize(text string, opts Options) string {
	rc := opts.Replacement

	s := strings.TrimSpace(text)
	s = wikilink.Unwrap(s)

	s = replaceIllegal(s, rc)
	s = collapseRuns(s, rc)
	s = trimEdges(s, rc)

	if s == "" {
		return Fallback
	}
	return truncate(s, opts.MaxLength, rc)
}

func replaceIllegal(s, rc string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsIllegal(r) {
			b.WriteString(rc)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// collapseRuns reduces any run of two or more rc to a single rc.
func collapseRuns(s, rc string) string {
	if rc == "" {
		return s
	}
	double := rc + rc
	for strings.Contains(s, double) {
		s = strings.ReplaceAll(s, double, rc)
	}
	return s
}

// trimEdges strips whitespace, dots and the replacement character from both ends
// until none of them remain at either edge.
func trimEdges(s, rc string) string {
	for {
		next := strings.TrimFunc(s, func(r rune) bool {
			return r == '.' || unicode.IsSpace(r)
		})
		if rc != "" {
			next = trimAll(next, rc)
		}
		if next == s {
			return s
		}
		s = next
	}
}

func trimAll(s, rc string) string {
	for strings.HasPrefix(s, rc) {
		s = strings.TrimPrefix(s, rc)
	}
	for strings.HasSuffix(s, rc) {
		s = strings.TrimSuffix(s, rc)
	}
	return s
}

// truncate caps s at max characters and cleans up the new right edge.
func truncate(s string, max int, rc string) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	s = string(runes[:max])
	return trimRight(s, rc)
}

func trimRight(s, rc string) string {
	for {
		next := strings.TrimRightFunc(s, func(r rune) bool {
			return r == '.' || unicode.IsSpace(r)
		})
		if rc != "" {
			for strings.HasSuffix(next, rc) {
				next = strings.TrimSuffix(next, rc)
			}
		}
		if next == s {
			return s
		}
		s = next
	}
}
