// Package wikilink handles the [[...]] cross-reference syntax that agenda titles
// are emitted in.
//
// Wikilink grammar:
//
//	[[target]]
//	[[target|display text]]
//
// Produced titles never contain "|" (it is an illegal filename character), so
// only the plain form is ever written.
package wikilink

import "strings"

const (
	openBrackets  = "[["
	closeBrackets = "]]"
)

// Wrap returns target as a wikilink literal.
func Wrap(target string) string {
	return openBrackets + target + closeBrackets
}

// Unwrap strips a single leading "[[" and a single trailing "]]" when present.
// The two sides are handled independently, so "[[a" becomes "a".
func Unwrap(s string) string {
	s = strings.TrimPrefix(s, openBrackets)
	return strings.TrimSuffix(s, closeBrackets)
}

// IsWrapped reports whether s (ignoring surrounding whitespace) is a single
// wikilink literal.
func IsWrapped(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= len(openBrackets)+len(closeBrackets) && strings.HasPrefix(s, openBrackets) && strings.HasSuffix(s, closeBrackets)
}

// ParseExact parses a string that is exactly a wikilink literal, returning its
// target and optional display text.
func ParseExact(s string) (target string, display *string, ok bool) {
	if !IsWrapped(s) {
		return "", nil, false
	}
	inner := Unwrap(strings.TrimSpace(s))
	parts := strings.SplitN(inner, "|", 2)
	target = strings.TrimSpace(parts[0])
	if target == "" {
		return "", nil, false
	}
	if len(parts) == 2 {
		d := strings.TrimSpace(parts[1])
		display = &d
	}
	return target, display, true
}
