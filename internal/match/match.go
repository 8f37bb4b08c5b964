// Package match provides small named matchers over single lines of text.
//
// Each matcher wraps one compiled pattern and reports its captures by name, so
// callers can express precedence ("try this shape, then that one") in code
// rather than by stacking alternations into a single expression.
package match

import (
	"regexp"
)

// Captures holds the named groups of a successful match.
//
// Groups that did not participate in the match are reported as empty strings.
type Captures struct {
	// Text is the full matched substring.
	Text string

	// Start and End are the byte offsets of the full match in the input.
	Start int
	End   int

	groups map[string]string
}

// Get returns the named group, or "" when it did not participate.
func (c Captures) Get(name string) string {
	return c.groups[name]
}

// Has reports whether the named group captured a non-empty value.
func (c Captures) Has(name string) bool {
	return c.groups[name] != ""
}

// Matcher is a named pattern.
type Matcher struct {
	Name string
	re   *regexp.Regexp
}

// New compiles a matcher. It panics if pattern is invalid, like regexp.MustCompile.
func New(name, pattern string) *Matcher {
	return &Matcher{Name: name, re: regexp.MustCompile(pattern)}
}

// Test reports whether the matcher matches anywhere in s.
func (m *Matcher) Test(s string) bool {
	return m.re.MatchString(s)
}

// Match returns the first (leftmost) match in s.
func (m *Matcher) Match(s string) (Captures, bool) {
	loc := m.re.FindStringSubmatchIndex(s)
	if loc == nil {
		return Captures{}, false
	}

	c := Captures{
		Text:   s[loc[0]:loc[1]],
		Start:  loc[0],
		End:    loc[1],
		groups: make(map[string]string),
	}
	for i, name := range m.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		if loc[2*i] < 0 {
			continue
		}
		c.groups[name] = s[loc[2*i]:loc[2*i+1]]
	}
	return c, true
}

// String returns the underlying pattern.
func (m *Matcher) String() string {
	return m.re.String()
}

// Chain is an ordered list of matchers. Earlier matchers take priority.
type Chain []*Matcher

// First returns the first matcher in the chain that matches s, with its captures.
func (ch Chain) First(s string) (*Matcher, Captures, bool) {
	for _, m := range ch {
		if c, ok := m.Match(s); ok {
			return m, c, true
		}
	}
	return nil, Captures{}, false
}

// Any reports whether any matcher in the chain matches s.
func (ch Chain) Any(s string) bool {
	_, _, ok := ch.First(s)
	return ok
}
