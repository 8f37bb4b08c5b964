// Package oneonone rewrites "me vs. someone" meeting lines into a consistent title.
//
// Calendars name one-on-ones in many ways: "Jacob / Shawn", "Shawn <> Jacob",
// "Jacob/Shawn 1:1". Seen from Shawn's side, all of these are "Jacob one-on-one".
// Anything after the pair ("Jacob <> Shawn Intro") replaces the default suffix.
package oneonone

import (
	"regexp"
	"strings"

	"github.com/aidanlsb/agendalink/internal/match"
)

// DefaultSuffix is appended when the meeting line carries no suffix of its own.
const DefaultSuffix = "one-on-one"

const (
	// MatcherUserFirst matches "{user} / {other} [1:1] [suffix]".
	MatcherUserFirst = "user-first"
	// MatcherUserSecond matches "{other} / {user} [1:1] [suffix]".
	MatcherUserSecond = "user-second"
)

const (
	separator = `(?P<sep>[/<>]+)`
	marker    = `(?P<marker>\s+1:1)?`
	suffix    = `\s*(?P<suffix>.*)$`
)

// strayMarker finds a 1:1 token that the user-first shape left in its suffix
// because the other person's name ran past one word.
var strayMarker = match.New("stray-marker", `(?:^|\s+)1:1(?:\s+|$)`)

// Matchers returns the one-on-one matchers for userName in priority order.
// It returns nil when userName is blank.
func Matchers(userName string) match.Chain {
	name := strings.TrimSpace(userName)
	if name == "" {
		return nil
	}
	quoted := regexp.QuoteMeta(name)

	// The other person in the user-first shape is one word, optionally
	// hyphen-joined; everything after it is marker or suffix.
	userFirst := match.New(MatcherUserFirst,
		`(?i)^\s*`+quoted+`\s*`+separator+`\s*(?P<other>\w+(?:-\w+)*)`+marker+suffix)

	userSecond := match.New(MatcherUserSecond,
		`(?i)^\s*(?P<other>[\w\s]+?)\s*`+separator+`\s*`+quoted+marker+suffix)

	return match.Chain{userFirst, userSecond}
}

// Result describes a normalization.
type Result struct {
	Title       string
	OtherPerson string
	Suffix      string
	Matcher     string
	Matched     bool
}

// Normalizer holds the compiled matchers for one user name.
type Normalizer struct {
	chain match.Chain
}

// New builds a Normalizer for userName. A blank name yields a Normalizer that
// never rewrites anything.
func New(userName string) *Normalizer {
	return &Normalizer{chain: Matchers(userName)}
}

// Enabled reports whether the normalizer can rewrite lines at all.
func (n *Normalizer) Enabled() bool {
	return n != nil && len(n.chain) > 0
}

// Apply normalizes line and reports which shape matched, if any.
func (n *Normalizer) Apply(line string) Result {
	if !n.Enabled() {
		return Result{Title: line}
	}

	m, c, ok := n.chain.First(line)
	if !ok {
		return Result{Title: line}
	}

	other := strings.TrimSpace(c.Get("other"))
	sfx := strings.TrimSpace(c.Get("suffix"))
	if m.Name == MatcherUserFirst && c.Get("marker") == "" {
		if mk, found := strayMarker.Match(sfx); found {
			if rest := strings.TrimSpace(sfx[:mk.Start]); rest != "" {
				other += " " + rest
			}
			sfx = strings.TrimSpace(sfx[mk.End:])
		}
	}
	title := other + " " + DefaultSuffix
	if sfx != "" {
		title = other + " " + sfx
	}

	return Result{
		Title:       title,
		OtherPerson: other,
		Suffix:      sfx,
		Matcher:     m.Name,
		Matched:     true,
	}
}

// Apply is a one-shot form of New(userName).Apply(line).
func Apply(line, userName string) Result {
	return New(userName).Apply(line)
}

// Normalize returns the normalized title for line, or line unchanged when it is
// not a one-on-one with userName (or userName is blank).
func Normalize(line, userName string) string {
	return Apply(line, userName).Title
}
