// Package combine merges same-person, same-day agenda titles into one.
//
// Titles are expected as "[[{Person} {description} {date}]]". Two titles with
// the same leading person name and the same trailing date become
// "[[{Person} {description A} and {description B} {date}]]", placed where the
// first one was. Everything else keeps its relative order.
package combine

import (
	"strings"

	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/match"
	"github.com/aidanlsb/agendalink/internal/wikilink"
)

// Separator joins the descriptions of merged events.
const Separator = " and "

// A single capitalized word, optionally hyphen-joined to a second one, then the rest.
var personMatcher = match.New("person", `^(?P<person>[A-Z][a-z]+(?:-[A-Z][a-z]+)?)\s+(?P<rest>.+)$`)

// Event is a title broken into its parts.
type Event struct {
	// Person is the leading capitalized name, or "" when none was recognized.
	Person string

	// Description is what remains after removing the person and the date.
	Description string

	// Date is the trailing YYYY-MM-DD or YYYYMMDD string, or "".
	Date string

	// Original is the title exactly as given.
	Original string

	// Index is the title's position in the input.
	Index int
}

// Key returns the grouping key and whether the event can be grouped at all.
// Events missing a person or a date are never merged.
func (e Event) Key() (string, bool) {
	if e.Person == "" || e.Date == "" {
		return "", false
	}
	return e.Person + "|" + e.Date, true
}

// Parse breaks title into an Event.
func Parse(title string, index int) Event {
	ev := Event{Original: title, Index: index}

	cleaned := strings.TrimSpace(wikilink.Unwrap(title))

	withoutDate := cleaned
	if date, rest, ok := dates.TrailingDate(cleaned); ok {
		ev.Date = date
		withoutDate = rest
	}

	if c, ok := personMatcher.Match(withoutDate); ok {
		ev.Person = c.Get("person")
		ev.Description = c.Get("rest")
		return ev
	}

	ev.Description = withoutDate
	return ev
}

// Group is a set of events sharing a person and a date, in input order.
type Group struct {
	Person string
	Date   string
	Events []Event
}

// Title returns the combined wikilink for the group.
func (g Group) Title() string {
	descriptions := make([]string, len(g.Events))
	for i, ev := range g.Events {
		descriptions[i] = ev.Description
	}
	return wikilink.Wrap(g.Person + " " + strings.Join(descriptions, Separator) + " " + g.Date)
}

// Removed returns how many titles merging g drops from the output.
func (g Group) Removed() int {
	return len(g.Events) - 1
}

// Groups parses titles and returns every group with two or more members, ordered
// by the index of each group's first member.
func Groups(titles []string) []Group {
	return group(parseAll(titles))
}

// Combine merges same-person, same-date titles. The output preserves the
// relative order of everything it keeps.
func Combine(titles []string) []string {
	events := parseAll(titles)
	groups := group(events)

	// Arena: slot index -> replacement, plus the set of indices to drop.
	replacement := make(map[int]string, len(groups))
	skip := make(map[int]struct{})
	for _, g := range groups {
		replacement[g.Events[0].Index] = g.Title()
		for _, ev := range g.Events[1:] {
			skip[ev.Index] = struct{}{}
		}
	}

	out := make([]string, 0, len(events))
	for i, ev := range events {
		if _, ok := skip[i]; ok {
			continue
		}
		if combined, ok := replacement[i]; ok {
			out = append(out, combined)
			continue
		}
		out = append(out, ev.Original)
	}
	return out
}

func parseAll(titles []string) []Event {
	events := make([]Event, len(titles))
	for i, title := range titles {
		events[i] = Parse(title, i)
	}
	return events
}

// group returns the multi-member groups in first-occurrence order.
func group(events []Event) []Group {
	byKey := make(map[string]*Group)
	var order []string

	for _, ev := range events {
		key, ok := ev.Key()
		if !ok {
			continue
		}
		g, exists := byKey[key]
		if !exists {
			g = &Group{Person: ev.Person, Date: ev.Date}
			byKey[key] = g
			order = append(order, key)
		}
		g.Events = append(g.Events, ev)
	}

	var out []Group
	for _, key := range order {
		if g := byKey[key]; len(g.Events) > 1 {
			out = append(out, *g)
		}
	}
	return out
}
