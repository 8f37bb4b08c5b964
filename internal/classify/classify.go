// Package classify decides which pasted agenda lines are noise.
//
// Calendar exports interleave event titles with time ranges, locations,
// conferencing links and equipment notices. Those lines never become notes.
package classify

import (
	"strings"

	"github.com/aidanlsb/agendalink/internal/match"
)

// Reason names the rule that caused a line to be skipped.
type Reason string

const (
	ReasonEmpty     Reason = "empty"
	ReasonAllDay    Reason = "all-day"
	ReasonHeadset   Reason = "headset"
	ReasonTimeRange Reason = "time-range"
	ReasonLocation  Reason = "location"
	ReasonURL       Reason = "url"
)

const timeRange = `\d{1,2}(:\d{2})?\s*(am|pm)?\s*[–-]\s*\d{1,2}(:\d{2})?`

var (
	// A bare range ("7 – 8:05am", "9 - 10"), or a range trailing a short label
	// ("Lunch 12 – 1pm"). A labelled range must end in am/pm so titles like
	// "Team 1-2" survive.
	timeRangeMatchers = match.Chain{
		match.New(string(ReasonTimeRange), `(?i)^`+timeRange+`\s*(am|pm)?$`),
		match.New(string(ReasonTimeRange), `(?i)^[\w ]*\s`+timeRange+`\s*(am|pm)$`),
	}

	// "Phoenix, AZ", "Salt Lake City, UT".
	locationMatcher = match.New(string(ReasonLocation), `^[\w\s]+,\s+[A-Z]{2}$`)

	urlMatcher = match.New(string(ReasonURL), `https?://`)
)

type rule struct {
	reason Reason
	test   func(trimmed string) bool
}

var rules = []rule{
	{ReasonEmpty, func(s string) bool { return s == "" }},
	{ReasonAllDay, func(s string) bool { return strings.EqualFold(s, "all day") }},
	{ReasonHeadset, func(s string) bool { return strings.Contains(strings.ToLower(s), "headset") }},
	{ReasonTimeRange, timeRangeMatchers.Any},
	{ReasonLocation, locationMatcher.Test},
	{ReasonURL, urlMatcher.Test},
}

// Classify reports whether line is noise and, if so, the first rule that matched.
func Classify(line string) (Reason, bool) {
	trimmed := strings.TrimSpace(line)
	for _, r := range rules {
		if r.test(trimmed) {
			return r.reason, true
		}
	}
	return "", false
}

// ShouldSkip reports whether line should be dropped before any further processing.
func ShouldSkip(line string) bool {
	_, skip := Classify(line)
	return skip
}
