// Package agenda runs the full agenda-to-links pipeline.
//
// raw lines → drop noise → normalize one-on-ones → sanitize → append date →
// wrap as [[link]] → merge same-person/same-day titles.
//
// A Pipeline is configured once and can be reused; each call to Process works on
// freshly allocated state.
package agenda

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aidanlsb/agendalink/internal/classify"
	"github.com/aidanlsb/agendalink/internal/combine"
	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/filename"
	"github.com/aidanlsb/agendalink/internal/logutil"
	"github.com/aidanlsb/agendalink/internal/oneonone"
	"github.com/aidanlsb/agendalink/internal/settings"
	"github.com/aidanlsb/agendalink/internal/wikilink"
)

// Status summarizes the outcome of a run for the caller to report.
type Status int

const (
	// StatusEmptySelection means there was no input at all.
	StatusEmptySelection Status = iota
	// StatusNothingProduced means every line was filtered out.
	StatusNothingProduced
	// StatusCreated means at least one title was produced.
	StatusCreated
)

// Code returns a stable machine-readable code for s.
func (s Status) Code() string {
	switch s {
	case StatusEmptySelection:
		return "NOTHING_TO_PROCESS"
	case StatusNothingProduced:
		return "NOTHING_PRODUCED"
	default:
		return "CREATED"
	}
}

// SkippedLine records a dropped input line.
type SkippedLine struct {
	Line   int // 1-indexed position in the input
	Text   string
	Reason classify.Reason
}

// Result is the output of one pipeline run.
type Result struct {
	// Titles are the final [[...]] links in output order.
	Titles []string

	// Candidates are the links before merging, in input order.
	Candidates []string

	// Skipped are the noise lines that were dropped.
	Skipped []SkippedLine

	// Merged are the groups that were combined into a single title.
	Merged []combine.Group

	// DateSource is the date stamped on titles ("" when dates are disabled),
	// and FromReference reports whether it came from the reference filename.
	DateSource    string
	FromReference bool

	Status Status
}

// Message returns the user-facing status line.
func (r Result) Message() string {
	switch r.Status {
	case StatusEmptySelection:
		return "No text selected"
	case StatusNothingProduced:
		return "No valid lines to convert"
	default:
		n := len(r.Titles)
		if n == 1 {
			return "Created 1 note link"
		}
		return fmt.Sprintf("Created %d note links", n)
	}
}

// Text returns the titles joined one per line, ready to replace the selection.
func (r Result) Text() string {
	return strings.Join(r.Titles, "\n")
}

// Pipeline turns agenda lines into note links.
type Pipeline struct {
	Settings settings.Settings

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// Logger receives debug traces of each stage. Defaults to a discarding logger.
	Logger *slog.Logger

	// SkipCombine disables the final merge step.
	SkipCombine bool
}

// New returns a pipeline for s using the real clock.
func New(s settings.Settings, logger *slog.Logger) *Pipeline {
	return &Pipeline{Settings: s, Clock: time.Now, Logger: logger}
}

// ProcessText splits a selection on newlines and processes it.
func (p *Pipeline) ProcessText(selection, reference string) Result {
	if selection == "" {
		return p.Process(nil, reference)
	}
	return p.Process(strings.Split(selection, "\n"), reference)
}

// Process runs the pipeline over lines. reference is an optional filename whose
// embedded date, if any, is stamped on every title instead of today's date.
func (p *Pipeline) Process(lines []string, reference string) Result {
	log := p.logger()

	if len(lines) == 0 {
		return Result{Status: StatusEmptySelection}
	}

	var res Result
	normalizer := oneonone.New(p.Settings.UserName)
	sanitizeOpts := p.Settings.SanitizeOptions()

	now := p.now()
	if p.Settings.DatesEnabled() {
		d, fromRef := dates.ReferenceDate(reference, now)
		res.DateSource = dates.FormatDate(p.Settings.DateFormat, d)
		res.FromReference = fromRef
		log.Debug("date source resolved", "date", res.DateSource, "from_reference", fromRef, "reference", reference)
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if reason, skip := classify.Classify(line); skip {
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Text: line, Reason: reason})
			log.Debug("line skipped", "line", i+1, "reason", string(reason), "text", line)
			continue
		}

		normalized := normalizer.Apply(line)
		if normalized.Matched {
			log.Debug("one-on-one normalized", "line", i+1, "matcher", normalized.Matcher, "title", normalized.Title)
		}

		title := filename.Sanitize(normalized.Title, sanitizeOpts)
		if p.Settings.DatesEnabled() {
			title = dates.AppendDate(title, p.Settings.DateFormat, reference, now)
		}
		res.Candidates = append(res.Candidates, wikilink.Wrap(title))
	}

	if len(res.Candidates) == 0 {
		res.Status = StatusNothingProduced
		return res
	}

	if p.SkipCombine {
		res.Titles = append([]string(nil), res.Candidates...)
	} else {
		res.Merged = combine.Groups(res.Candidates)
		res.Titles = combine.Combine(res.Candidates)
		for _, g := range res.Merged {
			log.Debug("events combined", "person", g.Person, "date", g.Date, "count", len(g.Events))
		}
	}

	res.Status = StatusCreated
	return res
}

func (p *Pipeline) now() time.Time {
	if p.Clock != nil {
		return p.Clock()
	}
	return time.Now()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logutil.Discard()
}
