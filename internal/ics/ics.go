// Package ics turns an iCalendar export into the agenda lines for one day.
//
// Recurring events are expanded with rrule-go. EXDATE removes instances and a
// VEVENT carrying RECURRENCE-ID replaces the instance it names.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/aidanlsb/agendalink/internal/logutil"
)

const (
	dateLayout     = "20060102"
	localLayout    = "20060102T150405"
	utcLayout      = "20060102T150405Z"
	statusCanceled = "CANCELLED"
)

// Event is a VEVENT before recurrence expansion.
type Event struct {
	UID      string
	Summary  string
	Start    time.Time
	End      time.Time
	AllDay   bool
	Canceled bool

	RRule   string
	ExDates []time.Time

	// RecurrenceID is set when this VEVENT overrides one instance of a series.
	RecurrenceID *time.Time
}

// Occurrence is one concrete instance of an event.
type Occurrence struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool
}

// Parse reads every VEVENT in body. Times without a zone are read in loc.
// Events that cannot be understood are logged and skipped.
func Parse(body []byte, loc *time.Location, logger *slog.Logger) ([]Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty calendar")
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logutil.Discard()
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var events []Event
	for _, ve := range cal.Events() {
		ev, err := parseEvent(ve, loc)
		if err != nil {
			logger.Warn("skipping calendar event", "uid", ev.UID, "summary", ev.Summary, "error", err)
			continue
		}
		events = append(events, ev)
	}
	logger.Debug("calendar parsed", "events", len(events))
	return events, nil
}

func parseEvent(ve *ical.VEvent, loc *time.Location) (Event, error) {
	var ev Event

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		ev.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		ev.Canceled = strings.EqualFold(strings.TrimSpace(p.Value), statusCanceled)
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return ev, errors.New("missing DTSTART")
	}
	ev.AllDay = isDateOnly(startProp)

	start, err := propTime(startProp, loc)
	if err != nil {
		return ev, fmt.Errorf("invalid DTSTART: %w", err)
	}
	if !ev.AllDay && hasZone(startProp) {
		if t, err := ve.GetStartAt(); err == nil {
			start = t
		}
	}
	ev.Start = start

	switch endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); {
	case endProp != nil:
		end, err := propTime(endProp, loc)
		if err != nil {
			return ev, fmt.Errorf("invalid DTEND: %w", err)
		}
		if !ev.AllDay && hasZone(endProp) {
			if t, err := ve.GetEndAt(); err == nil {
				end = t
			}
		}
		ev.End = end
	case ev.AllDay:
		ev.End = start.AddDate(0, 0, 1)
	default:
		ev.End = start
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.RRule = strings.TrimSpace(p.Value)
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseValue(part, zoneOf(p, loc)); err == nil {
				ev.ExDates = append(ev.ExDates, t)
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); p != nil {
		t, err := propTime(p, loc)
		if err != nil {
			return ev, fmt.Errorf("invalid RECURRENCE-ID: %w", err)
		}
		ev.RecurrenceID = &t
	}

	return ev, nil
}

func isDateOnly(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func hasZone(p *ical.IANAProperty) bool {
	tzs, ok := p.ICalParameters["TZID"]
	return ok && len(tzs) > 0
}

func zoneOf(p *ical.IANAProperty, fallback *time.Location) *time.Location {
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		if l, err := time.LoadLocation(tzs[0]); err == nil {
			return l
		}
	}
	return fallback
}

func propTime(p *ical.IANAProperty, loc *time.Location) (time.Time, error) {
	return parseValue(strings.TrimSpace(p.Value), zoneOf(p, loc))
}

func parseValue(v string, loc *time.Location) (time.Time, error) {
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse(utcLayout, v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation(localLayout, v, loc)
	default:
		return time.ParseInLocation(dateLayout, v, loc)
	}
}

// OccurrencesOn returns the instances of events that intersect the calendar
// day containing day (in day's location). All-day events sort first, then by
// start time; ties keep calendar order.
func OccurrencesOn(events []Event, day time.Time, logger *slog.Logger) []Occurrence {
	if logger == nil {
		logger = logutil.Discard()
	}
	loc := day.Location()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	overrides := make(map[string][]Event)
	for _, ev := range events {
		if ev.RecurrenceID != nil {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
		}
	}

	var out []Occurrence
	for _, ev := range events {
		if ev.RecurrenceID != nil {
			if !ev.Canceled && intersects(ev, ev.Start, ev.End, dayStart, dayEnd) {
				out = append(out, occurrence(ev, ev.Start, ev.End, loc))
			}
			continue
		}
		if ev.Canceled {
			continue
		}

		if ev.RRule == "" {
			if intersects(ev, ev.Start, ev.End, dayStart, dayEnd) {
				out = append(out, occurrence(ev, ev.Start, ev.End, loc))
			}
			continue
		}

		starts, err := expand(ev, dayStart, dayEnd)
		if err != nil {
			logger.Warn("skipping unparseable recurrence", "uid", ev.UID, "rrule", ev.RRule, "error", err)
			continue
		}
		duration := ev.End.Sub(ev.Start)
		for _, s := range starts {
			if overridden(overrides[ev.UID], s) {
				continue
			}
			e := s.Add(duration)
			if intersects(ev, s, e, dayStart, dayEnd) {
				out = append(out, occurrence(ev, s, e, loc))
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AllDay != out[j].AllDay {
			return out[i].AllDay
		}
		if out[i].AllDay {
			return false
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// expand returns the series starts that could intersect [dayStart, dayEnd).
func expand(ev Event, dayStart, dayEnd time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		return nil, err
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Widen the window by the event length so instances that began earlier
	// but run into the day are still found.
	from := dayStart.Add(-ev.End.Sub(ev.Start))
	return set.Between(from.In(ev.Start.Location()), dayEnd.In(ev.Start.Location()), true), nil
}

func overridden(overrides []Event, start time.Time) bool {
	for _, ov := range overrides {
		if ov.RecurrenceID.Equal(start) {
			return true
		}
	}
	return false
}

func intersects(ev Event, start, end, dayStart, dayEnd time.Time) bool {
	if ev.AllDay {
		// All-day values are dates: compare them on the calendar, not the clock.
		s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, dayStart.Location())
		e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, dayStart.Location())
		if !e.After(s) {
			e = s.AddDate(0, 0, 1)
		}
		return s.Before(dayEnd) && e.After(dayStart)
	}
	if end.Equal(start) {
		return !start.Before(dayStart) && start.Before(dayEnd)
	}
	return start.Before(dayEnd) && end.After(dayStart)
}

func occurrence(ev Event, start, end time.Time, loc *time.Location) Occurrence {
	return Occurrence{
		UID:     ev.UID,
		Summary: ev.Summary,
		Start:   start.In(loc),
		End:     end.In(loc),
		AllDay:  ev.AllDay,
	}
}

// Lines returns the non-empty summaries of occs, one per line.
func Lines(occs []Occurrence) []string {
	lines := make([]string, 0, len(occs))
	for _, o := range occs {
		if o.Summary == "" {
			continue
		}
		lines = append(lines, o.Summary)
	}
	return lines
}
