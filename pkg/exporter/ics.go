package exporter

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

// localStamp is the floating local date-time format used for DTSTART, DTEND
// and EXDATE. The programme is single-locale, so events are exported without
// a UTC designator and the X-WR-TIMEZONE header names the intended zone.
const localStamp = "20060102T150405"

// DefaultTimezone is the calendar zone advertised via X-WR-TIMEZONE.
const DefaultTimezone = "Europe/Athens"

// DefaultWeeks is the teaching-week count used when the caller does not ask
// for a specific span.
const DefaultWeeks = 12

// ErrInvalidWeeks is returned when a non-positive teaching-week count is
// requested.
var ErrInvalidWeeks = errors.New("weeks must be a positive integer")

// Window is an inclusive non-teaching date interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the given date falls inside the window. Only the
// calendar date is compared.
func (w Window) Contains(d time.Time) bool {
	day := date(d)
	return !day.Before(date(w.Start)) && !day.After(date(w.End))
}

// DefaultHolidays returns the fixed Christmas/New Year break, Tuesday
// 23.12.2025 through Tuesday 06.01.2026 inclusive.
func DefaultHolidays() []Window {
	return []Window{{
		Start: time.Date(2025, time.December, 23, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC),
	}}
}

// Options controls a calendar export.
type Options struct {
	// Start is any date inside the first teaching week. It is normalized to
	// the Monday of that week.
	Start time.Time

	// Weeks is the number of teaching weeks to deliver. Weeks that fall
	// inside a holiday window do not count toward this number.
	Weeks int

	// Timezone is the X-WR-TIMEZONE value. Empty means DefaultTimezone.
	Timezone string

	// Holidays are the non-teaching windows. Nil means DefaultHolidays;
	// pass an empty slice for no exclusions.
	Holidays []Window
}

func (o *Options) normalize() error {
	if o.Weeks <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWeeks, o.Weeks)
	}
	o.Start = NormalizeMonday(o.Start)
	if o.Timezone == "" {
		o.Timezone = DefaultTimezone
	}
	if o.Holidays == nil {
		o.Holidays = DefaultHolidays()
	}
	return nil
}

// NormalizeMonday returns the Monday of the week containing t, at midnight.
// An export started mid-week therefore covers the whole surrounding week,
// matching how semesters are counted.
func NormalizeMonday(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	return date(t).AddDate(0, 0, -back)
}

// GenerateICS writes an iCalendar document for the session set to w. Each
// session becomes one weekly VEVENT; occurrences inside a holiday window are
// excluded via EXDATE while the RRULE count is extended so that exactly
// opts.Weeks teaching occurrences survive.
func GenerateICS(set timetable.Set, opts Options, w io.Writer) error {
	if err := opts.normalize(); err != nil {
		return err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//uni-schedule//Programme Export//EN")
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRTimezone(opts.Timezone)

	stamp := time.Now().UTC()

	for _, s := range set.Sessions {
		first := firstOccurrence(s, opts.Start)
		_, excluded := splitTeachingDates(first, opts.Weeks, opts.Holidays)

		start := withClock(first, s.Start)
		end := withClock(first, s.End)

		event := cal.AddEvent(eventUID(s))
		event.SetDtStampTime(stamp)
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(localStamp))
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(localStamp))
		// Text values are escaped here; the library folds long lines but
		// leaves property values untouched.
		event.SetProperty(ics.ComponentPropertySummary, escapeText(s.Title))
		if s.Room != "" {
			event.SetProperty(ics.ComponentPropertyLocation, escapeText(s.Room))
		}
		if desc := describe(s); desc != "" {
			event.SetProperty(ics.ComponentPropertyDescription, escapeText(desc))
		}

		// COUNT covers the excluded occurrences too, so the surviving
		// occurrence count equals the requested teaching weeks.
		total := opts.Weeks + len(excluded)
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d;BYDAY=%s", total, byday(s.Day)))
		for _, ex := range excluded {
			event.AddExdate(withClock(ex, s.Start).Format(localStamp))
		}
	}

	return cal.SerializeTo(w)
}

// Occurrences expands the recurrence of one session into its concrete
// teaching dates, exactly opts.Weeks of them. The expansion goes through the
// same RRULE/EXDATE semantics that GenerateICS serializes, so it doubles as
// the oracle for the emitted calendar.
func Occurrences(s timetable.Session, opts Options) ([]time.Time, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	first := firstOccurrence(s, opts.Start)
	_, excluded := splitTeachingDates(first, opts.Weeks, opts.Holidays)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Count:   opts.Weeks + len(excluded),
		Dtstart: withClock(first, s.Start),
	})
	if err != nil {
		return nil, err
	}

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range excluded {
		set.ExDate(withClock(ex, s.Start))
	}

	return set.All(), nil
}

// firstOccurrence is the date of the session's first event in the week of
// startMonday.
func firstOccurrence(s timetable.Session, startMonday time.Time) time.Time {
	return startMonday.AddDate(0, 0, s.Day.Offset())
}

// splitTeachingDates walks weekly dates from first until weeks teaching dates
// have been collected, recording holiday hits separately. The span stretches
// past the naive end as far as needed to make up for excluded weeks.
func splitTeachingDates(first time.Time, weeks int, holidays []Window) (teaching, excluded []time.Time) {
	current := first
	for len(teaching) < weeks {
		if inHoliday(current, holidays) {
			excluded = append(excluded, current)
		} else {
			teaching = append(teaching, current)
		}
		current = current.AddDate(0, 0, 7)
	}
	return teaching, excluded
}

func inHoliday(d time.Time, holidays []Window) bool {
	for _, w := range holidays {
		if w.Contains(d) {
			return true
		}
	}
	return false
}

func eventUID(s timetable.Session) string {
	id := s.ID
	if id == "" {
		id = s.DeriveID()
	}
	return id + "@uni-schedule"
}

func describe(s timetable.Session) string {
	var parts []string
	if s.Kind != "" {
		parts = append(parts, "Type: "+s.Kind)
	}
	if s.Room != "" {
		parts = append(parts, "Room: "+s.Room)
	}
	if len(s.Instructors) > 0 {
		parts = append(parts, "Instructors: "+strings.Join(s.Instructors, ", "))
	}
	if s.URL != "" {
		parts = append(parts, "Link: "+s.URL)
	}
	return strings.Join(parts, "\n")
}

// escapeText applies RFC 5545 TEXT escaping: backslashes, semicolons and
// commas are backslash-escaped and newlines become literal \n.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

func byday(d timetable.Weekday) string {
	switch d {
	case timetable.Monday:
		return "MO"
	case timetable.Tuesday:
		return "TU"
	case timetable.Wednesday:
		return "WE"
	case timetable.Thursday:
		return "TH"
	default:
		return "FR"
	}
}

func date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func withClock(day time.Time, c timetable.ClockTime) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
}
