package timetable

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Weekday is a teaching day of the week. Only Monday through Friday exist in
// the programme; weekends are never scheduled.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Weekdays lists the teaching days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// greekDays maps lowercase Greek weekday labels to the canonical weekday.
// Both the accented and unaccented spellings are listed since the source
// page uses uppercase labels in some tab variants (Greek uppercase drops
// the tonos).
var greekDays = map[string]Weekday{
	"δευτέρα":   Monday,
	"δευτερα":   Monday,
	"τρίτη":     Tuesday,
	"τριτη":     Tuesday,
	"τετάρτη":   Wednesday,
	"τεταρτη":   Wednesday,
	"πέμπτη":    Thursday,
	"πεμπτη":    Thursday,
	"παρασκευή": Friday,
	"παρασκευη": Friday,
}

// UnknownWeekdayError reports a day label that is not one of the five Greek
// teaching-day names. An unmapped label means the document structure changed,
// so the parse fails instead of silently dropping a day.
type UnknownWeekdayError struct {
	Label string
}

func (e *UnknownWeekdayError) Error() string {
	return fmt.Sprintf("unknown weekday label %q", e.Label)
}

// ParseGreekDay resolves a Greek weekday label to its canonical Weekday.
func ParseGreekDay(label string) (Weekday, error) {
	if d, ok := greekDays[cases.Lower(language.Greek).String(label)]; ok {
		return d, nil
	}
	return 0, &UnknownWeekdayError{Label: label}
}

func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Offset is the number of days from the Monday of a week to this weekday.
func (d Weekday) Offset() int {
	return int(d)
}

// MarshalJSON writes the English day name, matching the snapshot and export
// schema of the original programme files.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if d < Monday || d > Friday {
		return nil, fmt.Errorf("cannot marshal invalid weekday %d", int(d))
	}
	return json.Marshal(weekdayNames[d])
}

func (d *Weekday) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range weekdayNames {
		if n == name {
			*d = Weekday(i)
			return nil
		}
	}
	return fmt.Errorf("cannot unmarshal %q as weekday", name)
}
