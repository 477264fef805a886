package timetable

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ClockTime is a local time of day with minute precision, stored as minutes
// since midnight. The programme has no timezone of its own; dates are attached
// only at export time.
type ClockTime int

// MalformedTimeRangeError reports a timetable cell whose time text could not
// be split and parsed as "HH:MM – HH:MM". The raw text is kept for
// diagnostics.
type MalformedTimeRangeError struct {
	Raw string
}

func (e *MalformedTimeRangeError) Error() string {
	return fmt.Sprintf("malformed time range %q", e.Raw)
}

// ParseClock parses a "HH:MM" string.
func ParseClock(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return ClockTime(h*60 + m), nil
}

// ParseClockRange splits a free-text range like "10:00 – 12:00" into start and
// end times. The source page uses an en dash, but a plain hyphen is accepted
// as well.
func ParseClockRange(s string) (start, end ClockTime, err error) {
	sep := "–"
	if !strings.Contains(s, sep) {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return 0, 0, &MalformedTimeRangeError{Raw: s}
	}
	start, err = ParseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, &MalformedTimeRangeError{Raw: s}
	}
	end, err = ParseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, &MalformedTimeRangeError{Raw: s}
	}
	// A session must end after it starts; an inverted or empty range is as
	// malformed as an unparseable one.
	if end <= start {
		return 0, 0, &MalformedTimeRangeError{Raw: s}
	}
	return start, end, nil
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) Before(other ClockTime) bool { return c < other }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
