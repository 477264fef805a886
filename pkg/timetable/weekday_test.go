package timetable

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseGreekDay(t *testing.T) {
	cases := []struct {
		label string
		want  Weekday
	}{
		{"Δευτέρα", Monday},
		{"Τρίτη", Tuesday},
		{"Τετάρτη", Wednesday},
		{"Πέμπτη", Thursday},
		{"Παρασκευή", Friday},
		// Uppercase variants drop the tonos.
		{"ΔΕΥΤΕΡΑ", Monday},
		{"ΠΑΡΑΣΚΕΥΗ", Friday},
	}

	for _, c := range cases {
		got, err := ParseGreekDay(c.label)
		if err != nil {
			t.Errorf("ParseGreekDay(%q) failed: %v", c.label, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseGreekDay(%q) = %v, want %v", c.label, got, c.want)
		}
	}
}

func TestParseGreekDayUnknown(t *testing.T) {
	_, err := ParseGreekDay("Σάββατο")
	if err == nil {
		t.Fatalf("expected error for a non-teaching day label")
	}

	var unknownErr *UnknownWeekdayError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownWeekdayError, got %T", err)
	}
	if unknownErr.Label != "Σάββατο" {
		t.Errorf("error should carry the offending label, got %q", unknownErr.Label)
	}
}

func TestWeekdayJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Wednesday)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"Wednesday"` {
		t.Errorf("expected English day name, got %s", data)
	}

	var d Weekday
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d != Wednesday {
		t.Errorf("round trip gave %v, want Wednesday", d)
	}
}

func TestClockRangeParsing(t *testing.T) {
	// The source page uses an en dash; plain hyphens appear in older exports.
	for _, raw := range []string{"10:00 – 12:00", "10:00-12:00", "10:00 - 12:00"} {
		start, end, err := ParseClockRange(raw)
		if err != nil {
			t.Errorf("ParseClockRange(%q) failed: %v", raw, err)
			continue
		}
		if start.String() != "10:00" || end.String() != "12:00" {
			t.Errorf("ParseClockRange(%q) = %v, %v", raw, start, end)
		}
	}
}

func TestClockRangeMalformed(t *testing.T) {
	for _, raw := range []string{"10:00", "morning", "10:00–12:00–14:00", "25:00–26:00", "12:00 – 10:00", "10:00–10:00"} {
		_, _, err := ParseClockRange(raw)
		if err == nil {
			t.Errorf("ParseClockRange(%q) should fail", raw)
			continue
		}
		var rangeErr *MalformedTimeRangeError
		if !errors.As(err, &rangeErr) {
			t.Errorf("ParseClockRange(%q): expected MalformedTimeRangeError, got %T", raw, err)
			continue
		}
		if rangeErr.Raw != raw {
			t.Errorf("error should carry the raw text, got %q", rangeErr.Raw)
		}
	}
}
