package exporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

func mondaySession(t *testing.T, title string) timetable.Session {
	t.Helper()
	start, err := timetable.ParseClock("10:00")
	if err != nil {
		t.Fatal(err)
	}
	end, err := timetable.ParseClock("12:00")
	if err != nil {
		t.Fatal(err)
	}
	return timetable.Session{
		Title: title,
		Day:   timetable.Monday,
		Start: start,
		End:   end,
		Kind:  "Lecture",
		Room:  "Room A1",
	}
}

func semesterOpts(weeks int) Options {
	return Options{
		Start: time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC),
		Weeks: weeks,
	}
}

func TestGenerateICSHolidayExclusion(t *testing.T) {
	set := timetable.Build([]timetable.Session{mondaySession(t, "Algorithms")})

	var buf bytes.Buffer
	if err := GenerateICS(set, semesterOpts(15), &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "SUMMARY:Algorithms") {
		t.Errorf("missing summary, got:\n%s", output)
	}
	if !strings.Contains(output, "DTSTART:20250922T100000") {
		t.Errorf("expected first occurrence on the start Monday, got:\n%s", output)
	}
	if !strings.Contains(output, "DTEND:20250922T120000") {
		t.Errorf("expected floating local end time, got:\n%s", output)
	}

	// 29.12.2025 and 05.01.2026 fall inside the break, so the COUNT is
	// extended from 15 to 17 and both Mondays are excluded.
	if !strings.Contains(output, "FREQ=WEEKLY;COUNT=17;BYDAY=MO") {
		t.Errorf("expected extended weekly rule, got:\n%s", output)
	}
	if !strings.Contains(output, "EXDATE:20251229T100000") {
		t.Errorf("expected EXDATE for 29.12.2025, got:\n%s", output)
	}
	if !strings.Contains(output, "EXDATE:20260105T100000") {
		t.Errorf("expected EXDATE for 05.01.2026, got:\n%s", output)
	}
}

func TestOccurrencesTeachingWeekExactness(t *testing.T) {
	s := mondaySession(t, "Algorithms")
	holidays := DefaultHolidays()

	for _, weeks := range []int{1, 12, 15, 20} {
		dates, err := Occurrences(s, semesterOpts(weeks))
		if err != nil {
			t.Fatalf("Occurrences(weeks=%d) failed: %v", weeks, err)
		}
		if len(dates) != weeks {
			t.Errorf("weeks=%d: delivered %d occurrences", weeks, len(dates))
		}
		for _, d := range dates {
			if inHoliday(d, holidays) {
				t.Errorf("weeks=%d: occurrence %s falls inside the holiday window", weeks, d)
			}
			if d.Weekday() != time.Monday {
				t.Errorf("weeks=%d: occurrence %s is not a Monday", weeks, d)
			}
		}
	}
}

func TestOccurrencesSpanExtendsPastHoliday(t *testing.T) {
	s := mondaySession(t, "Algorithms")

	dates, err := Occurrences(s, semesterOpts(15))
	if err != nil {
		t.Fatalf("Occurrences failed: %v", err)
	}

	// The naive span ends 29.12.2025; with two Mondays excluded the last
	// teaching occurrence moves to 12.01.2026.
	last := dates[len(dates)-1]
	want := time.Date(2026, time.January, 12, 10, 0, 0, 0, time.UTC)
	if !last.Equal(want) {
		t.Errorf("last occurrence = %s, want %s", last, want)
	}
}

func TestOccurrencesOutsideHolidayWindow(t *testing.T) {
	// A short span well before the break needs no exclusions at all.
	s := mondaySession(t, "Algorithms")

	dates, err := Occurrences(s, Options{
		Start: time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC),
		Weeks: 4,
	})
	if err != nil {
		t.Fatalf("Occurrences failed: %v", err)
	}
	if len(dates) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(dates))
	}
	want := time.Date(2025, time.October, 13, 10, 0, 0, 0, time.UTC)
	if !dates[3].Equal(want) {
		t.Errorf("last occurrence = %s, want %s", dates[3], want)
	}
}

func TestNormalizeMonday(t *testing.T) {
	monday := time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC)

	cases := []time.Time{
		monday,
		time.Date(2025, time.September, 24, 0, 0, 0, 0, time.UTC), // Wednesday
		time.Date(2025, time.September, 28, 0, 0, 0, 0, time.UTC), // Sunday
	}
	for _, c := range cases {
		if got := NormalizeMonday(c); !got.Equal(monday) {
			t.Errorf("NormalizeMonday(%s) = %s, want %s", c, got, monday)
		}
	}
}

func TestGenerateICSNormalizesStartToMonday(t *testing.T) {
	set := timetable.Build([]timetable.Session{mondaySession(t, "Algorithms")})

	var buf bytes.Buffer
	err := GenerateICS(set, Options{
		Start: time.Date(2025, time.September, 24, 0, 0, 0, 0, time.UTC), // Wednesday
		Weeks: 4,
	}, &buf)
	if err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	if !strings.Contains(buf.String(), "DTSTART:20250922T100000") {
		t.Errorf("mid-week start should be normalized to its Monday, got:\n%s", buf.String())
	}
}

func TestGenerateICSInvalidWeeks(t *testing.T) {
	set := timetable.Build([]timetable.Session{mondaySession(t, "Algorithms")})

	for _, weeks := range []int{0, -3} {
		var buf bytes.Buffer
		err := GenerateICS(set, semesterOpts(weeks), &buf)
		if !errors.Is(err, ErrInvalidWeeks) {
			t.Errorf("weeks=%d: expected ErrInvalidWeeks, got %v", weeks, err)
		}
	}
}

func TestGenerateICSStableUIDs(t *testing.T) {
	set := timetable.Build([]timetable.Session{mondaySession(t, "Algorithms")})

	render := func() string {
		var buf bytes.Buffer
		if err := GenerateICS(set, semesterOpts(12), &buf); err != nil {
			t.Fatalf("GenerateICS failed: %v", err)
		}
		for _, line := range strings.Split(buf.String(), "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		t.Fatalf("no UID line in output")
		return ""
	}

	first := render()
	second := render()
	if first != second {
		t.Errorf("UIDs differ across re-exports: %q vs %q", first, second)
	}
	if !strings.HasSuffix(first, "@uni-schedule") {
		t.Errorf("unexpected UID format: %q", first)
	}
}

func TestGenerateICSEscapesText(t *testing.T) {
	s := mondaySession(t, "Analysis, Algebra; Geometry")
	s.Room = "Rooms A1, A2"
	set := timetable.Build([]timetable.Session{s})

	var buf bytes.Buffer
	if err := GenerateICS(set, semesterOpts(12), &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, `SUMMARY:Analysis\, Algebra\; Geometry`) {
		t.Errorf("summary not escaped, got:\n%s", output)
	}
	if !strings.Contains(output, `LOCATION:Rooms A1\, A2`) {
		t.Errorf("location not escaped, got:\n%s", output)
	}
}

func TestGenerateICSWeekdayOffsets(t *testing.T) {
	start, _ := timetable.ParseClock("09:00")
	end, _ := timetable.ParseClock("11:00")
	set := timetable.Build([]timetable.Session{
		{Title: "Databases", Day: timetable.Friday, Start: start, End: end},
	})

	var buf bytes.Buffer
	if err := GenerateICS(set, semesterOpts(4), &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}
	output := buf.String()

	// Friday of the start week is 26.09.2025.
	if !strings.Contains(output, "DTSTART:20250926T090000") {
		t.Errorf("expected Friday offset from start Monday, got:\n%s", output)
	}
	if !strings.Contains(output, "BYDAY=FR") {
		t.Errorf("expected BYDAY=FR, got:\n%s", output)
	}
}
