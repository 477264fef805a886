package timetable

import (
	"sort"
)

// Set is the working collection of retained sessions. Sessions are kept in
// canonical order: grouped Monday through Friday, ascending start time within
// a day, parse order on ties.
type Set struct {
	Sessions []Session
}

// Build produces the canonical Set from parsed sessions: groups by weekday,
// stable-sorts by start time within each day, drops exact duplicate
// (title, day, start, end) tuples, and assigns the derived identifiers.
func Build(sessions []Session) Set {
	ordered := make([]Session, len(sessions))
	copy(ordered, sessions)

	// Stable keeps the original parse order for sessions sharing a start time.
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Day != ordered[j].Day {
			return ordered[i].Day < ordered[j].Day
		}
		return ordered[i].Start < ordered[j].Start
	})

	seen := make(map[string]bool)
	unique := make([]Session, 0, len(ordered))
	for _, s := range ordered {
		key := s.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		s.ID = s.DeriveID()
		unique = append(unique, s)
	}

	return Set{Sessions: unique}
}

// RemoveTitle deletes every session whose title exactly matches the argument,
// across all weekdays, and returns how many sessions were removed. A title
// that is not present removes nothing; the caller may be acting on stale
// state and that is not an error.
func (s *Set) RemoveTitle(title string) int {
	remaining := s.Sessions[:0]
	removed := 0
	for _, sess := range s.Sessions {
		if sess.Title == title {
			removed++
			continue
		}
		remaining = append(remaining, sess)
	}
	s.Sessions = remaining
	return removed
}

// DistinctTitles returns the sorted unique course titles still present.
func (s Set) DistinctTitles() []string {
	seen := make(map[string]bool)
	var titles []string
	for _, sess := range s.Sessions {
		if !seen[sess.Title] {
			seen[sess.Title] = true
			titles = append(titles, sess.Title)
		}
	}
	sort.Strings(titles)
	return titles
}

// DistinctCount is the number of unique course titles remaining. Always
// recomputed from current state.
func (s Set) DistinctCount() int {
	return len(s.DistinctTitles())
}

// ByDay groups the sessions per weekday, preserving canonical order within
// each day. Every teaching day has an entry, possibly empty.
func (s Set) ByDay() map[Weekday][]Session {
	grouped := make(map[Weekday][]Session, len(Weekdays))
	for _, d := range Weekdays {
		grouped[d] = []Session{}
	}
	for _, sess := range s.Sessions {
		grouped[sess.Day] = append(grouped[sess.Day], sess)
	}
	return grouped
}

// Clone returns an independent copy so callers can hand the set across a lock
// boundary without sharing the backing slice.
func (s Set) Clone() Set {
	sessions := make([]Session, len(s.Sessions))
	copy(sessions, s.Sessions)
	return Set{Sessions: sessions}
}
