package timetable

import (
	"fmt"

	"github.com/google/uuid"
)

// sessionNamespace seeds the UUIDv5 derivation of session IDs. Fixed so that
// re-parsing the same programme always produces the same identifiers.
var sessionNamespace = uuid.MustParse("8a6e0804-2bd0-4672-b79d-d97027f9071a")

// Session is one scheduled occurrence of a course on one weekday.
type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Day         Weekday   `json:"day"`
	Start       ClockTime `json:"start"`
	End         ClockTime `json:"end"`
	Kind        string    `json:"kind,omitempty"`
	Room        string    `json:"room,omitempty"`
	Instructors []string  `json:"instructors,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// Key is the identity tuple used for deduplication and ID derivation.
func (s Session) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", s.Title, s.Day, s.Start, s.End)
}

// DeriveID computes the deterministic identifier for the session from its
// identity tuple. Surrogate counters are deliberately avoided so identical
// input always yields identically-identified output.
func (s Session) DeriveID() string {
	return uuid.NewSHA1(sessionNamespace, []byte(s.Key())).String()
}
