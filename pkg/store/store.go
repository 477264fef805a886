// Package store owns the mutable course set for a running server: it loads
// the initial state from the snapshot file or the programme HTML, serializes
// mutations behind one lock, and mirrors every mutation back to the snapshot.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/MANRAF04/uni-schedule/pkg/parser"
	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

// Store is the single owner of the working Set.
type Store struct {
	mu  sync.Mutex
	set timetable.Set

	programmePath string
	snapshotPath  string
	log           *slog.Logger
}

// New builds a Store from the programme document and an optional snapshot
// file. A readable snapshot takes the place of re-parsing the HTML; a corrupt
// one is treated as absent. The snapshot is only a restart mirror, never a
// second source of truth.
func New(programmePath, snapshotPath string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		programmePath: programmePath,
		snapshotPath:  snapshotPath,
		log:           log,
	}

	if set, ok := s.readSnapshot(); ok {
		s.set = set
		log.Info("loaded schedule from snapshot",
			"path", snapshotPath, "sessions", len(set.Sessions))
		return s, nil
	}

	set, err := s.parseProgramme()
	if err != nil {
		return nil, err
	}
	s.set = set
	log.Info("loaded schedule from programme HTML",
		"path", programmePath, "sessions", len(set.Sessions))
	return s, nil
}

// Sessions returns a copy of the current set.
func (s *Store) Sessions() timetable.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Clone()
}

// DistinctCount returns the current number of unique course titles.
func (s *Store) DistinctCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.DistinctCount()
}

// RemoveTitle removes every session with the given title and persists the
// result. It returns how many sessions were removed and the remaining
// distinct-title count. Snapshot write failures are logged, not returned;
// the in-memory state stays authoritative.
func (s *Store) RemoveTitle(title string) (removed, distinct int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed = s.set.RemoveTitle(title)
	if removed > 0 {
		s.writeSnapshot()
	}
	return removed, s.set.DistinctCount()
}

// Reset discards the mutated state and the snapshot file, then re-derives the
// set from a fresh parse of the programme HTML.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.snapshotPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	set, err := s.parseProgramme()
	if err != nil {
		return err
	}
	s.set = set
	s.log.Info("schedule reset from programme HTML", "sessions", len(set.Sessions))
	return nil
}

func (s *Store) parseProgramme() (timetable.Set, error) {
	sessions, err := parser.ParseFile(s.programmePath)
	if err != nil {
		return timetable.Set{}, err
	}
	return timetable.Build(sessions), nil
}

// readSnapshot loads the snapshot file if it exists and parses cleanly.
// Any failure means the snapshot is simply not used.
func (s *Store) readSnapshot() (timetable.Set, bool) {
	if s.snapshotPath == "" {
		return timetable.Set{}, false
	}

	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		return timetable.Set{}, false
	}

	var sessions []timetable.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		// A saved /api/export document wraps the same records; accept it so
		// an export can be dropped in as a snapshot.
		var export struct {
			Remaining []timetable.Session `json:"remaining"`
		}
		if err := json.Unmarshal(data, &export); err != nil || export.Remaining == nil {
			s.log.Warn("snapshot is corrupt, falling back to programme HTML",
				"path", s.snapshotPath, "err", err)
			return timetable.Set{}, false
		}
		sessions = export.Remaining
	}

	// Rebuilding re-derives identifiers and canonical order, so a hand-edited
	// snapshot cannot smuggle in inconsistent state.
	return timetable.Build(sessions), true
}

func (s *Store) writeSnapshot() {
	if s.snapshotPath == "" {
		return
	}

	data, err := json.MarshalIndent(s.set.Sessions, "", "  ")
	if err != nil {
		s.log.Error("failed to serialize snapshot", "err", err)
		return
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		s.log.Error("failed to write snapshot", "path", s.snapshotPath, "err", err)
	}
}
