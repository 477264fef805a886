package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MANRAF04/uni-schedule/pkg/exporter"
	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

// dayListing is one weekday's worth of the grouped course listing. An ordered
// slice keeps Monday first; a map would lose the weekday order in JSON.
type dayListing struct {
	Day     string              `json:"day"`
	Courses []timetable.Session `json:"courses"`
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	set := s.store.Sessions()
	grouped := set.ByDay()

	days := make([]dayListing, 0, len(timetable.Weekdays))
	for _, d := range timetable.Weekdays {
		days = append(days, dayListing{Day: d.String(), Courses: grouped[d]})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"distinct_count": set.DistinctCount(),
		"days":           days,
	})
}

func (s *Server) handleRemoveCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	// Removing a title that is already gone is fine; the client may be
	// acting on a stale listing.
	removed, distinct := s.store.RemoveTitle(req.Title)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"removed":            removed,
		"distinct_remaining": distinct,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(); err != nil {
		s.log.Error("reset failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	set := s.store.Sessions()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "reset",
		"remaining":          len(set.Sessions),
		"distinct_remaining": set.DistinctCount(),
	})
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := exporter.JSON(s.store.Sessions())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleOccurrences(w http.ResponseWriter, r *http.Request) {
	opts, err := s.exportOptions(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	type sessionDates struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Day   string   `json:"day"`
		Dates []string `json:"dates"`
	}

	set := s.store.Sessions()
	out := make([]sessionDates, 0, len(set.Sessions))
	for _, sess := range set.Sessions {
		occ, err := exporter.Occurrences(sess, opts)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		dates := make([]string, len(occ))
		for i, d := range occ {
			dates[i] = d.Format("2006-01-02")
		}
		out = append(out, sessionDates{
			ID:    sess.ID,
			Title: sess.Title,
			Day:   sess.Day.String(),
			Dates: dates,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request) {
	opts, err := s.exportOptions(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := exporter.GenerateICS(s.store.Sessions(), opts, &buf); err != nil {
		if errors.Is(err, exporter.ErrInvalidWeeks) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("calendar export failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	monday := exporter.NormalizeMonday(opts.Start)
	filename := fmt.Sprintf("schedule_%s_%dw.ics", monday.Format("2006-01-02"), opts.Weeks)
	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}

// exportOptions reads the start and weeks query parameters. A missing start
// means the current week; a missing weeks means the configured default.
// Malformed values are rejected before any generation work.
func (s *Server) exportOptions(r *http.Request) (exporter.Options, error) {
	opts := exporter.Options{
		Start:    time.Now(),
		Weeks:    s.opts.DefaultWeeks,
		Timezone: s.opts.Timezone,
		Holidays: s.opts.Holidays,
	}

	if v := r.URL.Query().Get("start"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			return opts, fmt.Errorf("invalid start date %q, want YYYY-MM-DD", v)
		}
		opts.Start = start
	}

	if v := r.URL.Query().Get("weeks"); v != "" {
		weeks, err := strconv.Atoi(v)
		if err != nil || weeks <= 0 {
			return opts, fmt.Errorf("invalid weeks %q, want a positive integer", v)
		}
		opts.Weeks = weeks
	}

	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
