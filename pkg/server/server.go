// Package server exposes the schedule over HTTP: listing, pruning, reset,
// JSON export and the iCalendar feed.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MANRAF04/uni-schedule/pkg/exporter"
	"github.com/MANRAF04/uni-schedule/pkg/store"
)

// Options carries the export-related settings handlers need.
type Options struct {
	// Timezone is the X-WR-TIMEZONE value for calendar exports.
	Timezone string

	// DefaultWeeks is used when an export request has no weeks parameter.
	DefaultWeeks int

	// Holidays are the non-teaching windows. Nil means the built-in break.
	Holidays []exporter.Window
}

// Server holds dependencies for the HTTP handlers.
type Server struct {
	store  *store.Store
	opts   Options
	log    *slog.Logger
	router chi.Router
}

// New creates a Server with all routes configured.
func New(st *store.Store, opts Options, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if opts.DefaultWeeks <= 0 {
		opts.DefaultWeeks = exporter.DefaultWeeks
	}
	s := &Server{
		store:  st,
		opts:   opts,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))

	s.router.Get("/api/courses", s.handleListCourses)
	s.router.Post("/api/courses/remove", s.handleRemoveCourse)
	s.router.Post("/api/reset", s.handleReset)
	s.router.Get("/api/export", s.handleExportJSON)
	s.router.Get("/api/occurrences", s.handleOccurrences)
	s.router.Get("/export/ics", s.handleExportICS)
}
