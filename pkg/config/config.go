package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all server settings.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// ProgrammeFile is the path of the timetable HTML document.
	ProgrammeFile string `yaml:"programme_file"`

	// SnapshotFile mirrors the remaining courses across restarts. Empty
	// disables persistence.
	SnapshotFile string `yaml:"snapshot_file"`

	// Timezone is the IANA zone advertised in exported calendars.
	Timezone string `yaml:"timezone"`

	// DefaultWeeks is the teaching-week count used when an export does not
	// specify one.
	DefaultWeeks int `yaml:"default_weeks"`

	// Holidays are inclusive non-teaching date intervals, ISO dates.
	Holidays []Holiday `yaml:"holidays"`
}

// Holiday is one inclusive non-teaching interval.
type Holiday struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Default returns the built-in configuration: the programme file next to the
// binary and the fixed Christmas/New Year break.
func Default() *Config {
	return &Config{
		Listen:        "127.0.0.1:8080",
		ProgrammeFile: "programme.htm",
		SnapshotFile:  "remaining_courses.json",
		Timezone:      "Europe/Athens",
		DefaultWeeks:  12,
		Holidays: []Holiday{
			{Start: "2025-12-23", End: "2026-01-06"},
		},
	}
}

// Load reads the YAML config at path, then applies environment overrides.
// A missing file yields the defaults; a malformed file is an error. Env vars:
//
//	UNISCHEDULE_LISTEN, UNISCHEDULE_PROGRAMME_FILE, UNISCHEDULE_SNAPSHOT_FILE,
//	UNISCHEDULE_TIMEZONE, UNISCHEDULE_DEFAULT_WEEKS
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("UNISCHEDULE_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("UNISCHEDULE_PROGRAMME_FILE"); v != "" {
		cfg.ProgrammeFile = v
	}
	if v := os.Getenv("UNISCHEDULE_SNAPSHOT_FILE"); v != "" {
		cfg.SnapshotFile = v
	}
	if v := os.Getenv("UNISCHEDULE_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("UNISCHEDULE_DEFAULT_WEEKS"); v != "" {
		if weeks, err := strconv.Atoi(v); err == nil {
			cfg.DefaultWeeks = weeks
		}
	}
}

func (c *Config) normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/Athens"
	}
	if c.DefaultWeeks <= 0 {
		c.DefaultWeeks = 12
	}
}

func (c *Config) validate() error {
	if c.ProgrammeFile == "" {
		return fmt.Errorf("programme_file must be set")
	}
	for _, h := range c.Holidays {
		start, err := time.Parse("2006-01-02", h.Start)
		if err != nil {
			return fmt.Errorf("holiday start %q: %w", h.Start, err)
		}
		end, err := time.Parse("2006-01-02", h.End)
		if err != nil {
			return fmt.Errorf("holiday end %q: %w", h.End, err)
		}
		if end.Before(start) {
			return fmt.Errorf("holiday %s..%s ends before it starts", h.Start, h.End)
		}
	}
	return nil
}

// HolidayDates parses the configured intervals into date pairs. Only valid
// after a successful Load.
func (c *Config) HolidayDates() [][2]time.Time {
	out := make([][2]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		start, err := time.Parse("2006-01-02", h.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02", h.End)
		if err != nil {
			continue
		}
		out = append(out, [2]time.Time{start, end})
	}
	return out
}
