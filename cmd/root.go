package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MANRAF04/uni-schedule/pkg/config"
	"github.com/MANRAF04/uni-schedule/pkg/exporter"
	"github.com/MANRAF04/uni-schedule/pkg/store"
	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "uni-schedule",
	Short: "A server and CLI for the university programme timetable",
	Long: `uni-schedule parses the university programme HTML, lets you prune the
courses you do not attend, and exports the remaining weekly schedule as JSON
or as a recurring iCalendar feed.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")
}

// loadConfig reads the configuration named by the global flag.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// openStore builds the schedule store from the configured programme and
// snapshot paths.
func openStore(cfg *config.Config) (*store.Store, error) {
	return store.New(cfg.ProgrammeFile, cfg.SnapshotFile, nil)
}

// configHolidays converts the configured holiday intervals into exporter
// windows. Nil when nothing is configured, so the exporter default applies.
func configHolidays(cfg *config.Config) []exporter.Window {
	dates := cfg.HolidayDates()
	if len(dates) == 0 {
		return nil
	}
	windows := make([]exporter.Window, len(dates))
	for i, d := range dates {
		windows[i] = exporter.Window{Start: d[0], End: d[1]}
	}
	return windows
}

// sessionCount is a small helper for user-facing summaries.
func sessionCount(set timetable.Set) string {
	return fmt.Sprintf("%d session(s), %d distinct course(s)", len(set.Sessions), set.DistinctCount())
}
