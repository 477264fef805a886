package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/MANRAF04/uni-schedule/pkg/exporter"
	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the remaining schedule to an ICS file",
	Long: `Export the remaining schedule as a recurring iCalendar file without the
interactive TUI. The start date is normalized to the Monday of its week; the
configured holiday breaks are excluded while still delivering the full number
of teaching weeks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startStr, _ := cmd.Flags().GetString("start")
		weeks, _ := cmd.Flags().GetInt("weeks")
		output, _ := cmd.Flags().GetString("output")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		start := time.Now()
		if startStr != "" {
			start, err = time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid start date %q, want YYYY-MM-DD", startStr)
			}
		}
		if weeks <= 0 {
			weeks = cfg.DefaultWeeks
		}

		var set timetable.Set
		var loadErr error
		_ = spinner.New().
			Title("Loading programme...").
			Action(func() {
				st, err := openStore(cfg)
				if err != nil {
					loadErr = err
					return
				}
				set = st.Sessions()
			}).
			Run()
		if loadErr != nil {
			return fmt.Errorf("failed to load schedule: %w", loadErr)
		}

		if len(set.Sessions) == 0 {
			return fmt.Errorf("no courses in the schedule")
		}

		if !strings.HasSuffix(output, ".ics") {
			output += ".ics"
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		opts := exporter.Options{
			Start:    start,
			Weeks:    weeks,
			Timezone: cfg.Timezone,
			Holidays: configHolidays(cfg),
		}
		if err := exporter.GenerateICS(set, opts, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %s to %s\n", sessionCount(set), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("start", "s", "", "First teaching week start date (YYYY-MM-DD, default: current week)")
	exportCmd.Flags().IntP("weeks", "w", 0, "Number of teaching weeks (default: configured value)")
	exportCmd.Flags().StringP("output", "o", "schedule.ics", "Output file path")
}
