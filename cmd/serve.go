package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/MANRAF04/uni-schedule/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the schedule HTTP server",
	Long: `Start the HTTP server: course listing and pruning under /api, the JSON
export under /api/export, and the iCalendar feed under /export/ics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, nil))

		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to load schedule: %w", err)
		}

		srv := server.New(st, server.Options{
			Timezone:     cfg.Timezone,
			DefaultWeeks: cfg.DefaultWeeks,
			Holidays:     configHolidays(cfg),
		}, log)

		log.Info("listening", "addr", cfg.Listen, "programme", cfg.ProgrammeFile)
		return http.ListenAndServe(cfg.Listen, srv)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
