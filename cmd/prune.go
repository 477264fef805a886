package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MANRAF04/uni-schedule/pkg/tui"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Interactively remove courses from the schedule",
	Long: `Open an interactive picker over the distinct course titles. Deselected
courses are removed from every weekday at once, and the result is persisted
so later exports and the server see the pruned schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to load schedule: %w", err)
		}

		return tui.RunPrune(st)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard pruning and reload the full programme",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to load schedule: %w", err)
		}

		if err := st.Reset(); err != nil {
			return err
		}

		fmt.Printf("Schedule reset: %s\n", sessionCount(st.Sessions()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(resetCmd)
}
