package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MANRAF04/uni-schedule/pkg/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the remaining weekly schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to load schedule: %w", err)
		}

		fmt.Print(tui.RenderWeek(st.Sessions()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
