package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal [questions-per-day]",
		Short: "Show or set the daily question goal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			prefs := e.eng.Progress(ctx).Preferences
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "Daily goal: %d questions\n", prefs.DailyGoal)
				return nil
			}

			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("goal must be a number: %w", err)
			}
			prefs.DailyGoal = n
			if err := e.eng.UpdatePreferences(ctx, prefs); err != nil {
				return err
			}
			fmt.Fprintf(out, "Daily goal set to %d questions\n", n)
			return nil
		},
	}
}
