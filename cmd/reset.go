package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reset",
		Short: "Back up and reset learner progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _ := cmd.Flags().GetBool("list")
			yes, _ := cmd.Flags().GetBool("yes")
			if !list && !yes {
				return fmt.Errorf("this replaces all progress; pass --yes to confirm")
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if list {
				keys, err := e.eng.Backups(ctx)
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					fmt.Fprintln(out, "No backups.")
				}
				for _, k := range keys {
					fmt.Fprintln(out, k)
				}
				return nil
			}

			key, _, err := e.eng.ResetWithBackup(ctx)
			if err != nil {
				return err
			}
			if key == "" {
				fmt.Fprintln(out, "Nothing to back up. Progress reset.")
				return nil
			}
			fmt.Fprintf(out, "Backed up to %s. Progress reset.\n", key)
			return nil
		},
	}
	c.Flags().Bool("yes", false, "Confirm the reset")
	c.Flags().Bool("list", false, "List existing backups instead of resetting")
	return c
}
