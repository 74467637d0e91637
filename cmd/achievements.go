package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAchievementsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			unseen, _ := cmd.Flags().GetBool("unseen")
			markSeen, _ := cmd.Flags().GetBool("mark-seen")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			list := e.eng.Achievements(ctx, unseen)
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No achievements yet.")
				return nil
			}

			var ids []string
			for _, a := range list {
				mark := " "
				if !a.Seen {
					mark = "*"
					ids = append(ids, a.ID)
				}
				fmt.Fprintf(out, "%s %s  %s\n", mark, a.Timestamp.Local().Format("2006-01-02 15:04"), a.Message())
			}

			if markSeen && len(ids) > 0 {
				n, err := e.eng.MarkSeen(ctx, ids...)
				if err != nil {
					return fmt.Errorf("mark seen: %w", err)
				}
				fmt.Fprintf(out, "\nMarked %d as seen.\n", n)
			}
			return nil
		},
	}
	c.Flags().Bool("unseen", false, "Only list achievements not yet seen")
	c.Flags().Bool("mark-seen", false, "Mark the listed achievements as seen")
	return c
}
