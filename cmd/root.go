package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/analytics"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prepiz",
		Short: "Adaptive exam practice with streaks and levels",
		Long: "prepiz tracks per-topic mastery, daily streaks and level unlocks,\n" +
			"and picks each practice batch to match the learner's level.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, analytics.WindowWeek, false)
		},
	}

	pf := root.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides PREPIZ_DB env var)")
	pf.String("backend", "", "Storage backend: sqlite, redis, mongo or memory (overrides PREPIZ_BACKEND)")
	pf.String("user", "", "Learner record key (overrides PREPIZ_USER)")

	root.AddCommand(
		newPracticeCmd(),
		newAttemptCmd(),
		newNextCmd(),
		newStatsCmd(),
		newAchievementsCmd(),
		newGoalCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
		newVersionCmd(),
	)
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
