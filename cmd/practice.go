package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/practice"
)

func newPracticeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "practice",
		Short: "Start an interactive practice session",
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := loadBank(cmd)
			if err != nil {
				return err
			}
			opts, err := selectOptions(cmd)
			if err != nil {
				return err
			}
			topic, _ := cmd.Flags().GetString("topic")
			count, _ := cmd.Flags().GetInt("count")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			m := practice.New(e.eng, bank, practice.Options{
				TopicID: topic,
				Count:   count,
				Select:  opts,
			}, e.log)
			s, err := practice.Run(m)
			if err != nil {
				return err
			}

			if s.Answered > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d/%d correct (%.0f%%)\n", s.Correct, s.Answered, s.Accuracy()*100)
			}
			if s.Unsaved > 0 {
				return fmt.Errorf("%d answer(s) could not be saved", s.Unsaved)
			}
			return nil
		},
	}
	addSelectFlags(c)
	c.Flags().String("topic", "", "Topic ID (shows a topic menu when empty)")
	c.Flags().Int("count", practice.DefaultCount, "Questions per session")
	return c
}
