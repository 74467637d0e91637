package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/engine"
	"github.com/abhisek/prepiz/internal/leveling"
)

func newAttemptCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "attempt",
		Short: "Record one graded answer",
		Long: "Record one answer graded elsewhere. Runs the daily rollover,\n" +
			"updates topic and daily stats and checks for a level-up.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			a := engine.Attempt{}
			a.TopicID, _ = f.GetString("topic")
			a.TopicName, _ = f.GetString("name")
			a.IsCorrect, _ = f.GetBool("correct")
			a.TimeSpentSeconds, _ = f.GetInt("time")
			a.QuestionType, _ = f.GetString("type")
			a.QuestionID, _ = f.GetString("question")
			a.Tags, _ = f.GetStringSlice("tag")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := e.eng.RecordAttempt(cmd.Context(), a)
			if res == nil {
				return err
			}

			out := cmd.OutOrStdout()
			verdict := "incorrect"
			if a.IsCorrect {
				verdict = "correct"
			}
			tp := res.Record.Topic(a.TopicID)
			name := tp.TopicName
			if name == "" {
				name = tp.TopicID
			}
			fmt.Fprintf(out, "Recorded %s answer. %s: %d/%d (%.0f%%), %s\n",
				verdict, name, tp.QuestionsCorrect, tp.QuestionsAttempted,
				tp.Accuracy*100, leveling.LevelName(tp.Level))

			if rem, ok := leveling.Progress(tp); ok {
				fmt.Fprintf(out, "Next level: %d more question(s), accuracy %.0f%% needed\n",
					rem.Questions, rem.AccuracyFloor*100)
			}
			for _, ach := range res.Achievements {
				fmt.Fprintf(out, "★ %s\n", ach.Message())
			}
			if res.IsNewDay {
				fmt.Fprintf(out, "Study streak: %d day(s)\n", res.Record.OverallStats.StudyStreak)
			}
			return err
		},
	}
	f := c.Flags()
	f.String("topic", "", "Topic ID (required)")
	_ = c.MarkFlagRequired("topic")
	f.String("name", "", "Topic display name")
	f.Bool("correct", false, "The answer was correct")
	f.Int("time", 0, "Seconds spent on the question")
	f.String("type", "", "Question type, for per-type tallies")
	f.String("question", "", "Question ID, for answered-question tracking")
	f.StringSlice("tag", nil, "Concept tag (repeatable)")
	return c
}
