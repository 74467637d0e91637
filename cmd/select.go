package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/questions"
	"github.com/abhisek/prepiz/internal/selector"
)

// addSelectFlags registers the batch selection flags shared by practice
// and next.
func addSelectFlags(c *cobra.Command) {
	c.Flags().String("bank", "", "Question bank JSON file (required)")
	_ = c.MarkFlagRequired("bank")
	c.Flags().Int("level", 0, "Force a level 1-3 instead of adapting to the learner")
	c.Flags().String("difficulty", "", "Only easy, medium or hard questions")
	c.Flags().Bool("exclude-answered", false, "Skip questions already answered on this topic")
	c.Flags().Bool("weak-first", false, "Put questions on weak concepts first")
}

func selectOptions(cmd *cobra.Command) (selector.Options, error) {
	var opts selector.Options

	level, _ := cmd.Flags().GetInt("level")
	if level < 0 || level > 3 {
		return opts, fmt.Errorf("--level must be between 1 and 3")
	}
	opts.Level = level

	if d, _ := cmd.Flags().GetString("difficulty"); d != "" {
		diff, err := questions.ParseDifficulty(d)
		if err != nil {
			return opts, err
		}
		opts.Difficulty = diff
	}

	opts.ExcludeAnswered, _ = cmd.Flags().GetBool("exclude-answered")
	opts.PrioritizeWeak, _ = cmd.Flags().GetBool("weak-first")
	return opts, nil
}

func loadBank(cmd *cobra.Command) (*questions.Bank, error) {
	path, _ := cmd.Flags().GetString("bank")
	return questions.LoadFile(path)
}
