package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/leveling"
)

func newNextCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "next",
		Short: "Print the next practice batch for a topic without recording anything",
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
			asJSON, _ := cmd.Flags().GetBool("json")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			batch := e.eng.SelectQuestions(cmd.Context(), topic, bank.ForTopic(topic), count, opts)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(batch)
			}

			if len(batch) == 0 {
				fmt.Fprintln(out, "No questions match.")
				return nil
			}
			fmt.Fprintf(out, "%-12s  %-6s  %-12s  %s\n", "ID", "Diff", "Level", "Question")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, q := range batch {
				text := truncate(q.Text, 40)
				fmt.Fprintf(out, "%-12s  %-6s  %-12s  %s\n", q.ID, q.Difficulty.Label(), leveling.LevelName(q.EffectiveLevel()), text)
			}
			return nil
		},
	}
	addSelectFlags(c)
	c.Flags().String("topic", "", "Topic ID (required)")
	_ = c.MarkFlagRequired("topic")
	c.Flags().Int("count", 10, "Batch size")
	c.Flags().Bool("json", false, "Print the batch as JSON")
	return c
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
