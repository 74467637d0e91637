package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export",
		Short: "Export the progress record as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("out")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			exp, err := e.eng.Export(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(exp, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}

			if path == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			}
			if err := os.WriteFile(path, append(raw, '\n'), 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	c.Flags().String("out", "", "Write to this file instead of stdout")
	return c
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the progress record with an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			rec, err := e.eng.Import(cmd.Context(), raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d topic(s), %d question(s) answered.\n",
				len(rec.TopicProgress), rec.OverallStats.TotalQuestions)
			return nil
		},
	}
}
