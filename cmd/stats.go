package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/analytics"
	"github.com/abhisek/prepiz/internal/leveling"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

const reportWidth = 76

func newStatsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics and insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			window, _ := cmd.Flags().GetInt("window")
			asJSON, _ := cmd.Flags().GetBool("json")
			switch window {
			case analytics.WindowWeek, analytics.WindowMonth, analytics.WindowQuarter:
			default:
				return fmt.Errorf("--window must be 7, 30 or 90")
			}
			return runStats(cmd, window, asJSON)
		},
	}
	c.Flags().Int("window", analytics.WindowWeek, "Trend window in days: 7, 30 or 90")
	c.Flags().Bool("json", false, "Print the dashboard as JSON")
	return c
}

func runStats(cmd *cobra.Command, window int, asJSON bool) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	d := e.eng.Dashboard(cmd.Context(), window)
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	fmt.Fprintln(out, renderDashboard(d, reportWidth))
	return nil
}

// renderDashboard lays the dashboard out as stacked cards.
func renderDashboard(d *analytics.Dashboard, width int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var sections []string
	sections = append(sections, theme.Title.Render(fmt.Sprintf("prepiz · %s · last %d days", d.Today, d.Window)))

	// Overview.
	o := d.Overall
	var ov strings.Builder
	fmt.Fprintf(&ov, "Questions  %-8d Accuracy  %.0f%%\n", o.TotalQuestions, o.AverageAccuracy*100)
	fmt.Fprintf(&ov, "Streak     %-8s Longest   %d day(s)\n", fmt.Sprintf("%d day", o.StudyStreak), o.LongestStreak)
	fmt.Fprintf(&ov, "Study days %-8d Time      %s\n\n", o.TotalStudyDays, formatSeconds(o.TotalTimeSpent))
	goal := 0.0
	if d.DailyGoal > 0 {
		goal = min(float64(d.TodayStats.QuestionsAttempted)/float64(d.DailyGoal), 1)
	}
	bar := components.NewProgressBar(fmt.Sprintf("Today %d/%d", d.TodayStats.QuestionsAttempted, d.DailyGoal), goal, true, cw)
	ov.WriteString(bar.View())
	sections = append(sections, components.Card(ov.String(), cw))

	// Trend.
	var tr strings.Builder
	tr.WriteString(theme.Heading.Render("Activity"))
	tr.WriteString("\n")
	peak := 1
	for _, p := range d.Trend {
		peak = max(peak, p.QuestionsAttempted)
	}
	for _, p := range d.Trend {
		n := p.QuestionsAttempted * (cw - 24) / peak
		line := fmt.Sprintf("%s %s %3d", p.Date.String()[5:], strings.Repeat("▇", n), p.QuestionsAttempted)
		if p.Active() {
			line += dim.Render(fmt.Sprintf("  %.0f%%", p.Accuracy*100))
		}
		tr.WriteString(line + "\n")
	}
	s := d.Summary
	fmt.Fprintf(&tr, "%s", dim.Render(fmt.Sprintf("%d active of %d days · consistency %.0f%% · accuracy %.0f%%",
		s.ActiveDays, s.Days, s.Consistency*100, s.Accuracy*100)))
	sections = append(sections, components.Card(tr.String(), cw))

	// Topics.
	if len(d.Topics.Topics) > 0 {
		var tb strings.Builder
		tb.WriteString(theme.Heading.Render("Topics"))
		tb.WriteString("\n")
		for _, t := range d.Topics.Topics {
			name := t.TopicName
			if name == "" {
				name = t.TopicID
			}
			if len(name) > 18 {
				name = name[:17] + "…"
			}
			fmt.Fprintf(&tb, "%-18s %s %4d  %3.0f%%  %s\n",
				name,
				theme.LevelColor(t.Level).Render(fmt.Sprintf("%-12s", leveling.LevelName(t.Level))),
				t.Attempted, t.Accuracy*100,
				theme.StatusStyle(string(t.Status)).Render(strings.ReplaceAll(string(t.Status), "_", " ")))
		}
		var diff []string
		for _, b := range d.Difficulty {
			if b.Attempted > 0 {
				diff = append(diff, fmt.Sprintf("%s %.0f%%", b.Difficulty.Label(), b.Accuracy*100))
			}
		}
		if len(diff) > 0 {
			tb.WriteString(dim.Render("By difficulty: " + strings.Join(diff, " · ")))
			tb.WriteString("\n")
		}
		if t := d.Time; t.Fastest != nil && t.Slowest != nil {
			tb.WriteString(dim.Render(fmt.Sprintf("Avg %.0fs/question · fastest %s · slowest %s",
				t.AvgPerQuestion, t.Fastest.TopicName, t.Slowest.TopicName)))
		}
		sections = append(sections, components.Card(strings.TrimRight(tb.String(), "\n"), cw))
	}

	// Insights.
	if len(d.Insights) > 0 {
		var ib strings.Builder
		ib.WriteString(theme.Heading.Render("Insights"))
		for _, in := range d.Insights {
			ib.WriteString("\n")
			ib.WriteString(theme.InsightStyle(string(in.Kind)).Render("• " + in.Message))
		}
		sections = append(sections, components.Card(ib.String(), cw))
	}

	if d.UnseenAchievements > 0 {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("★ %d new achievement(s). Run `prepiz achievements`.", d.UnseenAchievements)))
	}

	return strings.Join(sections, "\n")
}

func formatSeconds(secs int) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	h, m := secs/3600, (secs%3600)/60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
