package practice

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/leveling"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.title(), m.headerInfo(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	v.SetContent(layout.RenderFrame(header, m.content(m.width, contentHeight), footer, m.width, m.height))
	return v
}

func (m *Model) title() string {
	switch m.phase {
	case phasePickTopic:
		return "Choose a topic"
	case phaseSummary:
		return "Session complete"
	default:
		return m.topic.Name
	}
}

func (m *Model) headerInfo() layout.HeaderInfo {
	info := layout.HeaderInfo{Streak: m.summary.Streak}
	if m.topic.ID == "" {
		return info
	}
	info.Topic = m.topic.Name
	info.Level = leveling.MinLevel
	if m.lastResult != nil {
		info.Level = m.lastResult.NewLevel
	}
	return info
}

func (m *Model) keyHints() []layout.KeyHint {
	switch {
	case m.phase == phasePickTopic:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Start"},
			{Key: "q", Description: "Quit"},
		}
	case m.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case m.phase == phaseSummary || m.phase == phaseError:
		return []layout.KeyHint{{Key: "any key", Description: "Exit"}}
	case m.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case m.phase == phaseQuestion && m.mcActive:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "End"},
		}
	case m.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End"},
		}
	}
	return nil
}

func (m *Model) content(width, height int) string {
	switch m.phase {
	case phasePickTopic:
		return "\n" + m.menu.View()
	case phaseLoading:
		return centered(width, theme.Hint, "\n\n  Picking your questions...")
	case phaseError:
		return centered(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\n  %s\n\n  Press any key to exit.", m.errMsg))
	case phaseFeedback:
		return m.renderFeedback(width)
	case phaseSummary:
		return m.renderSummary(width)
	}
	if m.quitConfirm {
		return renderQuitConfirm(width)
	}
	return m.renderQuestion(width)
}

func centered(width int, style lipgloss.Style, s string) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}

func (m *Model) renderQuestion(width int) string {
	q := m.batch[m.index]
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", q.Difficulty.Label(), leveling.LevelName(q.EffectiveLevel())))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			m.index+1, len(m.batch),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			m.summary.Correct,
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	if m.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.choice.View()))
	} else {
		b.WriteString(centered(width, lipgloss.NewStyle(), "Answer: "+m.input.View()))
	}
	return b.String()
}

func (m *Model) renderFeedback(width int) string {
	q := m.batch[m.index]
	var b strings.Builder
	b.WriteString("\n\n")

	if m.correct {
		b.WriteString(centered(width, theme.Correct, "Correct!"))
	} else {
		b.WriteString(centered(width, theme.Incorrect, "Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("Correct answer: %s", q.Answer)))
	}
	b.WriteString("\n\n")

	if q.Explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if res := m.lastResult; res != nil {
		if res.LevelUp != nil {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				components.Banner(fmt.Sprintf("Level up! %s is now %s",
					res.LevelUp.TopicName, leveling.LevelName(res.LevelUp.To)))))
			b.WriteString("\n\n")
		}
		for _, a := range res.Achievements {
			if res.LevelUp != nil && a.ID == res.LevelUp.Achievement.ID {
				continue
			}
			b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), a.Message()))
			b.WriteString("\n")
		}
		if res.IsNewDay && res.Record != nil {
			b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent),
				fmt.Sprintf("★ Study streak: %d day(s)", res.Record.OverallStats.StudyStreak)))
			b.WriteString("\n")
		}
	}

	hint := "Press any key to continue..."
	if m.recording {
		hint = "Saving..."
	}
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), hint))
	return b.String()
}

func (m *Model) renderSummary(width int) string {
	s := m.summary
	cw := components.ContentWidth(width)

	var body strings.Builder
	body.WriteString(theme.Title.Render("Session summary"))
	body.WriteString("\n\n")
	fmt.Fprintf(&body, "Answered   %d\n", s.Answered)
	fmt.Fprintf(&body, "Correct    %d\n", s.Correct)
	fmt.Fprintf(&body, "Time       %ds\n\n", s.TimeSpent)
	body.WriteString(components.NewProgressBar("Accuracy", s.Accuracy(), true, cw).View())
	body.WriteString("\n")

	for _, up := range s.LevelUps {
		body.WriteString("\n")
		body.WriteString(theme.LevelColor(up.To).Render(fmt.Sprintf("▲ %s: %s → %s",
			up.TopicName, leveling.LevelName(up.From), leveling.LevelName(up.To))))
	}
	if s.Streak > 0 {
		body.WriteString("\n")
		body.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d day streak", s.Streak)))
	}
	if s.Unsaved > 0 {
		body.WriteString("\n\n")
		body.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).
			Render(fmt.Sprintf("%d answer(s) could not be saved", s.Unsaved)))
	}

	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(body.String(), cw))
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "End session early?"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Answers so far are already saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}
