package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Calm colors for long study sessions.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F1F5F9") // Near white
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Ink
	BgCard    = lipgloss.Color("#1E293B") // Dark slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		MarginTop(1)
)

// Containers
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Banner = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Accent).
		Foreground(Accent).
		Bold(true).
		Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// LevelColor returns the color for a topic level.
func LevelColor(level int) lipgloss.Style {
	switch level {
	case 3:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	case 2:
		return lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(TextDim).Bold(true)
	}
}

// StatusStyle returns the style for a topic status name.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "mastered":
		return lipgloss.NewStyle().Foreground(Success)
	case "learning":
		return lipgloss.NewStyle().Foreground(Secondary)
	case "struggling":
		return lipgloss.NewStyle().Foreground(Error)
	default:
		return lipgloss.NewStyle().Foreground(TextDim)
	}
}

// InsightStyle returns the style for an insight kind.
func InsightStyle(kind string) lipgloss.Style {
	switch kind {
	case "positive", "improving":
		return lipgloss.NewStyle().Foreground(Success)
	case "warning":
		return lipgloss.NewStyle().Foreground(Warning)
	case "suggestion":
		return lipgloss.NewStyle().Foreground(Accent)
	default:
		return lipgloss.NewStyle().Foreground(Text)
	}
}
