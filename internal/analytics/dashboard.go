package analytics

import "github.com/abhisek/prepiz/internal/progress"

// Dashboard bundles every report for one trend window.
type Dashboard struct {
	Today              progress.Date          `json:"today"`
	Window             int                    `json:"window"`
	Overall            progress.OverallStats  `json:"overall"`
	TodayStats         progress.DailySnapshot `json:"todayStats"`
	DailyGoal          int                    `json:"dailyGoal"`
	Trend              []TrendPoint           `json:"trend"`
	Summary            TrendSummary           `json:"summary"`
	Topics             Breakdown              `json:"topics"`
	Difficulty         []DifficultyBucket     `json:"difficulty"`
	Time               TimeReport             `json:"time"`
	Insights           []Insight              `json:"insights"`
	UnseenAchievements int                    `json:"unseenAchievements"`
}

// Build assembles the dashboard of rec as of today.
func Build(rec *progress.Record, today progress.Date, window int) *Dashboard {
	if window <= 0 {
		window = WindowWeek
	}
	trend := Trend(rec, today, window)

	todayStats := progress.DailySnapshot{Date: today}
	if rec.DailyStats.Date == today {
		todayStats = progress.SnapshotOf(rec.DailyStats)
	}

	return &Dashboard{
		Today:              today,
		Window:             window,
		Overall:            rec.OverallStats,
		TodayStats:         todayStats,
		DailyGoal:          rec.Preferences.DailyGoal,
		Trend:              trend,
		Summary:            Summarize(trend),
		Topics:             TopicBreakdown(rec),
		Difficulty:         DifficultyAnalysis(rec),
		Time:               TimeAnalysis(rec),
		Insights:           Insights(rec, trend),
		UnseenAchievements: len(rec.UnseenAchievements()),
	}
}
