package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/prepiz/internal/leveling"
	"github.com/abhisek/prepiz/internal/progress"
)

// InsightKind tags an insight for display.
type InsightKind string

const (
	InsightPositive   InsightKind = "positive"
	InsightImproving  InsightKind = "improving"
	InsightWarning    InsightKind = "warning"
	InsightSuggestion InsightKind = "suggestion"
	InsightInfo       InsightKind = "info"
)

// Insight is advisory text. Nothing consumes it programmatically.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Message string      `json:"message"`
}

// Insight thresholds.
const (
	HighConsistency   = 0.80
	LowConsistency    = 0.30
	TrendDeltaPoints  = 10.0
	TrendCompareDays  = 3
	minTrendDays      = 4
	StreakPraiseDays  = 7
	NearLevelUpWithin = 5
)

// Insights runs the insight rules over a record and its trend window.
func Insights(rec *progress.Record, points []TrendPoint) []Insight {
	var out []Insight
	sum := Summarize(points)

	if sum.ActiveDays == 0 {
		out = append(out, Insight{InsightSuggestion, "No practice in this period yet. A few questions a day builds a streak."})
	} else {
		switch {
		case sum.Consistency >= HighConsistency:
			out = append(out, Insight{InsightPositive,
				fmt.Sprintf("Great consistency: you studied on %d of the last %d days.", sum.ActiveDays, sum.Days)})
		case sum.Consistency < LowConsistency:
			out = append(out, Insight{InsightSuggestion,
				fmt.Sprintf("You studied on %d of the last %d days. Short daily sessions work better than long gaps.", sum.ActiveDays, sum.Days)})
		}
	}

	if delta, ok := accuracyDelta(points); ok {
		switch {
		case delta > TrendDeltaPoints:
			out = append(out, Insight{InsightImproving,
				fmt.Sprintf("Accuracy is up %.0f points compared with the start of this period.", delta)})
		case delta < -TrendDeltaPoints:
			out = append(out, Insight{InsightWarning,
				fmt.Sprintf("Accuracy is down %.0f points compared with the start of this period.", -delta)})
		}
	}

	if streak := rec.OverallStats.StudyStreak; streak >= StreakPraiseDays {
		out = append(out, Insight{InsightPositive, fmt.Sprintf("%d-day study streak. Keep it going!", streak)})
	}

	var struggling, nearLevel []string
	for _, id := range rec.TopicIDs() {
		tp := rec.Topic(id)
		if Classify(tp) == StatusStruggling {
			struggling = append(struggling, tp.TopicName)
		}
		if r, ok := leveling.Progress(tp); ok && tp.QuestionsAttempted > 0 &&
			r.AccuracyGap == 0 && r.Questions > 0 && r.Questions <= NearLevelUpWithin {
			nearLevel = append(nearLevel, fmt.Sprintf("%s (%d more for Level %d)", tp.TopicName, r.Questions, r.NextLevel))
		}
	}
	if len(struggling) > 0 {
		sort.Strings(struggling)
		out = append(out, Insight{InsightWarning, "Needs attention: " + strings.Join(struggling, ", ") + "."})
	}
	if len(nearLevel) > 0 {
		out = append(out, Insight{InsightInfo, "Close to leveling up: " + strings.Join(nearLevel, ", ") + "."})
	}

	ds := rec.DailyStats
	goal := rec.Preferences.DailyGoal
	switch {
	case goal <= 0:
	case ds.GoalReached || ds.QuestionsAttempted >= goal:
		out = append(out, Insight{InsightPositive, fmt.Sprintf("Daily goal of %d questions reached.", goal)})
	case ds.QuestionsAttempted > 0:
		out = append(out, Insight{InsightInfo,
			fmt.Sprintf("%d more questions to reach today's goal of %d.", goal-ds.QuestionsAttempted, goal)})
	}

	return out
}

// accuracyDelta compares the mean accuracy of the latest active days with
// the earliest ones, in percentage points. It needs minTrendDays active
// days.
func accuracyDelta(points []TrendPoint) (float64, bool) {
	var active []TrendPoint
	for _, p := range points {
		if p.Active() {
			active = append(active, p)
		}
	}
	if len(active) < minTrendDays {
		return 0, false
	}
	k := min(TrendCompareDays, len(active)/2)
	early := meanAccuracy(active[:k])
	recent := meanAccuracy(active[len(active)-k:])
	return (recent - early) * 100, true
}

func meanAccuracy(points []TrendPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Accuracy
	}
	return sum / float64(len(points))
}
