// Package daily runs the calendar-day rollover of a progress record: it
// archives the finished day, resets today's accumulator and maintains the
// study streak.
package daily

import (
	"time"

	"github.com/abhisek/prepiz/internal/progress"
)

// StreakMilestoneEvery is the streak length whose multiples emit a
// STREAK_MILESTONE achievement.
const StreakMilestoneEvery = 7

// Result describes what a Check changed.
type Result struct {
	// IsNewDay is true on the first mutating call of a calendar day.
	IsNewDay bool

	// Archived is the snapshot moved into the daily history, if any.
	Archived *progress.DailySnapshot

	// Milestone is set when the streak reached a multiple of
	// StreakMilestoneEvery.
	Milestone *progress.Achievement
}

// Check must run before any mutation of rec on date today. It is a no-op
// when today was already seen. A today earlier than the last study date is
// treated as the same day.
func Check(rec *progress.Record, today progress.Date, now time.Time) Result {
	var res Result

	ds := rec.DailyStats
	if ds.Date != today && (ds.Date.IsZero() || ds.Date.Before(today)) {
		if !ds.Date.IsZero() && ds.HasActivity() {
			snap := progress.SnapshotOf(ds)
			if rec.ArchiveDay(snap) {
				res.Archived = &snap
			}
		}
		rec.DailyStats = progress.NewDailyStats(today)
	}

	last := rec.OverallStats.LastStudyDate
	if !last.IsZero() && !last.Before(today) {
		return res
	}

	res.IsNewDay = true
	res.Milestone = UpdateStreak(rec, today, now)
	rec.OverallStats.LastStudyDate = today
	return res
}

// UpdateStreak applies the day-adjacency streak rule for activity on
// today. It does not touch LastStudyDate. It returns the milestone
// achievement it appended, or nil.
func UpdateStreak(rec *progress.Record, today progress.Date, now time.Time) *progress.Achievement {
	st := &rec.OverallStats
	var milestone *progress.Achievement

	switch {
	case st.LastStudyDate.IsZero():
		st.StudyStreak = 1
		st.TotalStudyDays = 1
	default:
		gap := progress.DaysBetween(st.LastStudyDate, today)
		switch {
		case gap <= 0:
			return nil
		case gap == 1:
			st.StudyStreak++
			st.TotalStudyDays++
			if st.StudyStreak%StreakMilestoneEvery == 0 {
				a := progress.NewAchievement(progress.AchievementStreakMilestone,
					progress.AchievementData{Streak: st.StudyStreak}, now)
				rec.AddAchievement(a)
				milestone = &a
			}
		default:
			st.StudyStreak = 1
			st.TotalStudyDays++
		}
	}

	if st.StudyStreak > st.LongestStreak {
		st.LongestStreak = st.StudyStreak
	}
	return milestone
}

// CheckDailyGoal marks today's goal as reached the first time the
// attempted count meets the learner's goal, appending a DAILY_GOAL
// achievement. Later calls on the same day return nil.
func CheckDailyGoal(rec *progress.Record, now time.Time) *progress.Achievement {
	ds := &rec.DailyStats
	goal := rec.Preferences.DailyGoal
	if ds.GoalReached || goal <= 0 || ds.QuestionsAttempted < goal {
		return nil
	}
	ds.GoalReached = true
	a := progress.NewAchievement(progress.AchievementDailyGoal,
		progress.AchievementData{Goal: goal}, now)
	rec.AddAchievement(a)
	return &a
}
