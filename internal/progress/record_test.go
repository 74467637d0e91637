package progress

import (
	"fmt"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func TestDate(t *testing.T) {
	d := DateOf(t0)
	if d != "2024-01-10" {
		t.Fatalf("DateOf = %s, want 2024-01-10", d)
	}
	if got := d.AddDays(1); got != "2024-01-11" {
		t.Errorf("AddDays(1) = %s", got)
	}
	if got := Date("2024-02-28").AddDays(2); got != "2024-03-01" {
		t.Errorf("leap AddDays = %s, want 2024-03-01", got)
	}
	if got := DaysBetween("2024-01-10", "2024-01-14"); got != 4 {
		t.Errorf("DaysBetween = %d, want 4", got)
	}
	if got := DaysBetween("2024-01-14", "2024-01-10"); got != -4 {
		t.Errorf("DaysBetween reversed = %d, want -4", got)
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("ParseDate: expected error for month 13")
	}
}

func TestApplyAttempt_AccuracyInvariant(t *testing.T) {
	rec := New("u1", "2024-01-10")
	results := []bool{true, false, true, true, false, true}
	for i, correct := range results {
		tp := rec.ApplyAttempt(AttemptInput{
			TopicID:          "kinematics",
			TopicName:        "Kinematics",
			IsCorrect:        correct,
			TimeSpentSeconds: 10,
			At:               t0.Add(time.Duration(i) * time.Minute),
		})
		want := float64(tp.QuestionsCorrect) / float64(tp.QuestionsAttempted)
		if tp.Accuracy != want {
			t.Fatalf("after %d attempts accuracy = %v, want %v", i+1, tp.Accuracy, want)
		}
	}

	tp := rec.Topic("kinematics")
	if tp.QuestionsAttempted != 6 || tp.QuestionsCorrect != 4 {
		t.Errorf("counters = %d/%d, want 4/6", tp.QuestionsCorrect, tp.QuestionsAttempted)
	}
	if tp.AverageTime != 10 {
		t.Errorf("AverageTime = %v, want 10", tp.AverageTime)
	}
	if rec.OverallStats.TotalQuestions != 6 || rec.OverallStats.TotalCorrect != 4 {
		t.Errorf("overall = %d/%d, want 4/6", rec.OverallStats.TotalCorrect, rec.OverallStats.TotalQuestions)
	}
	if rec.DailyStats.QuestionsAttempted != 6 {
		t.Errorf("daily attempted = %d, want 6", rec.DailyStats.QuestionsAttempted)
	}
	if !rec.DailyStats.TopicsStudied.Has("kinematics") {
		t.Error("topic not recorded in TopicsStudied")
	}
	if rec.OverallStats.MaxDailyQuestions != 6 {
		t.Errorf("MaxDailyQuestions = %d, want 6", rec.OverallStats.MaxDailyQuestions)
	}
}

func TestTopicProgress_ZeroAccuracy(t *testing.T) {
	tp := NewTopicProgress("optics", "")
	tp.RecomputeAccuracy()
	if tp.Accuracy != 0 {
		t.Errorf("Accuracy = %v, want 0", tp.Accuracy)
	}
	if tp.TopicName != "optics" {
		t.Errorf("TopicName = %q, want id fallback", tp.TopicName)
	}
	if !tp.HasUnlocked(1) {
		t.Error("level 1 must always be unlocked")
	}
}

func TestApplyAttempt_RingBuffers(t *testing.T) {
	rec := New("u1", "2024-01-10")
	for i := 0; i < 60; i++ {
		rec.ApplyAttempt(AttemptInput{
			TopicID:    "waves",
			IsCorrect:  i%2 == 0,
			QuestionID: fmt.Sprintf("q%02d", i),
			At:         t0.Add(time.Duration(i) * time.Second),
		})
		tp := rec.Topic("waves")
		if len(tp.RecentAttempts) > RecentAttemptsCap {
			t.Fatalf("RecentAttempts len = %d", len(tp.RecentAttempts))
		}
		if len(tp.QuestionHistory) > QuestionHistoryCap {
			t.Fatalf("QuestionHistory len = %d", len(tp.QuestionHistory))
		}
	}

	tp := rec.Topic("waves")
	if len(tp.RecentAttempts) != RecentAttemptsCap {
		t.Errorf("RecentAttempts len = %d, want %d", len(tp.RecentAttempts), RecentAttemptsCap)
	}
	if tp.QuestionHistory[0].QuestionID != "q10" {
		t.Errorf("oldest history = %s, want q10", tp.QuestionHistory[0].QuestionID)
	}
	if tp.QuestionHistory[len(tp.QuestionHistory)-1].QuestionID != "q59" {
		t.Errorf("newest history = %s, want q59", tp.QuestionHistory[len(tp.QuestionHistory)-1].QuestionID)
	}
	for i := 1; i < len(tp.RecentAttempts); i++ {
		if tp.RecentAttempts[i].At.Before(tp.RecentAttempts[i-1].At) {
			t.Fatal("RecentAttempts not chronological")
		}
	}
	if ids := tp.AnsweredIDs(); ids.Has("q09") || !ids.Has("q59") {
		t.Error("AnsweredIDs should reflect only the bounded history")
	}
}

func TestApplyAttempt_TagsAndTypes(t *testing.T) {
	rec := New("u1", "2024-01-10")
	rec.ApplyAttempt(AttemptInput{TopicID: "t", IsCorrect: false, QuestionType: "mcq", Tags: []string{"vectors", "units"}, At: t0})
	rec.ApplyAttempt(AttemptInput{TopicID: "t", IsCorrect: false, QuestionType: "mcq", Tags: []string{"vectors"}, At: t0})
	rec.ApplyAttempt(AttemptInput{TopicID: "t", IsCorrect: true, QuestionType: "numeric", Tags: []string{"units"}, At: t0})

	tp := rec.Topic("t")
	if got := tp.QuestionTypes["mcq"]; got.Attempted != 2 || got.Correct != 0 {
		t.Errorf("mcq tally = %+v", got)
	}
	weak := tp.WeakTags()
	if len(weak) != 1 || weak[0] != "vectors" {
		t.Errorf("WeakTags = %v, want [vectors]", weak)
	}
}

func TestArchiveDay_Bounded(t *testing.T) {
	rec := New("u1", "2024-01-01")
	start := Date("2024-01-01")
	for i := 0; i < MaxHistoryDays; i++ {
		rec.ArchiveDay(DailySnapshot{Date: start.AddDays(i), QuestionsAttempted: 1})
	}
	if len(rec.DailyHistory) != MaxHistoryDays {
		t.Fatalf("len = %d, want %d", len(rec.DailyHistory), MaxHistoryDays)
	}

	rec.ArchiveDay(DailySnapshot{Date: start.AddDays(MaxHistoryDays), QuestionsAttempted: 1})
	if len(rec.DailyHistory) != MaxHistoryDays {
		t.Errorf("len = %d, want %d", len(rec.DailyHistory), MaxHistoryDays)
	}
	if _, ok := rec.DailyHistory[start]; ok {
		t.Error("oldest date should have been evicted")
	}
	if _, ok := rec.DailyHistory[start.AddDays(MaxHistoryDays)]; !ok {
		t.Error("new date missing")
	}
	dates := rec.HistoryDates()
	if dates[0] != start.AddDays(1) {
		t.Errorf("oldest remaining = %s, want %s", dates[0], start.AddDays(1))
	}
}

func TestArchiveDay_NeverOverwrites(t *testing.T) {
	rec := New("u1", "2024-01-01")
	rec.ArchiveDay(DailySnapshot{Date: "2024-01-01", QuestionsAttempted: 5})
	if rec.ArchiveDay(DailySnapshot{Date: "2024-01-01", QuestionsAttempted: 9}) {
		t.Error("ArchiveDay should refuse an existing date")
	}
	if rec.DailyHistory["2024-01-01"].QuestionsAttempted != 5 {
		t.Error("archived snapshot was mutated")
	}
}

func TestMarkSeen(t *testing.T) {
	rec := New("u1", "2024-01-01")
	a := NewAchievement(AchievementLevelUp, AchievementData{TopicName: "Optics", Level: 2}, t0)
	b := NewAchievement(AchievementStreakMilestone, AchievementData{Streak: 7}, t0)
	rec.AddAchievement(a)
	rec.AddAchievement(b)

	if n := rec.MarkSeen(a.ID); n != 1 {
		t.Errorf("MarkSeen = %d, want 1", n)
	}
	unseen := rec.UnseenAchievements()
	if len(unseen) != 1 || unseen[0].ID != b.ID {
		t.Errorf("unseen = %+v", unseen)
	}
	if n := rec.MarkSeen(); n != 1 {
		t.Errorf("MarkSeen(all) = %d, want 1", n)
	}
	if a.Message() != "Optics reached Level 2" {
		t.Errorf("Message = %q", a.Message())
	}
}

func TestNormalize(t *testing.T) {
	rec := &Record{
		UserID: "u",
		TopicProgress: map[string]*TopicProgress{
			"x": {Level: 3, QuestionsAttempted: 4, QuestionsCorrect: 3},
			"y": nil,
		},
	}
	rec.Normalize()

	tp := rec.Topic("x")
	if tp.TopicID != "x" {
		t.Errorf("TopicID = %q", tp.TopicID)
	}
	if len(tp.LevelUnlocked) != 3 {
		t.Errorf("LevelUnlocked = %v, want [1 2 3]", tp.LevelUnlocked)
	}
	if tp.Accuracy != 0.75 {
		t.Errorf("Accuracy = %v, want 0.75", tp.Accuracy)
	}
	if _, ok := rec.TopicProgress["y"]; ok {
		t.Error("nil topic should be dropped")
	}
	if rec.Preferences.DailyGoal != DefaultDailyGoal {
		t.Errorf("DailyGoal = %d", rec.Preferences.DailyGoal)
	}
}
