// Package leveling implements per-topic level progression. Levels only
// move up, one step per evaluation, and level 3 is terminal.
package leveling

import (
	"time"

	"github.com/abhisek/prepiz/internal/progress"
)

const (
	MinLevel = 1
	MaxLevel = 3
)

// Threshold is the unlock requirement for leaving a level.
type Threshold struct {
	Level             int
	QuestionsRequired int
	AccuracyRequired  float64
}

// DefaultThresholds returns the unlock requirements for levels 1 and 2.
func DefaultThresholds() [2]Threshold {
	return [2]Threshold{
		{Level: 1, QuestionsRequired: 15, AccuracyRequired: 0.70},
		{Level: 2, QuestionsRequired: 20, AccuracyRequired: 0.75},
	}
}

// ThresholdFor returns the requirement for leaving level, or false if
// level is terminal or out of range.
func ThresholdFor(level int) (Threshold, bool) {
	for _, th := range DefaultThresholds() {
		if th.Level == level {
			return th, true
		}
	}
	return Threshold{}, false
}

// LevelName returns a display name for level.
func LevelName(level int) string {
	switch level {
	case 1:
		return "Basic"
	case 2:
		return "Intermediate"
	case 3:
		return "Advanced"
	default:
		return "Unknown"
	}
}

// Met reports whether tp's lifetime counters satisfy th.
func (th Threshold) Met(tp *progress.TopicProgress) bool {
	return tp.QuestionsAttempted >= th.QuestionsRequired &&
		tp.Accuracy >= th.AccuracyRequired
}

// Evaluate returns the level tp should move to, or 0 if it stays.
func Evaluate(tp *progress.TopicProgress) int {
	if tp == nil || tp.Level >= MaxLevel {
		return 0
	}
	th, ok := ThresholdFor(tp.Level)
	if !ok || !th.Met(tp) {
		return 0
	}
	return tp.Level + 1
}

// LevelUp records a level transition for display and logging.
type LevelUp struct {
	TopicID     string
	TopicName   string
	From        int
	To          int
	Achievement progress.Achievement
}

// Apply evaluates topicID in rec right after an attempt. On a transition
// it unlocks the new level and appends a LEVEL_UP achievement. Returns nil
// when nothing changed or the topic is unknown.
func Apply(rec *progress.Record, topicID string, now time.Time) *LevelUp {
	tp := rec.Topic(topicID)
	next := Evaluate(tp)
	if next == 0 {
		return nil
	}

	from := tp.Level
	tp.Unlock(next)

	a := progress.NewAchievement(progress.AchievementLevelUp, progress.AchievementData{
		TopicID:   tp.TopicID,
		TopicName: tp.TopicName,
		Level:     next,
	}, now)
	rec.AddAchievement(a)

	return &LevelUp{
		TopicID:     tp.TopicID,
		TopicName:   tp.TopicName,
		From:        from,
		To:          next,
		Achievement: a,
	}
}

// Remaining describes how far tp is from its next level.
type Remaining struct {
	NextLevel     int
	Questions     int     // more attempts needed, 0 if met
	AccuracyGap   float64 // accuracy points missing, 0 if met
	AccuracyFloor float64
}

// Progress returns how far tp is from leaving its current level. ok is
// false at the terminal level.
func Progress(tp *progress.TopicProgress) (Remaining, bool) {
	if tp == nil {
		tp = progress.NewTopicProgress("", "")
	}
	th, ok := ThresholdFor(tp.Level)
	if !ok {
		return Remaining{}, false
	}
	r := Remaining{NextLevel: tp.Level + 1, AccuracyFloor: th.AccuracyRequired}
	if n := th.QuestionsRequired - tp.QuestionsAttempted; n > 0 {
		r.Questions = n
	}
	if gap := th.AccuracyRequired - tp.Accuracy; gap > 0 {
		r.AccuracyGap = gap
	}
	return r, true
}
