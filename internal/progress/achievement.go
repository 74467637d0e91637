package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AchievementType identifies the kind of notable event.
type AchievementType string

const (
	AchievementLevelUp         AchievementType = "LEVEL_UP"
	AchievementStreakMilestone AchievementType = "STREAK_MILESTONE"
	AchievementDailyGoal       AchievementType = "DAILY_GOAL"
)

// AchievementData carries the type-specific payload.
type AchievementData struct {
	TopicID   string `json:"topicId,omitempty"`
	TopicName string `json:"topicName,omitempty"`
	Level     int    `json:"level,omitempty"`
	Streak    int    `json:"streak,omitempty"`
	Goal      int    `json:"goal,omitempty"`
}

// Achievement is immutable once appended, except for Seen.
type Achievement struct {
	ID        string          `json:"id"`
	Type      AchievementType `json:"type"`
	Data      AchievementData `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	Seen      bool            `json:"seen"`
}

// NewAchievement creates an unseen achievement with a fresh ID.
func NewAchievement(t AchievementType, data AchievementData, at time.Time) Achievement {
	return Achievement{
		ID:        uuid.NewString(),
		Type:      t,
		Data:      data,
		Timestamp: at,
	}
}

// Message returns a human-readable description.
func (a Achievement) Message() string {
	switch a.Type {
	case AchievementLevelUp:
		return fmt.Sprintf("%s reached Level %d", a.Data.TopicName, a.Data.Level)
	case AchievementStreakMilestone:
		return fmt.Sprintf("%d-day study streak!", a.Data.Streak)
	case AchievementDailyGoal:
		return fmt.Sprintf("Daily goal of %d questions reached", a.Data.Goal)
	default:
		return string(a.Type)
	}
}

// AddAchievement appends a to the record's achievement log.
func (r *Record) AddAchievement(a Achievement) {
	r.Achievements = append(r.Achievements, a)
}

// MarkSeen flips Seen on the achievements with the given IDs, or on all
// unseen achievements when no IDs are given. Returns how many changed.
func (r *Record) MarkSeen(ids ...string) int {
	want := NewStringSet(ids...)
	n := 0
	for i := range r.Achievements {
		a := &r.Achievements[i]
		if a.Seen {
			continue
		}
		if len(ids) == 0 || want.Has(a.ID) {
			a.Seen = true
			n++
		}
	}
	return n
}

// UnseenAchievements returns copies of achievements not yet seen.
func (r *Record) UnseenAchievements() []Achievement {
	var out []Achievement
	for _, a := range r.Achievements {
		if !a.Seen {
			out = append(out, a)
		}
	}
	return out
}
