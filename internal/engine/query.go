package engine

import (
	"context"

	"github.com/abhisek/prepiz/internal/analytics"
	"github.com/abhisek/prepiz/internal/progress"
)

// Progress returns the learner's record. A missing or unreadable record
// yields an empty one.
func (e *Engine) Progress(ctx context.Context) *progress.Record {
	return e.view(ctx)
}

// TopicProgress returns the progress of topicID, or a fresh level-1 topic
// if it was never attempted.
func (e *Engine) TopicProgress(ctx context.Context, topicID string) *progress.TopicProgress {
	if tp := e.view(ctx).Topic(topicID); tp != nil {
		return tp
	}
	return progress.NewTopicProgress(topicID, "")
}

// Dashboard builds every analytics report over the last window days.
func (e *Engine) Dashboard(ctx context.Context, window int) *analytics.Dashboard {
	_, today := e.clock()
	return analytics.Build(e.view(ctx), today, window)
}

// Achievements lists achievements, oldest first.
func (e *Engine) Achievements(ctx context.Context, unseenOnly bool) []progress.Achievement {
	rec := e.view(ctx)
	if unseenOnly {
		return rec.UnseenAchievements()
	}
	return append([]progress.Achievement(nil), rec.Achievements...)
}

// MarkSeen flags the given achievements as seen, or all of them when no
// IDs are given. Returns how many changed.
func (e *Engine) MarkSeen(ctx context.Context, ids ...string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.store.Load(ctx)
	if err != nil || rec == nil {
		return 0, err
	}
	n := rec.MarkSeen(ids...)
	if n == 0 {
		return 0, nil
	}
	if err := e.store.Save(ctx, rec); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdatePreferences replaces the learner's preferences.
func (e *Engine) UpdatePreferences(ctx context.Context, prefs progress.Preferences) error {
	if prefs.DailyGoal <= 0 {
		return &progress.ValidationError{Field: "dailyGoal", Reason: "must be positive"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	_, today := e.clock()
	rec, err := e.load(ctx, today)
	if err != nil {
		return err
	}
	rec.Preferences = prefs
	return e.store.Save(ctx, rec)
}
