package engine

import (
	"context"
	"strings"
	"time"

	"github.com/abhisek/prepiz/internal/daily"
	"github.com/abhisek/prepiz/internal/leveling"
	"github.com/abhisek/prepiz/internal/progress"
)

// Attempt is one graded answer.
type Attempt struct {
	TopicID          string
	TopicName        string
	IsCorrect        bool
	TimeSpentSeconds int
	QuestionType     string
	QuestionID       string
	Tags             []string

	// At defaults to the engine clock.
	At time.Time
}

// AttemptResult reports what an attempt changed.
type AttemptResult struct {
	Record    *progress.Record
	LeveledUp bool
	NewLevel  int
	IsNewDay  bool

	// LevelUp is set when LeveledUp is true.
	LevelUp *leveling.LevelUp

	// Achievements appended by this attempt, in order.
	Achievements []progress.Achievement
}

func (a Attempt) validate() error {
	if strings.TrimSpace(a.TopicID) == "" {
		return &progress.ValidationError{Field: "topicId", Reason: "required"}
	}
	if a.TimeSpentSeconds < 0 {
		return &progress.ValidationError{Field: "timeSpentSeconds", Reason: "must not be negative"}
	}
	return nil
}

// RecordAttempt is the only way attempts enter the record. It runs the
// daily rollover check, updates topic, overall and daily stats, evaluates
// level progression and saves. If the save fails the in-memory result is
// still returned along with the error.
func (e *Engine) RecordAttempt(ctx context.Context, a Attempt) (*AttemptResult, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now, today := e.clock()
	rec, err := e.load(ctx, today)
	if err != nil {
		return nil, err
	}

	at := a.At
	if at.IsZero() {
		at = now
	}

	res := &AttemptResult{Record: rec}
	log := e.log.With("topic", a.TopicID)

	day := daily.Check(rec, today, now)
	res.IsNewDay = day.IsNewDay
	if day.Milestone != nil {
		res.Achievements = append(res.Achievements, *day.Milestone)
		log.Info("streak milestone", "streak", day.Milestone.Data.Streak)
	}

	rec.ApplyAttempt(progress.AttemptInput{
		TopicID:          a.TopicID,
		TopicName:        a.TopicName,
		IsCorrect:        a.IsCorrect,
		TimeSpentSeconds: a.TimeSpentSeconds,
		QuestionType:     a.QuestionType,
		QuestionID:       a.QuestionID,
		Tags:             a.Tags,
		At:               at,
	})

	if goal := daily.CheckDailyGoal(rec, now); goal != nil {
		res.Achievements = append(res.Achievements, *goal)
		log.Info("daily goal reached", "goal", goal.Data.Goal)
	}

	if up := leveling.Apply(rec, a.TopicID, now); up != nil {
		res.LeveledUp = true
		res.NewLevel = up.To
		res.LevelUp = up
		res.Achievements = append(res.Achievements, up.Achievement)
		log.Info("level up", "from", up.From, "to", up.To)
	} else {
		res.NewLevel = rec.Topic(a.TopicID).Level
	}

	if err := e.store.Save(ctx, rec); err != nil {
		return res, err
	}
	return res, nil
}

// CompleteSession counts a finished practice session for today.
func (e *Engine) CompleteSession(ctx context.Context) (*progress.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now, today := e.clock()
	rec, err := e.load(ctx, today)
	if err != nil {
		return nil, err
	}
	daily.Check(rec, today, now)
	rec.DailyStats.SessionsCompleted++
	if err := e.store.Save(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}
