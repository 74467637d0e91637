package engine

import (
	"context"

	"github.com/abhisek/prepiz/internal/questions"
	"github.com/abhisek/prepiz/internal/selector"
)

// SelectQuestions picks count questions of topicID from pool. Questions
// of other topics are ignored. It never writes; an unreadable record is
// treated as a learner with no history.
func (e *Engine) SelectQuestions(ctx context.Context, topicID string, pool []questions.Question, count int, opts selector.Options) []questions.Question {
	var topical []questions.Question
	for _, q := range pool {
		if q.TopicID == "" || q.TopicID == topicID {
			topical = append(topical, q)
		}
	}

	rec := e.view(ctx)
	profile := selector.ProfileOf(rec.Topic(topicID))

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selector.Select(topical, count, profile, opts)
}
