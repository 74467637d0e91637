package progress

import "time"

// AttemptInput is one graded answer as seen by the record.
type AttemptInput struct {
	TopicID          string
	TopicName        string
	IsCorrect        bool
	TimeSpentSeconds int
	QuestionType     string
	QuestionID       string
	Tags             []string
	At               time.Time
}

// ApplyAttempt folds one attempt into the topic, overall and daily
// counters. It does not perform day rollover or level evaluation; callers
// run those around it. Returns the updated topic.
func (r *Record) ApplyAttempt(in AttemptInput) *TopicProgress {
	secs := in.TimeSpentSeconds
	if secs < 0 {
		secs = 0
	}

	tp := r.EnsureTopic(in.TopicID, in.TopicName)
	tp.QuestionsAttempted++
	if in.IsCorrect {
		tp.QuestionsCorrect++
	}
	tp.TotalTime += secs
	at := in.At
	tp.LastAttempted = &at
	tp.RecomputeAccuracy()

	tp.RecentAttempts = appendBounded(tp.RecentAttempts, AttemptEntry{
		Correct:   in.IsCorrect,
		TimeSpent: secs,
		At:        in.At,
	}, RecentAttemptsCap)
	tp.QuestionHistory = appendBounded(tp.QuestionHistory, QuestionEntry{
		QuestionID:   in.QuestionID,
		QuestionType: in.QuestionType,
		Level:        tp.Level,
		Correct:      in.IsCorrect,
		TimeSpent:    secs,
		At:           in.At,
	}, QuestionHistoryCap)

	if in.QuestionType != "" {
		tally, ok := tp.QuestionTypes[in.QuestionType]
		if !ok {
			tally = &TypeTally{}
			tp.QuestionTypes[in.QuestionType] = tally
		}
		tally.Attempted++
		if in.IsCorrect {
			tally.Correct++
		}
	}
	for _, tag := range in.Tags {
		if tag == "" {
			continue
		}
		if in.IsCorrect {
			tp.Strengths[tag]++
		} else {
			tp.Weaknesses[tag]++
		}
	}

	st := &r.OverallStats
	st.TotalQuestions++
	if in.IsCorrect {
		st.TotalCorrect++
	}
	st.AverageAccuracy = ratio(st.TotalCorrect, st.TotalQuestions)
	st.TotalTimeSpent += secs

	ds := &r.DailyStats
	ds.QuestionsAttempted++
	if in.IsCorrect {
		ds.QuestionsCorrect++
	}
	ds.TimeSpent += secs
	if ds.TopicsStudied == nil {
		ds.TopicsStudied = NewStringSet()
	}
	ds.TopicsStudied.Add(in.TopicID)
	if ds.QuestionsAttempted > st.MaxDailyQuestions {
		st.MaxDailyQuestions = ds.QuestionsAttempted
	}

	return tp
}
