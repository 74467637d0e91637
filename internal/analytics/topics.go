package analytics

import (
	"math"

	"github.com/abhisek/prepiz/internal/leveling"
	"github.com/abhisek/prepiz/internal/progress"
)

// Status classifies a topic.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusStruggling Status = "struggling"
	StatusLearning   Status = "learning"
	StatusMastered   Status = "mastered"
)

// Classification thresholds.
const (
	MasteredAccuracy   = 0.80
	StrugglingAccuracy = 0.50
)

// scorePerLevel is a third of the 0-100 progress score.
const scorePerLevel = 33.33

// Classify puts tp in exactly one status.
func Classify(tp *progress.TopicProgress) Status {
	switch {
	case tp == nil || tp.QuestionsAttempted == 0:
		return StatusNotStarted
	case tp.Accuracy >= MasteredAccuracy && tp.Level >= leveling.MaxLevel:
		return StatusMastered
	case tp.Accuracy < StrugglingAccuracy:
		return StatusStruggling
	default:
		return StatusLearning
	}
}

// ProgressScore returns a 0-100 score: a third per level above 1, plus up
// to a third for accuracy.
func ProgressScore(tp *progress.TopicProgress) float64 {
	if tp == nil {
		return 0
	}
	level := tp.Level
	if level < 1 {
		level = 1
	}
	return float64(level-1)*scorePerLevel + math.Min(tp.Accuracy*scorePerLevel, scorePerLevel)
}

// TopicSummary is one row of the topic breakdown.
type TopicSummary struct {
	TopicID     string  `json:"topicId"`
	TopicName   string  `json:"topicName"`
	Level       int     `json:"level"`
	LevelName   string  `json:"levelName"`
	Attempted   int     `json:"attempted"`
	Correct     int     `json:"correct"`
	Accuracy    float64 `json:"accuracy"`
	AverageTime float64 `json:"averageTime"`
	Status      Status  `json:"status"`
	Score       float64 `json:"score"`
}

// Breakdown is the per-topic report.
type Breakdown struct {
	Topics []TopicSummary `json:"topics"`
	Counts map[Status]int `json:"counts"`
}

// TopicBreakdown summarizes every topic in rec, ordered by topic ID.
func TopicBreakdown(rec *progress.Record) Breakdown {
	b := Breakdown{Counts: make(map[Status]int)}
	for _, id := range rec.TopicIDs() {
		tp := rec.Topic(id)
		row := TopicSummary{
			TopicID:     tp.TopicID,
			TopicName:   tp.TopicName,
			Level:       tp.Level,
			LevelName:   leveling.LevelName(tp.Level),
			Attempted:   tp.QuestionsAttempted,
			Correct:     tp.QuestionsCorrect,
			Accuracy:    tp.Accuracy,
			AverageTime: tp.AverageTime,
			Status:      Classify(tp),
			Score:       ProgressScore(tp),
		}
		b.Topics = append(b.Topics, row)
		b.Counts[row.Status]++
	}
	return b
}
