package analytics

import (
	"github.com/abhisek/prepiz/internal/progress"
	"github.com/abhisek/prepiz/internal/questions"
)

// DifficultyBucket aggregates correctness for one difficulty.
type DifficultyBucket struct {
	Difficulty questions.Difficulty `json:"difficulty"`
	Attempted  int                  `json:"attempted"`
	Correct    int                  `json:"correct"`
	Accuracy   float64              `json:"accuracy"`
}

// difficultyOfLevel maps a topic level to the difficulty it stands for.
func difficultyOfLevel(level int) questions.Difficulty {
	switch {
	case level >= 3:
		return questions.Hard
	case level == 2:
		return questions.Medium
	default:
		return questions.Easy
	}
}

// DifficultyAnalysis buckets each topic's lifetime counters by the
// difficulty its current level stands for. Question tags are not used.
func DifficultyAnalysis(rec *progress.Record) []DifficultyBucket {
	buckets := make([]DifficultyBucket, len(questions.Difficulties))
	index := make(map[questions.Difficulty]int, len(questions.Difficulties))
	for i, d := range questions.Difficulties {
		buckets[i].Difficulty = d
		index[d] = i
	}

	for _, tp := range rec.TopicProgress {
		b := &buckets[index[difficultyOfLevel(tp.Level)]]
		b.Attempted += tp.QuestionsAttempted
		b.Correct += tp.QuestionsCorrect
	}
	for i := range buckets {
		if buckets[i].Attempted > 0 {
			buckets[i].Accuracy = float64(buckets[i].Correct) / float64(buckets[i].Attempted)
		}
	}
	return buckets
}
