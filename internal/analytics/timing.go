package analytics

import "github.com/abhisek/prepiz/internal/progress"

// TopicTime is a topic's average seconds per question.
type TopicTime struct {
	TopicID     string  `json:"topicId"`
	TopicName   string  `json:"topicName"`
	AverageTime float64 `json:"averageTime"`
}

// TimeReport summarizes where study time goes.
type TimeReport struct {
	TotalTime      int         `json:"totalTime"`
	AvgPerQuestion float64     `json:"avgPerQuestion"`
	Topics         []TopicTime `json:"topics"`
	Fastest        *TopicTime  `json:"fastest,omitempty"`
	Slowest        *TopicTime  `json:"slowest,omitempty"`
}

// TimeAnalysis reports time per question overall and per attempted topic.
// Ties go to the lower topic ID.
func TimeAnalysis(rec *progress.Record) TimeReport {
	st := rec.OverallStats
	r := TimeReport{TotalTime: st.TotalTimeSpent}
	if st.TotalQuestions > 0 {
		r.AvgPerQuestion = float64(st.TotalTimeSpent) / float64(st.TotalQuestions)
	}

	for _, id := range rec.TopicIDs() {
		tp := rec.Topic(id)
		if tp.QuestionsAttempted == 0 {
			continue
		}
		r.Topics = append(r.Topics, TopicTime{TopicID: tp.TopicID, TopicName: tp.TopicName, AverageTime: tp.AverageTime})
	}
	for i := range r.Topics {
		t := &r.Topics[i]
		if r.Fastest == nil || t.AverageTime < r.Fastest.AverageTime {
			r.Fastest = t
		}
		if r.Slowest == nil || t.AverageTime > r.Slowest.AverageTime {
			r.Slowest = t
		}
	}
	return r
}
