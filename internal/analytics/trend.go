// Package analytics derives read-only reports from a progress record:
// daily trends, topic breakdowns, difficulty and time analysis, and
// advisory insights.
package analytics

import "github.com/abhisek/prepiz/internal/progress"

// Standard trend windows in days.
const (
	WindowWeek    = 7
	WindowMonth   = 30
	WindowQuarter = 90
)

// TrendPoint is one calendar day of activity.
type TrendPoint struct {
	Date               progress.Date `json:"date"`
	QuestionsAttempted int           `json:"questionsAttempted"`
	QuestionsCorrect   int           `json:"questionsCorrect"`
	Accuracy           float64       `json:"accuracy"`
	TimeSpent          int           `json:"timeSpent"`
	AvgTimePerQuestion float64       `json:"avgTimePerQuestion"`
}

// Active reports whether at least one question was attempted.
func (p TrendPoint) Active() bool { return p.QuestionsAttempted > 0 }

// Trend returns one point per day for the days ending at today, oldest
// first. Days without history are zero-activity points. Today's point
// comes from the live daily accumulator.
func Trend(rec *progress.Record, today progress.Date, days int) []TrendPoint {
	if days <= 0 {
		days = WindowWeek
	}
	points := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDays(-i)
		p := TrendPoint{Date: d}
		switch {
		case d == rec.DailyStats.Date:
			ds := rec.DailyStats
			p.QuestionsAttempted = ds.QuestionsAttempted
			p.QuestionsCorrect = ds.QuestionsCorrect
			p.TimeSpent = ds.TimeSpent
		default:
			if snap, ok := rec.DailyHistory[d]; ok {
				p.QuestionsAttempted = snap.QuestionsAttempted
				p.QuestionsCorrect = snap.QuestionsCorrect
				p.TimeSpent = snap.TimeSpent
			}
		}
		if p.QuestionsAttempted > 0 {
			p.Accuracy = float64(p.QuestionsCorrect) / float64(p.QuestionsAttempted)
			p.AvgTimePerQuestion = float64(p.TimeSpent) / float64(p.QuestionsAttempted)
		}
		points = append(points, p)
	}
	return points
}

// TrendSummary aggregates a trend window.
type TrendSummary struct {
	Days                     int         `json:"days"`
	TotalQuestions           int         `json:"totalQuestions"`
	TotalCorrect             int         `json:"totalCorrect"`
	TotalTime                int         `json:"totalTime"`
	ActiveDays               int         `json:"activeDays"`
	AvgQuestionsPerActiveDay float64     `json:"avgQuestionsPerActiveDay"`
	Accuracy                 float64     `json:"accuracy"`
	Consistency              float64     `json:"consistency"`
	MostProductive           *TrendPoint `json:"mostProductive,omitempty"`
	BestAccuracy             *TrendPoint `json:"bestAccuracy,omitempty"`
}

// Summarize aggregates points. Best days are chosen among active days;
// ties go to the earliest day.
func Summarize(points []TrendPoint) TrendSummary {
	s := TrendSummary{Days: len(points)}
	for i := range points {
		p := points[i]
		s.TotalQuestions += p.QuestionsAttempted
		s.TotalCorrect += p.QuestionsCorrect
		s.TotalTime += p.TimeSpent
		if !p.Active() {
			continue
		}
		s.ActiveDays++
		if s.MostProductive == nil || p.QuestionsAttempted > s.MostProductive.QuestionsAttempted {
			s.MostProductive = &points[i]
		}
		if s.BestAccuracy == nil || p.Accuracy > s.BestAccuracy.Accuracy {
			s.BestAccuracy = &points[i]
		}
	}
	if s.ActiveDays > 0 {
		s.AvgQuestionsPerActiveDay = float64(s.TotalQuestions) / float64(s.ActiveDays)
	}
	if s.TotalQuestions > 0 {
		s.Accuracy = float64(s.TotalCorrect) / float64(s.TotalQuestions)
	}
	if s.Days > 0 {
		s.Consistency = float64(s.ActiveDays) / float64(s.Days)
	}
	return s
}
