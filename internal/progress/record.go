package progress

import (
	"sort"
	"time"
)

const (
	// RecordVersion is the current shape of a persisted Record.
	RecordVersion = 2

	// RecentAttemptsCap bounds TopicProgress.RecentAttempts.
	RecentAttemptsCap = 10

	// QuestionHistoryCap bounds TopicProgress.QuestionHistory.
	QuestionHistoryCap = 50

	// DefaultDailyGoal is the questions-per-day goal for new records.
	DefaultDailyGoal = 20
)

// Record is one learner's complete progress state.
type Record struct {
	UserID         string                    `json:"userId"`
	Version        int                       `json:"version"`
	TopicProgress  map[string]*TopicProgress `json:"topicProgress"`
	OverallStats   OverallStats              `json:"overallStats"`
	DailyStats     DailyStats                `json:"dailyStats"`
	DailyHistory   map[Date]DailySnapshot    `json:"dailyHistory"`
	Achievements   []Achievement             `json:"achievements"`
	Preferences    Preferences               `json:"preferences"`
	ImportedAt     *time.Time                `json:"importedAt,omitempty"`
	PreviousUserID string                    `json:"previousUserId,omitempty"`
}

// OverallStats aggregates lifetime counters.
type OverallStats struct {
	TotalQuestions    int     `json:"totalQuestions"`
	TotalCorrect      int     `json:"totalCorrect"`
	AverageAccuracy   float64 `json:"averageAccuracy"`
	StudyStreak       int     `json:"studyStreak"`
	LongestStreak     int     `json:"longestStreak"`
	LastStudyDate     Date    `json:"lastStudyDate,omitempty"`
	TotalTimeSpent    int     `json:"totalTimeSpent"`
	MaxDailyQuestions int     `json:"maxDailyQuestions"`
	TotalStudyDays    int     `json:"totalStudyDays"`
	AccountCreated    Date    `json:"accountCreated"`
}

// DailyStats is today's working accumulator. It is reset in place at most
// once per calendar day.
type DailyStats struct {
	Date               Date      `json:"date"`
	QuestionsAttempted int       `json:"questionsAttempted"`
	QuestionsCorrect   int       `json:"questionsCorrect"`
	TimeSpent          int       `json:"timeSpent"`
	TopicsStudied      StringSet `json:"topicsStudied"`
	SessionsCompleted  int       `json:"sessionsCompleted"`
	GoalReached        bool      `json:"goalReached"`
}

// NewDailyStats returns a zeroed accumulator for date.
func NewDailyStats(date Date) DailyStats {
	return DailyStats{Date: date, TopicsStudied: NewStringSet()}
}

// HasActivity reports whether anything was recorded for the day.
func (d DailyStats) HasActivity() bool {
	return d.QuestionsAttempted > 0 || d.SessionsCompleted > 0
}

// DailySnapshot is an archived, immutable copy of one day's DailyStats.
type DailySnapshot struct {
	Date               Date     `json:"date"`
	QuestionsAttempted int      `json:"questionsAttempted"`
	QuestionsCorrect   int      `json:"questionsCorrect"`
	Accuracy           float64  `json:"accuracy"`
	TimeSpent          int      `json:"timeSpent"`
	TopicsStudied      []string `json:"topicsStudied"`
	SessionsCompleted  int      `json:"sessionsCompleted"`
}

// SnapshotOf freezes d into a DailySnapshot.
func SnapshotOf(d DailyStats) DailySnapshot {
	return DailySnapshot{
		Date:               d.Date,
		QuestionsAttempted: d.QuestionsAttempted,
		QuestionsCorrect:   d.QuestionsCorrect,
		Accuracy:           ratio(d.QuestionsCorrect, d.QuestionsAttempted),
		TimeSpent:          d.TimeSpent,
		TopicsStudied:      d.TopicsStudied.Sorted(),
		SessionsCompleted:  d.SessionsCompleted,
	}
}

// Preferences holds learner settings.
type Preferences struct {
	DailyGoal        int  `json:"dailyGoal"`
	RemindersEnabled bool `json:"remindersEnabled"`
	SoundEnabled     bool `json:"soundEnabled"`
}

// TopicProgress is the mastery state of one topic.
type TopicProgress struct {
	TopicID            string                `json:"topicId"`
	TopicName          string                `json:"topicName"`
	Level              int                   `json:"level"`
	LevelUnlocked      []int                 `json:"levelUnlocked"`
	QuestionsAttempted int                   `json:"questionsAttempted"`
	QuestionsCorrect   int                   `json:"questionsCorrect"`
	Accuracy           float64               `json:"accuracy"`
	TotalTime          int                   `json:"totalTime"`
	AverageTime        float64               `json:"averageTime"`
	LastAttempted      *time.Time            `json:"lastAttempted,omitempty"`
	RecentAttempts     []AttemptEntry        `json:"recentAttempts"`
	QuestionHistory    []QuestionEntry       `json:"questionHistory"`
	QuestionTypes      map[string]*TypeTally `json:"questionTypes"`
	Weaknesses         map[string]int        `json:"weaknesses"`
	Strengths          map[string]int        `json:"strengths"`
}

// AttemptEntry is one element of the recent-attempts ring buffer.
type AttemptEntry struct {
	Correct   bool      `json:"correct"`
	TimeSpent int       `json:"timeSpent"`
	At        time.Time `json:"at"`
}

// QuestionEntry is one element of the question-history ring buffer.
type QuestionEntry struct {
	QuestionID   string    `json:"questionId,omitempty"`
	QuestionType string    `json:"questionType,omitempty"`
	Level        int       `json:"level"`
	Correct      bool      `json:"correct"`
	TimeSpent    int       `json:"timeSpent"`
	At           time.Time `json:"at"`
}

// TypeTally counts correctness for one question type.
type TypeTally struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// NewTopicProgress returns a level-1 topic with nothing attempted.
func NewTopicProgress(id, name string) *TopicProgress {
	if name == "" {
		name = id
	}
	return &TopicProgress{
		TopicID:       id,
		TopicName:     name,
		Level:         1,
		LevelUnlocked: []int{1},
		QuestionTypes: make(map[string]*TypeTally),
		Weaknesses:    make(map[string]int),
		Strengths:     make(map[string]int),
	}
}

// RecomputeAccuracy keeps Accuracy and AverageTime consistent with the
// counters.
func (tp *TopicProgress) RecomputeAccuracy() {
	tp.Accuracy = ratio(tp.QuestionsCorrect, tp.QuestionsAttempted)
	if tp.QuestionsAttempted > 0 {
		tp.AverageTime = float64(tp.TotalTime) / float64(tp.QuestionsAttempted)
	} else {
		tp.AverageTime = 0
	}
}

// HasUnlocked reports whether level was ever reached.
func (tp *TopicProgress) HasUnlocked(level int) bool {
	for _, l := range tp.LevelUnlocked {
		if l == level {
			return true
		}
	}
	return false
}

// Unlock records level as reached and makes it current.
func (tp *TopicProgress) Unlock(level int) {
	if !tp.HasUnlocked(level) {
		tp.LevelUnlocked = append(tp.LevelUnlocked, level)
		sort.Ints(tp.LevelUnlocked)
	}
	if level > tp.Level {
		tp.Level = level
	}
}

// AnsweredIDs returns the question IDs in the question history.
func (tp *TopicProgress) AnsweredIDs() StringSet {
	ids := NewStringSet()
	if tp == nil {
		return ids
	}
	for _, q := range tp.QuestionHistory {
		if q.QuestionID != "" {
			ids.Add(q.QuestionID)
		}
	}
	return ids
}

// WeakTags returns tags answered wrong more often than right, sorted.
func (tp *TopicProgress) WeakTags() []string {
	if tp == nil {
		return nil
	}
	var tags []string
	for tag, misses := range tp.Weaknesses {
		if misses > tp.Strengths[tag] {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// New returns a zeroed record for userID, stamped with today.
func New(userID string, today Date) *Record {
	return &Record{
		UserID:        userID,
		Version:       RecordVersion,
		TopicProgress: make(map[string]*TopicProgress),
		OverallStats:  OverallStats{AccountCreated: today},
		DailyStats:    NewDailyStats(today),
		DailyHistory:  make(map[Date]DailySnapshot),
		Achievements:  []Achievement{},
		Preferences:   Preferences{DailyGoal: DefaultDailyGoal, RemindersEnabled: true, SoundEnabled: true},
	}
}

// Topic returns the progress for id, or nil if the topic was never
// attempted.
func (r *Record) Topic(id string) *TopicProgress {
	return r.TopicProgress[id]
}

// EnsureTopic returns the progress for id, creating it on first use.
func (r *Record) EnsureTopic(id, name string) *TopicProgress {
	tp, ok := r.TopicProgress[id]
	if !ok {
		tp = NewTopicProgress(id, name)
		r.TopicProgress[id] = tp
	}
	if name != "" && tp.TopicName != name {
		tp.TopicName = name
	}
	return tp
}

// TopicIDs returns all topic IDs in ascending order.
func (r *Record) TopicIDs() []string {
	ids := make([]string, 0, len(r.TopicProgress))
	for id := range r.TopicProgress {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Normalize repairs a record that came from outside the engine: nil maps,
// over-long buffers, stale derived fields and missing level-1 unlocks.
func (r *Record) Normalize() {
	if r.Version == 0 {
		r.Version = RecordVersion
	}
	if r.TopicProgress == nil {
		r.TopicProgress = make(map[string]*TopicProgress)
	}
	if r.DailyHistory == nil {
		r.DailyHistory = make(map[Date]DailySnapshot)
	}
	if r.Achievements == nil {
		r.Achievements = []Achievement{}
	}
	if r.DailyStats.TopicsStudied == nil {
		r.DailyStats.TopicsStudied = NewStringSet()
	}
	if r.Preferences.DailyGoal <= 0 {
		r.Preferences.DailyGoal = DefaultDailyGoal
	}
	r.OverallStats.AverageAccuracy = ratio(r.OverallStats.TotalCorrect, r.OverallStats.TotalQuestions)

	for id, tp := range r.TopicProgress {
		if tp == nil {
			delete(r.TopicProgress, id)
			continue
		}
		if tp.TopicID == "" {
			tp.TopicID = id
		}
		if tp.Level < 1 {
			tp.Level = 1
		}
		if tp.Level > 3 {
			tp.Level = 3
		}
		for l := 1; l <= tp.Level; l++ {
			if !tp.HasUnlocked(l) {
				tp.LevelUnlocked = append(tp.LevelUnlocked, l)
			}
		}
		sort.Ints(tp.LevelUnlocked)
		if tp.QuestionTypes == nil {
			tp.QuestionTypes = make(map[string]*TypeTally)
		}
		if tp.Weaknesses == nil {
			tp.Weaknesses = make(map[string]int)
		}
		if tp.Strengths == nil {
			tp.Strengths = make(map[string]int)
		}
		tp.RecentAttempts = trimBounded(tp.RecentAttempts, RecentAttemptsCap)
		tp.QuestionHistory = trimBounded(tp.QuestionHistory, QuestionHistoryCap)
		tp.RecomputeAccuracy()
	}

	r.trimHistory()
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
