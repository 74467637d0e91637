package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepiz/internal/progress"
	"github.com/abhisek/prepiz/internal/questions"
	"github.com/abhisek/prepiz/internal/selector"
	"github.com/abhisek/prepiz/internal/store"
)

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) set(date string) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	c.t = d.Add(15 * time.Hour)
}

// brokenKV fails every operation.
type brokenKV struct{}

var errBroken = errors.New("backend unavailable")

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errBroken }

func (brokenKV) Set(context.Context, string, []byte) error { return errBroken }

func (brokenKV) Delete(context.Context, string) error { return errBroken }

func (brokenKV) Keys(context.Context, string) ([]string, error) { return nil, errBroken }

func (brokenKV) Close() error { return nil }

func newEngine(t *testing.T, kv store.KV) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{}
	clock.set("2024-01-10")
	e := New(progress.NewStore(kv, "learner", nil),
		WithClock(clock.Now),
		WithLocation(time.UTC),
		WithSelector(selector.New(rand.New(rand.NewPCG(3, 4)))),
	)
	return e, clock
}

func attempt(topic string, correct bool) Attempt {
	return Attempt{TopicID: topic, TopicName: strings.ToUpper(topic[:1]) + topic[1:], IsCorrect: correct, TimeSpentSeconds: 20, QuestionType: "multiple_choice"}
}

func TestRecordAttempt_FirstUse(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, store.NewMemory())

	res, err := e.RecordAttempt(ctx, attempt("kinematics", true))
	require.NoError(t, err)

	assert.True(t, res.IsNewDay)
	assert.False(t, res.LeveledUp)
	assert.Equal(t, 1, res.NewLevel)
	assert.NotEmpty(t, res.Record.UserID)
	assert.Equal(t, progress.Date("2024-01-10"), res.Record.OverallStats.AccountCreated)
	assert.Equal(t, 1, res.Record.OverallStats.StudyStreak)
	assert.Equal(t, progress.Date("2024-01-10"), res.Record.OverallStats.LastStudyDate)

	stored := e.Progress(ctx)
	assert.Equal(t, res.Record.UserID, stored.UserID)
	assert.Equal(t, 1, stored.Topic("kinematics").QuestionsAttempted)
}

func TestRecordAttempt_Validation(t *testing.T) {
	e, _ := newEngine(t, store.NewMemory())

	_, err := e.RecordAttempt(context.Background(), Attempt{TopicID: " "})
	var verr *progress.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "topicId", verr.Field)

	_, err = e.RecordAttempt(context.Background(), Attempt{TopicID: "t", TimeSpentSeconds: -1})
	require.ErrorAs(t, err, &verr)
}

func TestRecordAttempt_LevelUpScenario(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, store.NewMemory())

	var last *AttemptResult
	ups := 0
	for i := 0; i < 15; i++ {
		res, err := e.RecordAttempt(ctx, attempt("kinematics", i%4 != 1))
		require.NoError(t, err)
		if res.LeveledUp {
			ups++
		}
		last = res
	}

	tp := last.Record.Topic("kinematics")
	require.Equal(t, 11, tp.QuestionsCorrect, "scenario needs 11 of 15 correct")
	assert.Equal(t, 1, ups)
	assert.True(t, last.LeveledUp)
	assert.Equal(t, 2, last.NewLevel)
	assert.Equal(t, []int{1, 2}, tp.LevelUnlocked)

	require.NotEmpty(t, last.Achievements)
	up := last.Achievements[len(last.Achievements)-1]
	assert.Equal(t, progress.AchievementLevelUp, up.Type)
	assert.Equal(t, "Kinematics", up.Data.TopicName)
	assert.Equal(t, 2, up.Data.Level)

	assert.Equal(t, 2, e.TopicProgress(ctx, "kinematics").Level, "level persisted")
}

func TestRecordAttempt_StreakScenario(t *testing.T) {
	ctx := context.Background()
	e, clock := newEngine(t, store.NewMemory())

	_, err := e.RecordAttempt(ctx, attempt("optics", true))
	require.NoError(t, err)

	clock.set("2024-01-11")
	res, err := e.RecordAttempt(ctx, attempt("optics", true))
	require.NoError(t, err)
	assert.True(t, res.IsNewDay)
	assert.Equal(t, 2, res.Record.OverallStats.StudyStreak)

	res, err = e.RecordAttempt(ctx, attempt("optics", false))
	require.NoError(t, err)
	assert.False(t, res.IsNewDay)
	assert.Equal(t, 2, res.Record.OverallStats.StudyStreak)

	clock.set("2024-01-14")
	res, err = e.RecordAttempt(ctx, attempt("optics", true))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Record.OverallStats.StudyStreak)
	assert.Equal(t, 3, res.Record.OverallStats.TotalStudyDays)
	assert.Equal(t, 2, res.Record.OverallStats.LongestStreak)

	hist := res.Record.DailyHistory
	require.Contains(t, hist, progress.Date("2024-01-11"))
	assert.Equal(t, 2, hist["2024-01-11"].QuestionsAttempted)
	assert.Equal(t, []string{"optics"}, hist["2024-01-11"].TopicsStudied)
}

func TestRecordAttempt_DailyGoal(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, store.NewMemory())
	require.NoError(t, e.UpdatePreferences(ctx, progress.Preferences{DailyGoal: 3}))

	var goals int
	for i := 0; i < 5; i++ {
		res, err := e.RecordAttempt(ctx, attempt("waves", true))
		require.NoError(t, err)
		for _, a := range res.Achievements {
			if a.Type == progress.AchievementDailyGoal {
				goals++
				assert.Equal(t, 2, i, "goal on the third attempt")
			}
		}
	}
	assert.Equal(t, 1, goals)
}

func TestRecordAttempt_StorageFailure(t *testing.T) {
	e, _ := newEngine(t, brokenKV{})

	res, err := e.RecordAttempt(context.Background(), attempt("t", true))
	assert.Nil(t, res)
	var serr *progress.StorageError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, errBroken)

	// Reads degrade to an empty record.
	rec := e.Progress(context.Background())
	require.NotNil(t, rec)
	assert.Zero(t, rec.OverallStats.TotalQuestions)
	assert.NotNil(t, e.Dashboard(context.Background(), 7))
	assert.Empty(t, e.Achievements(context.Background(), false))
}

func TestRecordAttempt_AccuracyInvariant(t *testing.T) {
	ctx := context.Background()
	e, clock := newEngine(t, store.NewMemory())
	r := rand.New(rand.NewPCG(9, 9))

	for i := 0; i < 120; i++ {
		if i%10 == 0 {
			clock.t = clock.t.Add(24 * time.Hour)
		}
		topic := fmt.Sprintf("topic-%d", r.IntN(3))
		res, err := e.RecordAttempt(ctx, Attempt{TopicID: topic, IsCorrect: r.IntN(4) != 0, QuestionID: fmt.Sprintf("q%d", i)})
		require.NoError(t, err)
		for _, tp := range res.Record.TopicProgress {
			require.InDelta(t, float64(tp.QuestionsCorrect)/float64(tp.QuestionsAttempted), tp.Accuracy, 1e-12)
			require.LessOrEqual(t, len(tp.RecentAttempts), progress.RecentAttemptsCap)
			require.LessOrEqual(t, len(tp.QuestionHistory), progress.QuestionHistoryCap)
		}
		require.LessOrEqual(t, len(res.Record.DailyHistory), progress.MaxHistoryDays)
	}
}

func bankPool() []questions.Question {
	var pool []questions.Question
	for _, d := range questions.Difficulties {
		for i := 0; i < 10; i++ {
			pool = append(pool, questions.Question{
				ID: fmt.Sprintf("%s-%d", d, i), TopicID: "kinematics", Difficulty: d, Level: 1,
			})
		}
	}
	pool = append(pool, questions.Question{ID: "other", TopicID: "optics", Difficulty: questions.Easy, Level: 1})
	return pool
}

func TestSelectQuestions(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, store.NewMemory())

	_, err := e.RecordAttempt(ctx, Attempt{TopicID: "kinematics", QuestionID: "easy-0", IsCorrect: true})
	require.NoError(t, err)
	before, err := json.Marshal(e.Progress(ctx))
	require.NoError(t, err)

	batch := e.SelectQuestions(ctx, "kinematics", bankPool(), 10, selector.Options{ExcludeAnswered: true})
	require.Len(t, batch, 10)
	for _, q := range batch {
		assert.NotEqual(t, "easy-0", q.ID)
		assert.Equal(t, "kinematics", q.TopicID)
	}

	after, err := json.Marshal(e.Progress(ctx))
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "selection must not write")

	assert.Empty(t, e.SelectQuestions(ctx, "thermo", bankPool(), 10, selector.Options{}))
}

func TestCompleteSession(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, store.NewMemory())

	rec, err := e.CompleteSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.DailyStats.SessionsCompleted)

	rec, err = e.CompleteSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.DailyStats.SessionsCompleted)
}

func TestAchievementsAndMarkSeen(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, store.NewMemory())
	for i := 0; i < 15; i++ {
		_, err := e.RecordAttempt(ctx, attempt("optics", true))
		require.NoError(t, err)
	}

	unseen := e.Achievements(ctx, true)
	require.Len(t, unseen, 1)

	n, err := e.MarkSeen(ctx, unseen[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, e.Achievements(ctx, true))
	assert.Len(t, e.Achievements(ctx, false), 1)

	n, err = e.MarkSeen(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdatePreferences_Invalid(t *testing.T) {
	e, _ := newEngine(t, store.NewMemory())
	err := e.UpdatePreferences(context.Background(), progress.Preferences{DailyGoal: 0})
	var verr *progress.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestWithDailyGoal_SeedsNewRecords(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	e := New(progress.NewStore(kv, "learner", nil), WithDailyGoal(3))

	assert.Equal(t, 3, e.Progress(ctx).Preferences.DailyGoal)

	_, err := e.RecordAttempt(ctx, attempt("optics", true))
	require.NoError(t, err)
	assert.Equal(t, 3, e.Progress(ctx).Preferences.DailyGoal)

	// An existing record keeps its own goal.
	other := New(progress.NewStore(kv, "learner", nil), WithDailyGoal(50))
	assert.Equal(t, 3, other.Progress(ctx).Preferences.DailyGoal)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src, clock := newEngine(t, store.NewMemory())
	for i := 0; i < 5; i++ {
		_, err := src.RecordAttempt(ctx, attempt("optics", i != 2))
		require.NoError(t, err)
	}

	exp, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress.ExportVersion, exp.Version)
	assert.Equal(t, clock.t, exp.ExportedAt)
	raw, err := json.Marshal(exp)
	require.NoError(t, err)

	dst, _ := newEngine(t, store.NewMemory())
	_, err = dst.RecordAttempt(ctx, attempt("waves", true))
	require.NoError(t, err)
	dstID := dst.Progress(ctx).UserID

	rec, err := dst.Import(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, dstID, rec.UserID)
	assert.Equal(t, exp.Record.UserID, rec.PreviousUserID)
	require.NotNil(t, rec.ImportedAt)

	stored := dst.Progress(ctx)
	assert.Nil(t, stored.Topic("waves"), "import replaces wholesale")
	assert.Equal(t, 5, stored.Topic("optics").QuestionsAttempted)
	assert.Equal(t, 4, stored.OverallStats.TotalCorrect)
}

func TestImport_RejectsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, store.NewMemory())
	_, err := e.RecordAttempt(ctx, attempt("waves", true))
	require.NoError(t, err)

	for _, payload := range []string{
		`{"overallStats": {"totalQuestions": 1, "totalCorrect": 1, "studyStreak": 1}}`,
		`{"userId": "someone"}`,
		`[]`,
	} {
		_, err := e.Import(ctx, []byte(payload))
		var verr *progress.ValidationError
		require.ErrorAs(t, err, &verr, payload)
	}
	assert.NotNil(t, e.Progress(ctx).Topic("waves"))
}

func TestResetWithBackup(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	e, clock := newEngine(t, kv)
	_, err := e.RecordAttempt(ctx, attempt("waves", true))
	require.NoError(t, err)
	userID := e.Progress(ctx).UserID

	clock.set("2024-02-01")
	key, rec, err := e.ResetWithBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("progress:learner:backup:%d", clock.t.Unix()), key)
	assert.Equal(t, userID, rec.UserID)
	assert.Empty(t, rec.TopicProgress)
	assert.Equal(t, progress.Date("2024-02-01"), rec.OverallStats.AccountCreated)

	backups, err := e.Backups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, backups)

	raw, err := kv.Get(ctx, key)
	require.NoError(t, err)
	old, err := progress.Decode(raw)
	require.NoError(t, err)
	assert.NotNil(t, old.Topic("waves"))
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	e, clock := newEngine(t, store.NewMemory())
	for day := 0; day < 3; day++ {
		for i := 0; i < 4; i++ {
			_, err := e.RecordAttempt(ctx, attempt("optics", i != 0))
			require.NoError(t, err)
		}
		clock.t = clock.t.Add(24 * time.Hour)
	}
	clock.t = clock.t.Add(-24 * time.Hour)

	d := e.Dashboard(ctx, 7)
	assert.Equal(t, 7, len(d.Trend))
	assert.Equal(t, 12, d.Summary.TotalQuestions)
	assert.Equal(t, 3, d.Summary.ActiveDays)
	assert.Equal(t, 3, d.Overall.StudyStreak)
	require.Len(t, d.Topics.Topics, 1)
	assert.InDelta(t, 0.75, d.Topics.Topics[0].Accuracy, 1e-9)
}
