package progress

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/prepiz/internal/logger"
	"github.com/abhisek/prepiz/internal/store"
)

// failingKV fails every call with err.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error    { return f.err }
func (f failingKV) Delete(context.Context, string) error         { return f.err }
func (f failingKV) Keys(context.Context, string) ([]string, error) { return nil, f.err }
func (f failingKV) Close() error                                 { return nil }

func newTestStore() (*Store, *store.Memory) {
	kv := store.NewMemory()
	return NewStore(kv, "u1", logger.Nop()), kv
}

func TestStore_LoadMissing(t *testing.T) {
	s, _ := newTestStore()
	rec, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil record when nothing stored")
	}
}

func TestStore_InitializeAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	rec, err := s.Initialize(ctx, "u1", "2024-01-10")
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if rec.OverallStats.AccountCreated != "2024-01-10" || rec.DailyStats.Date != "2024-01-10" {
		t.Errorf("dates not stamped: %+v / %+v", rec.OverallStats, rec.DailyStats)
	}

	rec.ApplyAttempt(AttemptInput{TopicID: "b", TopicName: "B", IsCorrect: true, TimeSpentSeconds: 12, QuestionID: "q1", At: t0})
	rec.ApplyAttempt(AttemptInput{TopicID: "a", TopicName: "A", IsCorrect: false, TimeSpentSeconds: 8, QuestionID: "q2", At: t0})
	rec.OverallStats.LastStudyDate = "2024-01-10"
	rec.ArchiveDay(DailySnapshot{Date: "2024-01-09", QuestionsAttempted: 3, TopicsStudied: []string{"a"}})
	rec.AddAchievement(NewAchievement(AchievementDailyGoal, AchievementData{Goal: 2}, t0))

	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.OverallStats != rec.OverallStats {
		t.Errorf("OverallStats = %+v, want %+v", got.OverallStats, rec.OverallStats)
	}
	if !reflect.DeepEqual(got.DailyStats.TopicsStudied, NewStringSet("a", "b")) {
		t.Errorf("TopicsStudied = %v, want {a b}", got.DailyStats.TopicsStudied.Sorted())
	}
	if got.Topic("b").Accuracy != 1 || got.Topic("a").Accuracy != 0 {
		t.Error("topic accuracy not preserved")
	}
	if !got.Topic("b").LastAttempted.Equal(t0) {
		t.Errorf("LastAttempted = %v", got.Topic("b").LastAttempted)
	}
	if len(got.DailyHistory) != 1 || len(got.Achievements) != 1 {
		t.Errorf("history=%d achievements=%d", len(got.DailyHistory), len(got.Achievements))
	}

	// save(load()) is idempotent.
	if err := s.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, _ := s.Load(ctx)
	a, _ := Encode(got)
	b, _ := Encode(again)
	if string(a) != string(b) {
		t.Error("save/load cycle is not idempotent")
	}
}

func TestStore_StorageError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	s := NewStore(failingKV{err: boom}, "u1", logger.Nop())

	_, err := s.Load(ctx)
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("Load err = %v, want *StorageError", err)
	}
	if serr.Op != "load" || !errors.Is(err, boom) {
		t.Errorf("StorageError = %+v", serr)
	}

	if err := s.Save(ctx, New("u1", "2024-01-10")); !errors.As(err, &serr) {
		t.Errorf("Save err = %v, want *StorageError", err)
	}
	if err := s.Remove(ctx); !errors.As(err, &serr) {
		t.Errorf("Remove err = %v, want *StorageError", err)
	}
}

func TestStore_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore()
	if err := kv.Set(ctx, s.Key(), []byte(`{"userId":"u1","overallStats":{"totalQuestions":-4,"totalCorrect":0,"studyStreak":0}}`)); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load(ctx)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load err = %v, want wrapped *ValidationError", err)
	}
}

func TestStore_Backup(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	rec := New("u1", "2024-01-10")

	key, err := s.Backup(ctx, rec, t0)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.HasPrefix(key, s.Key()+":backup:") {
		t.Errorf("backup key = %q", key)
	}
	keys, err := s.Backups(ctx)
	if err != nil {
		t.Fatalf("Backups: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Errorf("Backups = %v, want [%s]", keys, key)
	}
}

func TestParseImport(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	valid := New("old-user", "2024-01-10")
	valid.ApplyAttempt(AttemptInput{TopicID: "optics", IsCorrect: true, At: t0})
	raw, _ := Encode(valid)
	envelope, _ := Encode(valid)
	envelope = []byte(`{"version":2,"exportedAt":"2024-02-01T00:00:00Z","record":` + string(envelope) + `}`)

	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{"bare record", string(raw), ""},
		{"envelope", string(envelope), ""},
		{"missing identity", `{"overallStats":{"totalQuestions":0,"totalCorrect":0,"studyStreak":0}}`, "userId"},
		{"empty identity", `{"userId":"","overallStats":{"totalQuestions":0,"totalCorrect":0,"studyStreak":0}}`, "userId"},
		{"missing stats", `{"userId":"x"}`, "overallStats"},
		{"stats not object", `{"userId":"x","overallStats":[]}`, "overallStats"},
		{"schema violation", `{"userId":"x","overallStats":{"totalQuestions":1,"totalCorrect":0,"studyStreak":0},"topicProgress":{"t":{"level":9}}}`, "record"},
		{"not json", `nope`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseImport([]byte(tt.raw), "current-user", now)
			wantErr := tt.wantField != "" || tt.name == "not json"
			if !wantErr {
				if err != nil {
					t.Fatalf("ParseImport: %v", err)
				}
				if rec.UserID != "current-user" || rec.PreviousUserID != "old-user" {
					t.Errorf("identity = %q prev %q", rec.UserID, rec.PreviousUserID)
				}
				if rec.ImportedAt == nil || !rec.ImportedAt.Equal(now) {
					t.Errorf("ImportedAt = %v", rec.ImportedAt)
				}
				if rec.Topic("optics") == nil {
					t.Error("topic lost in import")
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if tt.wantField != "" && verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestParseImport_NeverStudied(t *testing.T) {
	raw := `{"userId":"u1","overallStats":{"totalQuestions":0,"totalCorrect":0,"studyStreak":0,"lastStudyDate":null,"accountCreated":"2024-01-02"},"dailyStats":{"date":null}}`

	rec, err := ParseImport([]byte(raw), "current-user", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ParseImport: %v", err)
	}
	if !rec.OverallStats.LastStudyDate.IsZero() {
		t.Errorf("LastStudyDate = %q, want unset", rec.OverallStats.LastStudyDate)
	}
	if rec.PreviousUserID != "u1" {
		t.Errorf("PreviousUserID = %q, want u1", rec.PreviousUserID)
	}

	bad := `{"userId":"u1","overallStats":{"totalQuestions":0,"totalCorrect":0,"studyStreak":0,"lastStudyDate":"yesterday"}}`
	var verr *ValidationError
	if _, err := ParseImport([]byte(bad), "current-user", time.Now()); !errors.As(err, &verr) {
		t.Errorf("malformed date: err = %v, want *ValidationError", err)
	}
}
