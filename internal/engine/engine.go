// Package engine is the entry point of the progress and leveling engine.
// It loads a learner's record once per call, runs daily rollover, stat
// updates and level progression, and writes the record back once.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepiz/internal/logger"
	"github.com/abhisek/prepiz/internal/progress"
	"github.com/abhisek/prepiz/internal/selector"
)

// Engine serves one learner's record. Mutating calls are serialized per
// Engine; callers sharing a record across processes must serialize
// themselves.
type Engine struct {
	store    *progress.Store
	selector *selector.Selector
	log      *logger.Logger
	now      func() time.Time
	loc      *time.Location

	// dailyGoal seeds the preferences of records this engine creates.
	dailyGoal int

	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the time zone that decides calendar days.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithSelector sets the question selector.
func WithSelector(s *selector.Selector) Option {
	return func(e *Engine) { e.selector = s }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithDailyGoal sets the daily goal given to newly created records.
// Existing records keep their own preference.
func WithDailyGoal(n int) Option {
	return func(e *Engine) { e.dailyGoal = n }
}

// New creates an Engine over store.
func New(store *progress.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.selector == nil {
		e.selector = selector.New(nil)
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	return e
}

func (e *Engine) clock() (time.Time, progress.Date) {
	now := e.now().In(e.loc)
	return now, progress.DateOf(now)
}

// load returns the stored record or initializes one. Storage failures are
// returned so callers never overwrite a record they could not read.
func (e *Engine) load(ctx context.Context, today progress.Date) (*progress.Record, error) {
	rec, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	return e.store.Initialize(ctx, uuid.NewString(), today, e.seed)
}

func (e *Engine) seed(rec *progress.Record) {
	if e.dailyGoal > 0 {
		rec.Preferences.DailyGoal = e.dailyGoal
	}
}

// view returns the record for read-only use. Missing or unreadable
// records degrade to an empty one that is not persisted.
func (e *Engine) view(ctx context.Context) *progress.Record {
	_, today := e.clock()
	rec, err := e.store.Load(ctx)
	if err != nil || rec == nil {
		rec = progress.New("", today)
		e.seed(rec)
	}
	return rec
}
