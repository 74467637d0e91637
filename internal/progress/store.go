package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/prepiz/internal/logger"
	"github.com/abhisek/prepiz/internal/store"
)

const keyPrefix = "progress:"

// Store owns the persisted Record of one learner. All other components
// read and write progress through it.
type Store struct {
	kv  store.KV
	key string
	log *logger.Logger
}

// NewStore binds a Store to the record of userKey inside kv.
func NewStore(kv store.KV, userKey string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	key := keyPrefix + userKey
	return &Store{
		kv:  kv,
		key: key,
		log: log.With("component", "progress-store", "user_id", userKey),
	}
}

// Key returns the KV key holding the record.
func (s *Store) Key() string { return s.key }

// Load returns the current record, or nil with no error if none exists.
// Backend failures and undecodable payloads are logged and returned as
// *StorageError.
func (s *Store) Load(ctx context.Context) (*Record, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("load", err)
	}
	rec, err := Decode(raw)
	if err != nil {
		return nil, s.fail("load", err)
	}
	return rec, nil
}

// Initialize creates a zeroed record stamped with today, applies setup in
// order and persists it. The record is returned even when the save fails.
func (s *Store) Initialize(ctx context.Context, userID string, today Date, setup ...func(*Record)) (*Record, error) {
	rec := New(userID, today)
	for _, fn := range setup {
		fn(rec)
	}
	if err := s.Save(ctx, rec); err != nil {
		return rec, err
	}
	s.log.Info("initialized progress record", "date", string(today))
	return rec, nil
}

// Save persists rec, replacing whatever was stored.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	raw, err := Encode(rec)
	if err != nil {
		return s.fail("save", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return s.fail("save", err)
	}
	return nil
}

// Remove deletes the stored record.
func (s *Store) Remove(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return s.fail("remove", err)
	}
	return nil
}

// Backup copies rec under a timestamped key and returns that key.
func (s *Store) Backup(ctx context.Context, rec *Record, at time.Time) (string, error) {
	raw, err := Encode(rec)
	if err != nil {
		return "", s.fail("backup", err)
	}
	key := fmt.Sprintf("%s:backup:%d", s.key, at.Unix())
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return "", s.fail("backup", err)
	}
	return key, nil
}

// Backups lists the backup keys of this record, oldest first.
func (s *Store) Backups(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, s.key+":backup:")
	if err != nil {
		return nil, s.fail("list-backups", err)
	}
	return keys, nil
}

func (s *Store) fail(op string, err error) error {
	serr := &StorageError{Op: op, Key: s.key, Err: err}
	var verr *ValidationError
	if errors.As(err, &verr) {
		s.log.Error("stored progress record is malformed", "op", op, "error", err)
	} else {
		s.log.Warn("progress store operation failed", "op", op, "error", err)
	}
	return serr
}
