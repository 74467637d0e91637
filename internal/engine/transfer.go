package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/abhisek/prepiz/internal/progress"
)

// Export returns the full record in a versioned envelope.
func (e *Engine) Export(ctx context.Context) (*progress.Export, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now, today := e.clock()
	rec, err := e.load(ctx, today)
	if err != nil {
		return nil, err
	}
	return progress.NewExport(rec, now), nil
}

// Import validates raw and replaces the stored record with it wholesale.
// Validation failures are returned as *progress.ValidationError and
// nothing is written.
func (e *Engine) Import(ctx context.Context, raw []byte) (*progress.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now, _ := e.clock()
	var currentID string
	if cur, err := e.store.Load(ctx); err == nil && cur != nil {
		currentID = cur.UserID
	}

	rec, err := progress.ParseImport(raw, currentID, now)
	if err != nil {
		e.log.Warn("import rejected", "error", err)
		return nil, err
	}
	if err := e.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	e.log.Info("imported progress record", "topics", len(rec.TopicProgress))
	return rec, nil
}

// ResetWithBackup copies the current record to a backup key and replaces
// it with a fresh one. The learner keeps their ID. Returns the backup key,
// empty if there was nothing to back up.
func (e *Engine) ResetWithBackup(ctx context.Context) (string, *progress.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now, today := e.clock()
	cur, err := e.store.Load(ctx)
	if err != nil {
		return "", nil, err
	}

	userID := uuid.NewString()
	var backupKey string
	if cur != nil {
		userID = cur.UserID
		if backupKey, err = e.store.Backup(ctx, cur, now); err != nil {
			return "", nil, err
		}
	}

	rec, err := e.store.Initialize(ctx, userID, today, e.seed)
	if err != nil {
		return backupKey, nil, err
	}
	e.log.Info("progress reset", "backup", backupKey)
	return backupKey, rec, nil
}

// Backups lists backup keys, oldest first.
func (e *Engine) Backups(ctx context.Context) ([]string, error) {
	return e.store.Backups(ctx)
}
