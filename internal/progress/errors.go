package progress

import "fmt"

// StorageError reports a failed read or write against the key-value
// collaborator. It is logged where it is raised.
type StorageError struct {
	Op  string // "load", "save", "remove", "backup"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("progress store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError reports a malformed record or import payload.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid progress data: %s", e.Reason)
	}
	return fmt.Sprintf("invalid progress data: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }
