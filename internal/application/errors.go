package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound            = errors.New("not found")
	ErrNotLoaded           = errors.New("session not loaded")
	ErrSceneNotFound       = errors.New("scene not found")
	ErrCharacterNotFound   = errors.New("character not found")
	ErrInvalidHistoryIndex = errors.New("invalid history index")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrMalformedSnapshot   = errors.New("malformed snapshot")
	ErrActNotFound         = errors.New("act not found")
	ErrUnreadDocument      = errors.New("stored document was never loaded; reload it or force a save")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StorageError represents a failed read or write against the storage backend.
// In-memory state is left as it was; callers may keep working and retry.
type StorageError struct {
	Op  string // "get" or "set"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

// SnapshotError represents a stored blob that could not be decoded
type SnapshotError struct {
	Reason string
	Err    error
}

func (e *SnapshotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed snapshot: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed snapshot: %s", e.Reason)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

func (e *SnapshotError) Is(target error) bool {
	return target == ErrMalformedSnapshot
}

// HistoryIndexError represents a restore request outside the history bounds
type HistoryIndexError struct {
	Index int
	Len   int
}

func (e *HistoryIndexError) Error() string {
	return fmt.Sprintf("history index %d out of range (have %d versions)", e.Index, e.Len)
}

func (e *HistoryIndexError) Is(target error) bool {
	return target == ErrInvalidHistoryIndex || target == ErrNotFound
}

// SceneError represents an operation on a scene that is not in the scene list
type SceneError struct {
	SceneID int
}

func (e *SceneError) Error() string {
	return fmt.Sprintf("scene %d not found", e.SceneID)
}

func (e *SceneError) Is(target error) bool {
	return target == ErrSceneNotFound || target == ErrNotFound
}
