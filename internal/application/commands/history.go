package commands

import (
	"context"
	"fmt"

	"scrivano/internal/application"
	"scrivano/internal/application/session"
	"scrivano/internal/domain"
)

// RestoreResult contains the result of restoring a version
type RestoreResult struct {
	SceneID int
	Index   int
	Entry   domain.HistoryEntry
	Message string
}

// RestoreCommand overwrites a scene with a version from history
type RestoreCommand struct {
	manager      *session.Manager
	SceneID      int
	HistoryIndex int
}

// NewRestoreCommand creates a new RestoreCommand
func NewRestoreCommand(manager *session.Manager, sceneID, historyIndex int) *RestoreCommand {
	return &RestoreCommand{
		manager:      manager,
		SceneID:      sceneID,
		HistoryIndex: historyIndex,
	}
}

// Validate checks if the restore is valid
func (c *RestoreCommand) Validate() error {
	if err := application.ValidatePositive("sceneID", c.SceneID); err != nil {
		return err
	}
	return application.ValidateNonNegative("historyIndex", c.HistoryIndex)
}

// Execute runs the restore command
func (c *RestoreCommand) Execute(ctx context.Context) (*RestoreResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.manager.Restore(c.SceneID, c.HistoryIndex); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}

	history, err := c.manager.History()
	if err != nil {
		return nil, err
	}
	entry := history[c.HistoryIndex]

	return &RestoreResult{
		SceneID: c.SceneID,
		Index:   c.HistoryIndex,
		Entry:   entry,
		Message: fmt.Sprintf("Restored scene %d from version %d (%s)", c.SceneID, c.HistoryIndex, entry.Timestamp.Format("15:04:05")),
	}, nil
}

// SnapshotResult contains the result of capturing a version
type SnapshotResult struct {
	Versions int
	Message  string
}

// SnapshotCommand captures the active scene into history and persists,
// the same work an autosave tick does
type SnapshotCommand struct {
	manager *session.Manager
}

// NewSnapshotCommand creates a new SnapshotCommand
func NewSnapshotCommand(manager *session.Manager) *SnapshotCommand {
	return &SnapshotCommand{manager: manager}
}

// Execute runs the snapshot command
func (c *SnapshotCommand) Execute(ctx context.Context) (*SnapshotResult, error) {
	if err := c.manager.Tick(); err != nil {
		return nil, err
	}

	history, err := c.manager.History()
	if err != nil {
		return nil, err
	}

	return &SnapshotResult{
		Versions: len(history),
		Message:  fmt.Sprintf("Captured version %d of %d", len(history)-1, domain.HistoryCapacity),
	}, nil
}
