package commands

import (
	"context"
	"fmt"
	"strings"

	"scrivano/internal/application"
	"scrivano/internal/application/session"
)

// WriteSceneResult contains the result of replacing a scene's text
type WriteSceneResult struct {
	SceneID int
	Words   int // Words in the active scene after the write
	Message string
}

// WriteSceneCommand replaces the text of a scene
type WriteSceneCommand struct {
	manager *session.Manager
	SceneID int
	Text    string
}

// NewWriteSceneCommand creates a new WriteSceneCommand
func NewWriteSceneCommand(manager *session.Manager, sceneID int, text string) *WriteSceneCommand {
	return &WriteSceneCommand{
		manager: manager,
		SceneID: sceneID,
		Text:    text,
	}
}

// Validate checks if the write is valid
func (c *WriteSceneCommand) Validate() error {
	return application.ValidatePositive("sceneID", c.SceneID)
}

// Execute runs the write scene command
func (c *WriteSceneCommand) Execute(ctx context.Context) (*WriteSceneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	words, err := c.manager.SetSceneText(c.SceneID, c.Text)
	if err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}

	return &WriteSceneResult{
		SceneID: c.SceneID,
		Words:   words,
		Message: fmt.Sprintf("Wrote scene %d (%d words in active scene)", c.SceneID, words),
	}, nil
}

// AddSceneResult contains the result of adding a scene
type AddSceneResult struct {
	SceneID int
	Message string
}

// AddSceneCommand appends a new scene and makes it active
type AddSceneCommand struct {
	manager *session.Manager
	Name    string // Optional
}

// NewAddSceneCommand creates a new AddSceneCommand
func NewAddSceneCommand(manager *session.Manager, name string) *AddSceneCommand {
	return &AddSceneCommand{
		manager: manager,
		Name:    strings.TrimSpace(name),
	}
}

// Execute runs the add scene command
func (c *AddSceneCommand) Execute(ctx context.Context) (*AddSceneResult, error) {
	id, err := c.manager.AddScene(c.Name)
	if err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}

	return &AddSceneResult{
		SceneID: id,
		Message: fmt.Sprintf("Added scene %d", id),
	}, nil
}

// SelectSceneResult contains the result of selecting a scene
type SelectSceneResult struct {
	SceneID int
	Message string
}

// SelectSceneCommand makes a scene active
type SelectSceneCommand struct {
	manager *session.Manager
	SceneID int
}

// NewSelectSceneCommand creates a new SelectSceneCommand
func NewSelectSceneCommand(manager *session.Manager, sceneID int) *SelectSceneCommand {
	return &SelectSceneCommand{
		manager: manager,
		SceneID: sceneID,
	}
}

// Validate checks if the selection is valid
func (c *SelectSceneCommand) Validate() error {
	return application.ValidatePositive("sceneID", c.SceneID)
}

// Execute runs the select scene command
func (c *SelectSceneCommand) Execute(ctx context.Context) (*SelectSceneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.manager.SelectScene(c.SceneID); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}

	return &SelectSceneResult{
		SceneID: c.SceneID,
		Message: fmt.Sprintf("Active scene: %d", c.SceneID),
	}, nil
}

// RenameSceneResult contains the result of renaming a scene
type RenameSceneResult struct {
	SceneID int
	NewName string
	Message string
}

// RenameSceneCommand changes a scene's display name
type RenameSceneCommand struct {
	manager *session.Manager
	SceneID int
	NewName string
}

// NewRenameSceneCommand creates a new RenameSceneCommand
func NewRenameSceneCommand(manager *session.Manager, sceneID int, newName string) *RenameSceneCommand {
	return &RenameSceneCommand{
		manager: manager,
		SceneID: sceneID,
		NewName: newName,
	}
}

// Validate checks if the rename is valid
func (c *RenameSceneCommand) Validate() error {
	if err := application.ValidatePositive("sceneID", c.SceneID); err != nil {
		return err
	}
	return application.ValidateRequired("sceneName", c.NewName)
}

// Execute runs the rename scene command
func (c *RenameSceneCommand) Execute(ctx context.Context) (*RenameSceneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(c.NewName)
	if err := c.manager.RenameScene(c.SceneID, name); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}

	return &RenameSceneResult{
		SceneID: c.SceneID,
		NewName: name,
		Message: fmt.Sprintf("Renamed scene %d to %q", c.SceneID, name),
	}, nil
}
