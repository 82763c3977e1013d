package commands

import (
	"context"
	"fmt"
	"strings"

	"scrivano/internal/application"
	"scrivano/internal/application/session"
)

// PlotResult contains the result of a plot outline change
type PlotResult struct {
	Act     int
	Message string
}

// AddActCommand appends an act to the plot outline
type AddActCommand struct {
	manager *session.Manager
	Title   string
}

// NewAddActCommand creates a new AddActCommand
func NewAddActCommand(manager *session.Manager, title string) *AddActCommand {
	return &AddActCommand{manager: manager, Title: title}
}

// Validate checks if the act is valid
func (c *AddActCommand) Validate() error {
	return application.ValidateRequired("actTitle", c.Title)
}

// Execute runs the add act command
func (c *AddActCommand) Execute(ctx context.Context) (*PlotResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(c.Title)
	idx, err := c.manager.AddAct(title)
	if err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return &PlotResult{Act: idx, Message: fmt.Sprintf("Added act %d: %s", idx, title)}, nil
}

// RenameActCommand changes an act's title
type RenameActCommand struct {
	manager *session.Manager
	Act     int
	Title   string
}

// NewRenameActCommand creates a new RenameActCommand
func NewRenameActCommand(manager *session.Manager, act int, title string) *RenameActCommand {
	return &RenameActCommand{manager: manager, Act: act, Title: title}
}

// Validate checks if the rename is valid
func (c *RenameActCommand) Validate() error {
	if err := application.ValidateNonNegative("act", c.Act); err != nil {
		return err
	}
	return application.ValidateRequired("actTitle", c.Title)
}

// Execute runs the rename act command
func (c *RenameActCommand) Execute(ctx context.Context) (*PlotResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(c.Title)
	if err := c.manager.RenameAct(c.Act, title); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return &PlotResult{Act: c.Act, Message: fmt.Sprintf("Renamed act %d to %s", c.Act, title)}, nil
}

// RemoveActCommand deletes an act; its scenes become unassigned
type RemoveActCommand struct {
	manager *session.Manager
	Act     int
}

// NewRemoveActCommand creates a new RemoveActCommand
func NewRemoveActCommand(manager *session.Manager, act int) *RemoveActCommand {
	return &RemoveActCommand{manager: manager, Act: act}
}

// Execute runs the remove act command
func (c *RemoveActCommand) Execute(ctx context.Context) (*PlotResult, error) {
	if err := c.manager.RemoveAct(c.Act); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return &PlotResult{Act: c.Act, Message: fmt.Sprintf("Removed act %d", c.Act)}, nil
}

// AssignSceneCommand places a scene in an act. A negative act takes the
// scene out of the outline.
type AssignSceneCommand struct {
	manager *session.Manager
	Act     int
	SceneID int
}

// NewAssignSceneCommand creates a new AssignSceneCommand
func NewAssignSceneCommand(manager *session.Manager, act, sceneID int) *AssignSceneCommand {
	return &AssignSceneCommand{manager: manager, Act: act, SceneID: sceneID}
}

// Validate checks if the assignment is valid
func (c *AssignSceneCommand) Validate() error {
	return application.ValidatePositive("sceneID", c.SceneID)
}

// Execute runs the assign scene command
func (c *AssignSceneCommand) Execute(ctx context.Context) (*PlotResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		err error
		msg string
	)
	if c.Act < 0 {
		err = c.manager.UnassignScene(c.SceneID)
		msg = fmt.Sprintf("Scene %d removed from the outline", c.SceneID)
	} else {
		err = c.manager.AssignScene(c.Act, c.SceneID)
		msg = fmt.Sprintf("Scene %d placed in act %d", c.SceneID, c.Act)
	}
	if err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return &PlotResult{Act: c.Act, Message: msg}, nil
}
