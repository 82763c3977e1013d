package commands

import (
	"context"
	"fmt"

	"scrivano/internal/application"
	"scrivano/internal/application/session"
)

// UpdateResult contains the result of a document setting change
type UpdateResult struct {
	Message string
}

// SetGoalCommand changes the daily word goal
type SetGoalCommand struct {
	manager *session.Manager
	Goal    int
}

// NewSetGoalCommand creates a new SetGoalCommand
func NewSetGoalCommand(manager *session.Manager, goal int) *SetGoalCommand {
	return &SetGoalCommand{manager: manager, Goal: goal}
}

// Validate checks if the goal is valid
func (c *SetGoalCommand) Validate() error {
	return application.ValidatePositive("dailyGoal", c.Goal)
}

// Execute runs the set goal command
func (c *SetGoalCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.manager.SetDailyGoal(c.Goal); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return &UpdateResult{Message: fmt.Sprintf("Daily goal set to %d words", c.Goal)}, nil
}

// SetTitleCommand changes the document title
type SetTitleCommand struct {
	manager *session.Manager
	Title   string
}

// NewSetTitleCommand creates a new SetTitleCommand
func NewSetTitleCommand(manager *session.Manager, title string) *SetTitleCommand {
	return &SetTitleCommand{manager: manager, Title: title}
}

// Validate checks if the title is valid
func (c *SetTitleCommand) Validate() error {
	return application.ValidateRequired("title", c.Title)
}

// Execute runs the set title command
func (c *SetTitleCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.manager.SetTitle(c.Title); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return &UpdateResult{Message: fmt.Sprintf("Title set to %q", c.Title)}, nil
}

// SetWorldNotesCommand replaces the world notes
type SetWorldNotesCommand struct {
	manager *session.Manager
	Text    string
}

// NewSetWorldNotesCommand creates a new SetWorldNotesCommand
func NewSetWorldNotesCommand(manager *session.Manager, text string) *SetWorldNotesCommand {
	return &SetWorldNotesCommand{manager: manager, Text: text}
}

// Execute runs the set world notes command
func (c *SetWorldNotesCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.manager.SetWorldNotes(c.Text); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return &UpdateResult{Message: "World notes updated"}, nil
}
