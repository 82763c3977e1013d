package commands

import (
	"context"
	"fmt"
	"strings"

	"scrivano/internal/application"
	"scrivano/internal/application/session"
)

// CharacterResult contains the result of a character sheet change
type CharacterResult struct {
	Index   int
	Message string
}

// AddCharacterCommand appends a character
type AddCharacterCommand struct {
	manager *session.Manager
	Name    string
	Role    string
}

// NewAddCharacterCommand creates a new AddCharacterCommand
func NewAddCharacterCommand(manager *session.Manager, name, role string) *AddCharacterCommand {
	return &AddCharacterCommand{manager: manager, Name: name, Role: role}
}

// Validate checks if the character is valid
func (c *AddCharacterCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the add character command
func (c *AddCharacterCommand) Execute(ctx context.Context) (*CharacterResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(c.Name)
	idx, err := c.manager.AddCharacter(name, strings.TrimSpace(c.Role))
	if err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}

	return &CharacterResult{
		Index:   idx,
		Message: fmt.Sprintf("Added character %d: %s", idx, name),
	}, nil
}

// UpdateCharacterCommand replaces a character's name and role
type UpdateCharacterCommand struct {
	manager *session.Manager
	Index   int
	Name    string
	Role    string
}

// NewUpdateCharacterCommand creates a new UpdateCharacterCommand
func NewUpdateCharacterCommand(manager *session.Manager, index int, name, role string) *UpdateCharacterCommand {
	return &UpdateCharacterCommand{manager: manager, Index: index, Name: name, Role: role}
}

// Validate checks if the update is valid
func (c *UpdateCharacterCommand) Validate() error {
	if c.Index < 0 {
		return &application.ValidationError{
			Field:   "index",
			Message: fmt.Sprintf("character index must not be negative, got: %d", c.Index),
		}
	}
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the update character command
func (c *UpdateCharacterCommand) Execute(ctx context.Context) (*CharacterResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(c.Name)
	if err := c.manager.UpdateCharacter(c.Index, name, strings.TrimSpace(c.Role)); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}

	return &CharacterResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Updated character %d: %s", c.Index, name),
	}, nil
}

// RemoveCharacterCommand deletes a character
type RemoveCharacterCommand struct {
	manager *session.Manager
	Index   int
}

// NewRemoveCharacterCommand creates a new RemoveCharacterCommand
func NewRemoveCharacterCommand(manager *session.Manager, index int) *RemoveCharacterCommand {
	return &RemoveCharacterCommand{manager: manager, Index: index}
}

// Execute runs the remove character command
func (c *RemoveCharacterCommand) Execute(ctx context.Context) (*CharacterResult, error) {
	if err := c.manager.RemoveCharacter(c.Index); err != nil {
		return nil, err
	}
	if err := c.manager.Save(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}

	return &CharacterResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Removed character %d", c.Index),
	}, nil
}
