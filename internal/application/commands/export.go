package commands

import (
	"context"
	"fmt"

	"scrivano/internal/application"
	"scrivano/internal/application/session"
	"scrivano/internal/ports"
)

// ExportResult contains the result of an export
type ExportResult struct {
	Path    string
	Message string
}

// ExportCommand writes the current document to a file
type ExportCommand struct {
	manager  *session.Manager
	exporter ports.Exporter
	Options  ports.ExportOptions
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(manager *session.Manager, exporter ports.Exporter, opts ports.ExportOptions) *ExportCommand {
	return &ExportCommand{
		manager:  manager,
		exporter: exporter,
		Options:  opts,
	}
}

// Validate checks if the export options are valid
func (c *ExportCommand) Validate() error {
	switch c.Options.Format {
	case ports.ExportJSON, ports.ExportMarkdown, ports.ExportText:
		return nil
	case "":
		return application.ValidateRequired("format", "")
	default:
		return &application.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format: %s", c.Options.Format),
		}
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, err := c.manager.Document()
	if err != nil {
		return nil, err
	}

	path, err := c.exporter.Export(doc, c.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}

	return &ExportResult{
		Path:    path,
		Message: fmt.Sprintf("Exported %s to %s", c.Options.Format, path),
	}, nil
}
