package ports

import "scrivano/internal/domain"

// ExportFormat selects how a document is rendered for export
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportMarkdown ExportFormat = "markdown"
	ExportText     ExportFormat = "text"
)

// ExportOptions controls what an export contains and where it goes
type ExportOptions struct {
	Format         ExportFormat
	IncludeHistory bool   // JSON only
	Dir            string // Destination directory
}

// Exporter writes a one-shot export of a document
type Exporter interface {
	// Export renders doc and writes it, returning the written file path
	Export(doc *domain.Document, opts ExportOptions) (string, error)
}
