package filesystem

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"scrivano/internal/adapters/export"
	"scrivano/internal/domain"
	"scrivano/internal/ports"
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Exporter implements ports.Exporter by writing rendered documents to disk
type Exporter struct {
	now func() time.Time
}

var _ ports.Exporter = (*Exporter)(nil)

// NewExporter creates an exporter stamped with the current time
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Export renders doc and writes it to opts.Dir, returning the file path.
// File names look like "my-novel-20240301-093000.md".
func (e *Exporter) Export(doc *domain.Document, opts ports.ExportOptions) (string, error) {
	ext, err := export.Extension(opts.Format)
	if err != nil {
		return "", err
	}

	now := e.now()
	data, err := export.Render(doc, opts, now)
	if err != nil {
		return "", err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if strings.HasPrefix(dir, "~") {
		dir = NewStore(dir).Dir()
	}

	name := fmt.Sprintf("%s-%s.%s", slugify(doc.Title), now.Format("20060102-150405"), ext)
	path := filepath.Join(dir, name)

	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// slugify turns a title into a lowercase, dash-separated file name stem
func slugify(title string) string {
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return "novel"
	}
	return slug
}
