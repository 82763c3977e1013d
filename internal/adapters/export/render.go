// Package export renders a document into the formats offered for one-shot export
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"scrivano/internal/application/session"
	"scrivano/internal/domain"
	"scrivano/internal/ports"
)

// frontMatter is the YAML header of a Markdown export
type frontMatter struct {
	Title      string    `yaml:"title"`
	Exported   time.Time `yaml:"exported"`
	Scenes     int       `yaml:"scenes"`
	Words      int       `yaml:"words"`
	DailyGoal  int       `yaml:"daily_goal"`
	Characters []string  `yaml:"characters,omitempty"`
	Plot       []plotAct `yaml:"plot,omitempty"`
}

type plotAct struct {
	Act    string   `yaml:"act"`
	Scenes []string `yaml:"scenes"`
}

// Extension returns the file extension for a format, without the dot
func Extension(format ports.ExportFormat) (string, error) {
	switch format {
	case ports.ExportJSON:
		return "json", nil
	case ports.ExportMarkdown:
		return "md", nil
	case ports.ExportText:
		return "txt", nil
	default:
		return "", fmt.Errorf("unknown export format: %q", format)
	}
}

// ParseFormat accepts a format name or a common alias
func ParseFormat(s string) (ports.ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return ports.ExportJSON, nil
	case "markdown", "md":
		return ports.ExportMarkdown, nil
	case "text", "txt":
		return ports.ExportText, nil
	default:
		return "", fmt.Errorf("unknown export format: %q (want json, markdown or text)", s)
	}
}

// Render produces the export body for doc
func Render(doc *domain.Document, opts ports.ExportOptions, now time.Time) ([]byte, error) {
	switch opts.Format {
	case ports.ExportJSON:
		return renderJSON(doc, opts.IncludeHistory)
	case ports.ExportMarkdown:
		return renderMarkdown(doc, now)
	case ports.ExportText:
		return []byte(domain.SceneSummary(doc) + "\n"), nil
	default:
		return nil, fmt.Errorf("unknown export format: %q", opts.Format)
	}
}

// renderJSON writes the same blob the storage backends hold,
// minus the history subtree unless it was asked for
func renderJSON(doc *domain.Document, includeHistory bool) ([]byte, error) {
	blob, err := session.Encode(doc)
	if err != nil {
		return nil, err
	}
	if !includeHistory {
		blob, err = sjson.Delete(blob, "history")
		if err != nil {
			return nil, fmt.Errorf("failed to strip history: %w", err)
		}
	}
	return []byte(blob), nil
}

func renderMarkdown(doc *domain.Document, now time.Time) ([]byte, error) {
	fm := frontMatter{
		Title:     doc.Title,
		Exported:  now.UTC().Truncate(time.Second),
		Scenes:    len(doc.Scenes),
		Words:     doc.TotalWords(),
		DailyGoal: doc.DailyGoal,
	}
	for _, c := range doc.Characters {
		fm.Characters = append(fm.Characters, c.Name)
	}
	fm.Plot = plotOutline(doc)

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString("# " + doc.Title + "\n")

	for _, scene := range doc.Scenes {
		b.WriteString("\n## " + scene.Name + "\n\n")
		text := strings.TrimSpace(doc.SceneContents[scene.ID])
		if text == "" {
			text = domain.EmptyScenePlaceholder
		}
		b.WriteString(text + "\n")
	}

	if strings.TrimSpace(doc.WorldNotes) != "" {
		b.WriteString("\n---\n\n## World Notes\n\n")
		b.WriteString(strings.TrimSpace(doc.WorldNotes) + "\n")
	}

	return b.Bytes(), nil
}

// plotOutline lists acts with their scene names, or nothing when no scene
// has been placed
func plotOutline(doc *domain.Document) []plotAct {
	acts, unassigned := doc.PlotOutline()
	if len(unassigned) == len(doc.Scenes) {
		return nil
	}

	out := make([]plotAct, 0, len(acts))
	for _, act := range acts {
		names := make([]string, 0, len(act.Scenes))
		for _, s := range act.Scenes {
			names = append(names, s.Name)
		}
		out = append(out, plotAct{Act: act.Title, Scenes: names})
	}
	return out
}
