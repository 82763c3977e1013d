package domain

import (
	"fmt"
	"strings"
)

// EmptyScenePlaceholder is shown in place of a scene with no text
const EmptyScenePlaceholder = "(Empty)"

// Manuscript assembles the preview: title, then each scene's name and text
func Manuscript(doc *Document) string {
	var b strings.Builder

	b.WriteString(doc.Title)
	b.WriteString("\n\n")

	for i, scene := range doc.Scenes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(scene.Name)
		b.WriteString("\n\n")

		text := doc.SceneContents[scene.ID]
		if strings.TrimSpace(text) == "" {
			b.WriteString(EmptyScenePlaceholder)
		} else {
			b.WriteString(text)
		}
	}

	b.WriteString("\n")
	return b.String()
}

// SceneSummary returns one line per scene, e.g. "Scene 1 - 1200 words"
func SceneSummary(doc *Document) string {
	lines := make([]string, 0, len(doc.Scenes))
	for _, scene := range doc.Scenes {
		lines = append(lines, fmt.Sprintf("%s - %d words", scene.Name, WordCount(doc.SceneContents[scene.ID])))
	}
	return strings.Join(lines, "\n")
}

// Excerpt shortens text to at most limit runes, adding an ellipsis when cut
func Excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
