package domain

import "strings"

// MatchKind identifies what a search result matched
type MatchKind int

const (
	MatchSceneName MatchKind = iota
	MatchSceneText
	MatchCharacter
	MatchWorldNotes
)

func (k MatchKind) String() string {
	switch k {
	case MatchSceneName:
		return "scene"
	case MatchSceneText:
		return "text"
	case MatchCharacter:
		return "character"
	case MatchWorldNotes:
		return "notes"
	default:
		return "unknown"
	}
}

// SearchResult represents a search match
type SearchResult struct {
	Kind        MatchKind
	SceneID     int    // Set for scene matches
	Index       int    // Character index for character matches
	Name        string // Scene or character name
	MatchedText string
}

const excerptRadius = 30

// Search finds query case-insensitively in scene names, scene text,
// characters and world notes. Results follow document order.
func Search(doc *Document, query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []SearchResult

	for _, scene := range doc.Scenes {
		if strings.Contains(strings.ToLower(scene.Name), q) {
			results = append(results, SearchResult{
				Kind:        MatchSceneName,
				SceneID:     scene.ID,
				Name:        scene.Name,
				MatchedText: scene.Name,
			})
		}
		if excerpt, ok := matchExcerpt(doc.SceneContents[scene.ID], q); ok {
			results = append(results, SearchResult{
				Kind:        MatchSceneText,
				SceneID:     scene.ID,
				Name:        scene.Name,
				MatchedText: excerpt,
			})
		}
	}

	for i, c := range doc.Characters {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Role), q) {
			results = append(results, SearchResult{
				Kind:        MatchCharacter,
				Index:       i,
				Name:        c.Name,
				MatchedText: c.Role,
			})
		}
	}

	if excerpt, ok := matchExcerpt(doc.WorldNotes, q); ok {
		results = append(results, SearchResult{
			Kind:        MatchWorldNotes,
			Name:        "World Notes",
			MatchedText: excerpt,
		})
	}

	return results
}

// matchExcerpt returns the text around the first match of lowered query q
func matchExcerpt(text, q string) (string, bool) {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, q)
	if idx < 0 {
		return "", false
	}

	// ToLower can change byte lengths for some runes; fall back to the head
	if len(lower) != len(text) {
		return Excerpt(text, excerptRadius*2), true
	}

	start := max(idx-excerptRadius, 0)
	end := min(idx+len(q)+excerptRadius, len(text))
	for start > 0 && !isRuneStart(text[start]) {
		start--
	}
	for end < len(text) && !isRuneStart(text[end]) {
		end++
	}

	excerpt := strings.Join(strings.Fields(text[start:end]), " ")
	if start > 0 {
		excerpt = "…" + excerpt
	}
	if end < len(text) {
		excerpt += "…"
	}
	return excerpt, true
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
