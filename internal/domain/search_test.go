package domain

import "testing"

func searchFixture() *Document {
	doc := NewDocument()
	doc.RenameScene(1, "Elena's Discovery")
	doc.SceneContents[1] = "Elena first realizes her unique ability while practicing in the abandoned concert hall."
	doc.AddScene("Meeting Master Cadence")
	doc.SceneContents[2] = "The old master waits."
	doc.Characters = []Character{
		{Name: "Elena Harmonicus", Role: "Protagonist"},
		{Name: "Master Cadence", Role: "Mentor"},
	}
	doc.WorldNotes = "Music can affect reality when played with true emotion."
	return doc
}

func TestSearch(t *testing.T) {
	doc := searchFixture()

	tests := []struct {
		name      string
		query     string
		wantKinds []MatchKind
	}{
		{"scene name and text and character", "elena", []MatchKind{MatchSceneName, MatchSceneText, MatchCharacter}},
		{"case insensitive", "CADENCE", []MatchKind{MatchSceneName, MatchCharacter}},
		{"role", "mentor", []MatchKind{MatchCharacter}},
		{"world notes", "reality", []MatchKind{MatchWorldNotes}},
		{"no match", "dragon", nil},
		{"blank query", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Search(doc, tt.query)
			if len(results) != len(tt.wantKinds) {
				t.Fatalf("expected %d results, got %d: %+v", len(tt.wantKinds), len(results), results)
			}
			for i, r := range results {
				if r.Kind != tt.wantKinds[i] {
					t.Errorf("result %d: expected kind %s, got %s", i, tt.wantKinds[i], r.Kind)
				}
			}
		})
	}
}

func TestSearch_ExcerptAroundMatch(t *testing.T) {
	doc := searchFixture()

	results := Search(doc, "concert")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.SceneID != 1 {
		t.Errorf("expected scene 1, got %d", r.SceneID)
	}
	if !contains(r.MatchedText, "concert hall") {
		t.Errorf("expected excerpt around match, got %q", r.MatchedText)
	}
	if r.MatchedText[:3] != "…" {
		t.Errorf("expected leading ellipsis, got %q", r.MatchedText)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		text  string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer sentence here", 8, "a longer…"},
		{"collapse   inner\n\nspace", 0, "collapse inner space"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Excerpt(tt.text, tt.limit); got != tt.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
