package domain

import (
	"strings"
	"testing"
)

func TestNewDocument_Defaults(t *testing.T) {
	doc := NewDocument()

	if doc.Title != "My Novel" {
		t.Errorf("expected title My Novel, got %q", doc.Title)
	}
	if doc.DailyGoal != 1000 {
		t.Errorf("expected goal 1000, got %d", doc.DailyGoal)
	}
	if len(doc.Scenes) != 1 || doc.Scenes[0].ID != 1 {
		t.Fatalf("expected one scene with ID 1, got %v", doc.Scenes)
	}
	if text, ok := doc.SceneContents[1]; !ok || text != "" {
		t.Errorf("expected empty text for scene 1, got %q (present=%v)", text, ok)
	}
	if doc.CurrentScene != 1 {
		t.Errorf("expected current scene 1, got %d", doc.CurrentScene)
	}
	if doc.History.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", doc.History.Len())
	}
}

func TestAddScene_AllocatesNextID(t *testing.T) {
	doc := NewDocument()
	doc.AddScene("")
	doc.AddScene("")

	scene := doc.AddScene("")

	if scene.ID != 4 {
		t.Errorf("expected scene ID 4, got %d", scene.ID)
	}
	if scene.Name != "Scene 4" {
		t.Errorf("expected default name Scene 4, got %q", scene.Name)
	}
	if text, ok := doc.SceneContents[4]; !ok || text != "" {
		t.Errorf("expected empty text for scene 4, got %q (present=%v)", text, ok)
	}
	if doc.CurrentScene != 4 {
		t.Errorf("expected scene 4 to be active, got %d", doc.CurrentScene)
	}
}

func TestAddScene_UsesHighestIDNotLength(t *testing.T) {
	doc := NewDocument()
	doc.Scenes = []Scene{{ID: 1, Name: "Opening"}, {ID: 7, Name: "Later"}}
	doc.SceneContents = map[int]string{1: "a", 7: "b"}

	scene := doc.AddScene("Finale")

	if scene.ID != 8 {
		t.Errorf("expected scene ID 8, got %d", scene.ID)
	}
	if scene.Name != "Finale" {
		t.Errorf("expected name Finale, got %q", scene.Name)
	}
}

func TestRenameScene(t *testing.T) {
	doc := NewDocument()

	if !doc.RenameScene(1, "Prologue") {
		t.Fatal("expected rename of scene 1 to succeed")
	}
	if s, _ := doc.Scene(1); s.Name != "Prologue" {
		t.Errorf("expected name Prologue, got %q", s.Name)
	}
	if doc.RenameScene(99, "Nope") {
		t.Error("expected rename of unknown scene to fail")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		doc   *Document
		check func(t *testing.T, d *Document)
	}{
		{
			name: "derives scenes from contents",
			doc: &Document{
				SceneContents: map[int]string{3: "c", 1: "a", 2: "b"},
			},
			check: func(t *testing.T, d *Document) {
				if len(d.Scenes) != 3 {
					t.Fatalf("expected 3 scenes, got %d", len(d.Scenes))
				}
				for i, want := range []int{1, 2, 3} {
					if d.Scenes[i].ID != want {
						t.Errorf("scene %d: expected ID %d, got %d", i, want, d.Scenes[i].ID)
					}
				}
				if d.CurrentScene != 1 {
					t.Errorf("expected current scene 1, got %d", d.CurrentScene)
				}
			},
		},
		{
			name: "empty document gets default scene",
			doc:  &Document{},
			check: func(t *testing.T, d *Document) {
				if len(d.Scenes) != 1 || d.Scenes[0].ID != 1 {
					t.Errorf("expected default scene, got %v", d.Scenes)
				}
				if _, ok := d.SceneContents[1]; !ok {
					t.Error("expected text entry for default scene")
				}
			},
		},
		{
			name: "fills missing text entries",
			doc: &Document{
				Scenes:        []Scene{{ID: 1}, {ID: 2, Name: "Two"}},
				SceneContents: map[int]string{1: "one"},
				CurrentScene:  2,
			},
			check: func(t *testing.T, d *Document) {
				if _, ok := d.SceneContents[2]; !ok {
					t.Error("expected text entry for scene 2")
				}
				if d.Scenes[0].Name != "Scene 1" {
					t.Errorf("expected default name for scene 1, got %q", d.Scenes[0].Name)
				}
				if d.CurrentScene != 2 {
					t.Errorf("expected current scene to stay 2, got %d", d.CurrentScene)
				}
			},
		},
		{
			name: "guards non-positive goal",
			doc:  &Document{DailyGoal: -5},
			check: func(t *testing.T, d *Document) {
				if d.DailyGoal != DefaultDailyGoal {
					t.Errorf("expected default goal, got %d", d.DailyGoal)
				}
			},
		},
		{
			name: "keeps stale contents",
			doc: &Document{
				Scenes:        []Scene{{ID: 1, Name: "One"}},
				SceneContents: map[int]string{1: "one", 5: "orphan"},
			},
			check: func(t *testing.T, d *Document) {
				if d.SceneContents[5] != "orphan" {
					t.Error("expected stale entry to be tolerated")
				}
				if len(d.Scenes) != 1 {
					t.Errorf("expected scene list untouched, got %v", d.Scenes)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doc.Normalize()
			if tt.doc.Characters == nil {
				t.Error("expected non-nil characters")
			}
			if tt.doc.History == nil {
				t.Error("expected non-nil history")
			}
			tt.check(t, tt.doc)
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	doc := NewDocument()
	doc.Characters = append(doc.Characters, Character{Name: "Elena", Role: "Protagonist"})
	doc.History.Append(HistoryEntry{SceneID: 1, Text: "v1"})

	c := doc.Clone()
	c.SceneContents[1] = "changed"
	c.Characters[0].Name = "Other"
	c.Scenes[0].Name = "Renamed"
	c.History.Append(HistoryEntry{SceneID: 1, Text: "v2"})

	if doc.SceneContents[1] != "" {
		t.Error("clone shares scene contents")
	}
	if doc.Characters[0].Name != "Elena" {
		t.Error("clone shares characters")
	}
	if doc.Scenes[0].Name != "Scene 1" {
		t.Error("clone shares scenes")
	}
	if doc.History.Len() != 1 {
		t.Error("clone shares history")
	}
}

func TestTotalWords(t *testing.T) {
	doc := NewDocument()
	doc.SceneContents[1] = "one two three"
	doc.AddScene("")
	doc.SceneContents[2] = "four five"
	doc.SceneContents[9] = "stale words are not counted"

	if got := doc.TotalWords(); got != 5 {
		t.Errorf("expected 5 total words, got %d", got)
	}
}

func TestManuscript(t *testing.T) {
	doc := NewDocument()
	doc.Title = "The Last Symphony"
	doc.SceneContents[1] = "Elena heard the silence."
	doc.AddScene("Meeting Master Cadence")

	got := Manuscript(doc)

	for _, want := range []string{"The Last Symphony", "Scene 1", "Elena heard the silence.", "Meeting Master Cadence", EmptyScenePlaceholder} {
		if !strings.Contains(got, want) {
			t.Errorf("expected manuscript to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Index(got, "Scene 1") > strings.Index(got, "Meeting Master Cadence") {
		t.Error("expected scenes in list order")
	}
}

func TestSceneSummary(t *testing.T) {
	doc := NewDocument()
	doc.SceneContents[1] = "a b c"
	doc.AddScene("Two")

	want := "Scene 1 - 3 words\nTwo - 0 words"
	if got := SceneSummary(doc); got != want {
		t.Errorf("SceneSummary() = %q, want %q", got, want)
	}
}
