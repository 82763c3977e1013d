package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"scrivano/internal/adapters/memory"
	"scrivano/internal/application"
	"scrivano/internal/application/session"
	"scrivano/internal/domain"
	"scrivano/internal/ports"
)

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	m := session.NewManager(memory.NewStore())
	if res := m.Load(); res.Warning != nil {
		t.Fatalf("load failed: %v", res.Warning)
	}
	return m
}

func TestWriteSceneCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sceneID int
		wantErr bool
		errMsg  string
	}{
		{name: "valid", sceneID: 1},
		{name: "zero scene", sceneID: 0, wantErr: true, errMsg: "scene ID must be greater than zero"},
		{name: "negative scene", sceneID: -3, wantErr: true, errMsg: "got: -3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &WriteSceneCommand{SceneID: tt.sceneID}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRestoreCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sceneID int
		index   int
		wantErr bool
		errMsg  string
	}{
		{name: "valid", sceneID: 1, index: 0},
		{name: "bad scene", sceneID: 0, index: 0, wantErr: true, errMsg: "scene ID"},
		{name: "negative index", sceneID: 1, index: -1, wantErr: true, errMsg: "history index must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&RestoreCommand{SceneID: tt.sceneID, HistoryIndex: tt.index}).Validate()
			if tt.wantErr {
				if err == nil || !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRenameSceneCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sceneID int
		newName string
		errMsg  string
	}{
		{name: "valid", sceneID: 2, newName: "The Duel"},
		{name: "blank name", sceneID: 2, newName: "   ", errMsg: "scene name is required"},
		{name: "bad scene", sceneID: 0, newName: "x", errMsg: "scene ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&RenameSceneCommand{SceneID: tt.sceneID, NewName: tt.newName}).Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestSettingCommands_Validate(t *testing.T) {
	tests := []struct {
		name   string
		cmd    interface{ Validate() error }
		errMsg string
	}{
		{"goal ok", &SetGoalCommand{Goal: 500}, ""},
		{"goal zero", &SetGoalCommand{Goal: 0}, "daily goal must be greater than zero"},
		{"title ok", &SetTitleCommand{Title: "The Resonance"}, ""},
		{"title blank", &SetTitleCommand{Title: " "}, "title is required"},
		{"character ok", &AddCharacterCommand{Name: "Elena"}, ""},
		{"character blank", &AddCharacterCommand{Name: ""}, "name is required"},
		{"update negative", &UpdateCharacterCommand{Index: -1, Name: "x"}, "must not be negative"},
		{"export json", &ExportCommand{Options: ports.ExportOptions{Format: ports.ExportJSON}}, ""},
		{"export missing", &ExportCommand{}, "format is required"},
		{"export pdf", &ExportCommand{Options: ports.ExportOptions{Format: "pdf"}}, "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestSceneCommands_Execute(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	write, err := NewWriteSceneCommand(m, 1, "Elena stood alone.").Execute(ctx)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if write.Words != 3 {
		t.Errorf("expected 3 words, got %d", write.Words)
	}

	added, err := NewAddSceneCommand(m, "  The Duel ").Execute(ctx)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added.SceneID != 2 {
		t.Errorf("expected scene 2, got %d", added.SceneID)
	}

	if _, err := NewRenameSceneCommand(m, 2, "Aftermath").Execute(ctx); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if _, err := NewSelectSceneCommand(m, 1).Execute(ctx); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	_, err = NewSelectSceneCommand(m, 7).Execute(ctx)
	if !errors.Is(err, application.ErrSceneNotFound) {
		t.Errorf("expected ErrSceneNotFound, got %v", err)
	}

	doc, _ := m.Document()
	if doc.CurrentScene != 1 {
		t.Errorf("expected active scene 1, got %d", doc.CurrentScene)
	}
	if doc.Scenes[1].Name != "Aftermath" {
		t.Errorf("expected renamed scene, got %q", doc.Scenes[1].Name)
	}
}

func TestHistoryCommands_Execute(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	NewWriteSceneCommand(m, 1, "first").Execute(ctx)
	snap, err := NewSnapshotCommand(m).Execute(ctx)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.Versions != 1 {
		t.Errorf("expected 1 version, got %d", snap.Versions)
	}

	NewWriteSceneCommand(m, 1, "second").Execute(ctx)

	res, err := NewRestoreCommand(m, 1, 0).Execute(ctx)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if res.Entry.Text != "first" {
		t.Errorf("expected restored text 'first', got %q", res.Entry.Text)
	}

	doc, _ := m.Document()
	if doc.SceneText(1) != "first" {
		t.Errorf("expected scene text 'first', got %q", doc.SceneText(1))
	}

	_, err = NewRestoreCommand(m, 1, 5).Execute(ctx)
	if !errors.Is(err, application.ErrInvalidHistoryIndex) {
		t.Errorf("expected ErrInvalidHistoryIndex, got %v", err)
	}
}

func TestCharacterCommands_Execute(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := NewAddCharacterCommand(m, "Elena", "Protagonist").Execute(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := NewAddCharacterCommand(m, "Cadence", "Mentor").Execute(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := NewUpdateCharacterCommand(m, 1, "Master Cadence", "Mentor").Execute(ctx); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := NewRemoveCharacterCommand(m, 0).Execute(ctx); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	_, err := NewRemoveCharacterCommand(m, 3).Execute(ctx)
	if !errors.Is(err, application.ErrCharacterNotFound) {
		t.Errorf("expected ErrCharacterNotFound, got %v", err)
	}

	doc, _ := m.Document()
	want := []domain.Character{{Name: "Master Cadence", Role: "Mentor"}}
	if len(doc.Characters) != 1 || doc.Characters[0] != want[0] {
		t.Errorf("expected %v, got %v", want, doc.Characters)
	}
}

func TestDocumentCommands_Execute(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := NewSetGoalCommand(m, 750).Execute(ctx); err != nil {
		t.Fatalf("goal failed: %v", err)
	}
	if _, err := NewSetTitleCommand(m, "The Resonance").Execute(ctx); err != nil {
		t.Fatalf("title failed: %v", err)
	}
	if _, err := NewSetWorldNotesCommand(m, "Music bends reality.").Execute(ctx); err != nil {
		t.Fatalf("notes failed: %v", err)
	}

	doc, _ := m.Document()
	if doc.DailyGoal != 750 || doc.Title != "The Resonance" || doc.WorldNotes != "Music bends reality." {
		t.Errorf("unexpected document settings: %+v", doc)
	}
}

func TestPlotCommands_Execute(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	_, _ = m.AddScene("The Calling")

	res, err := NewAddActCommand(m, "  Epilogue ").Execute(ctx)
	if err != nil {
		t.Fatalf("add act failed: %v", err)
	}
	if res.Act != 3 || res.Message != "Added act 3: Epilogue" {
		t.Errorf("unexpected result %+v", res)
	}
	if _, err := NewRenameActCommand(m, 0, "Opening").Execute(ctx); err != nil {
		t.Fatalf("rename act failed: %v", err)
	}
	if _, err := NewAssignSceneCommand(m, 0, 2).Execute(ctx); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := NewAssignSceneCommand(m, 3, 1).Execute(ctx); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := NewAssignSceneCommand(m, -1, 1).Execute(ctx); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	if _, err := NewRemoveActCommand(m, 1).Execute(ctx); err != nil {
		t.Fatalf("remove act failed: %v", err)
	}

	_, err = NewAssignSceneCommand(m, 7, 1).Execute(ctx)
	if !errors.Is(err, application.ErrActNotFound) {
		t.Errorf("expected ErrActNotFound, got %v", err)
	}
	if _, err := NewRenameActCommand(m, -1, "x").Execute(ctx); err == nil {
		t.Error("expected validation error for negative act")
	}
	if _, err := NewAddActCommand(m, " ").Execute(ctx); err == nil {
		t.Error("expected validation error for empty title")
	}

	doc, _ := m.Document()
	if len(doc.Plot) != 3 || doc.Plot[0].Title != "Opening" || doc.Plot[2].Title != "Epilogue" {
		t.Fatalf("unexpected plot %+v", doc.Plot)
	}
	if doc.ActOf(2) != 0 || doc.ActOf(1) != -1 {
		t.Errorf("unexpected placement %+v", doc.Plot)
	}
}

type stubExporter struct {
	gotTitle string
	gotOpts  ports.ExportOptions
}

func (s *stubExporter) Export(doc *domain.Document, opts ports.ExportOptions) (string, error) {
	s.gotTitle = doc.Title
	s.gotOpts = opts
	return filepath.Join(opts.Dir, "novel.md"), nil
}

func TestExportCommand_Execute(t *testing.T) {
	m := newTestManager(t)
	exp := &stubExporter{}

	opts := ports.ExportOptions{Format: ports.ExportMarkdown, Dir: "/tmp/out"}
	res, err := NewExportCommand(m, exp, opts).Execute(context.Background())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if res.Path != "/tmp/out/novel.md" {
		t.Errorf("unexpected path %q", res.Path)
	}
	if exp.gotTitle != domain.DefaultTitle || exp.gotOpts != opts {
		t.Errorf("exporter got %q %+v", exp.gotTitle, exp.gotOpts)
	}
}

func TestCommands_RequireLoadedSession(t *testing.T) {
	m := session.NewManager(memory.NewStore())

	_, err := NewWriteSceneCommand(m, 1, "x").Execute(context.Background())
	if !errors.Is(err, application.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
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
