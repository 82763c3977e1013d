package tui

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/memory"
	"scrivano/internal/adapters/tui/views"
	"scrivano/internal/application/session"
)

type flakyStorage struct {
	*memory.Store
	err    error
	getErr error
}

func (s *flakyStorage) Get(key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.Store.Get(key)
}

func (s *flakyStorage) Set(key, value string) error {
	if s.err != nil {
		return s.err
	}
	return s.Store.Set(key, value)
}

func newTestApp(t *testing.T, opts ...Option) (*App, *session.Manager, *flakyStorage) {
	t.Helper()
	store := &flakyStorage{Store: memory.NewStore()}
	m := session.NewManager(store)
	m.Load()
	app := NewApp(m, opts...)
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, m, store
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_AutosaveCapturesVersion(t *testing.T) {
	app, m, store := newTestApp(t)
	_, _ = m.SetSceneText(1, "draft one")

	_, cmd := app.Update(autosaveMsg{})
	if cmd == nil {
		t.Fatal("expected autosave to reschedule")
	}

	history, _ := m.History()
	if len(history) != 1 || history[0].Text != "draft one" {
		t.Fatalf("unexpected history %+v", history)
	}
	if _, ok, _ := store.Get(session.StorageKey); !ok {
		t.Error("expected document persisted")
	}
	if !strings.Contains(app.View(), "saved at ") {
		t.Error("expected last save time in status bar")
	}
}

func TestApp_AutosaveFailureKeepsRunning(t *testing.T) {
	app, m, store := newTestApp(t)
	store.err = errors.New("quota exceeded")

	_, cmd := app.Update(autosaveMsg{})
	if cmd == nil {
		t.Fatal("expected autosave to reschedule after failure")
	}
	if !app.statusErr || !strings.Contains(app.status, "quota exceeded") {
		t.Errorf("status = %q", app.status)
	}

	history, _ := m.History()
	if len(history) != 1 {
		t.Errorf("expected version kept in memory, got %d", len(history))
	}
}

func TestApp_TabSwitching(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(keyPress("3"))
	if app.tab != views.TabHistory {
		t.Errorf("tab = %s, want History", app.tab)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.tab != views.TabCharacters {
		t.Errorf("tab = %s, want Characters", app.tab)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.tab != views.TabScenes {
		t.Errorf("tab = %s, want Scenes", app.tab)
	}

	app.Update(keyPress("?"))
	if !app.showHelp || !strings.Contains(app.View(), "Scrivano Help") {
		t.Error("expected help overlay")
	}
	app.Update(views.CloseHelpMsg{})
	if app.showHelp {
		t.Error("expected help closed")
	}
}

func TestApp_DigitsTypedWhileWriting(t *testing.T) {
	app, m, _ := newTestApp(t)

	app.Update(keyPress("i"))
	app.Update(keyPress("2"))
	app.Update(keyPress("q"))

	if app.tab != views.TabEditor {
		t.Errorf("tab = %s, want Editor", app.tab)
	}
	doc, _ := m.Document()
	if doc.SceneText(1) != "2q" {
		t.Errorf("scene text = %q, want 2q", doc.SceneText(1))
	}
}

func TestApp_SaveAndQuit(t *testing.T) {
	app, m, store := newTestApp(t)
	_, _ = m.SetSceneText(1, "unsaved")

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if app.status != "Saved" {
		t.Errorf("status = %q", app.status)
	}

	_, _ = m.SetSceneText(1, "final")
	_, cmd := app.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	blob, _, _ := store.Get(session.StorageKey)
	if !strings.Contains(blob, "final") {
		t.Error("expected final text saved on quit")
	}
}

func TestApp_FocusMode(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Update(keyPress("2"))

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if !app.focusMode || app.tab != views.TabEditor {
		t.Error("expected focus mode on the editor tab")
	}
	if strings.Contains(app.View(), "Characters") {
		t.Error("focus mode should hide the tab bar")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if app.focusMode {
		t.Error("expected focus mode off")
	}
}

type stubEditor struct {
	edited  string
	err     error
	prepare string
}

func (e *stubEditor) Prepare(sceneName, text string) (*exec.Cmd, string, error) {
	e.prepare = text
	return exec.Command("true"), os.DevNull, e.err
}

func (e *stubEditor) Collect(path string) (string, error) {
	return e.edited, nil
}

func TestApp_ExternalEditor(t *testing.T) {
	ed := &stubEditor{edited: "from vim"}
	app, m, _ := newTestApp(t, WithEditor(ed))
	_, _ = m.SetSceneText(1, "before")

	_, cmd := app.Update(views.OpenEditorMsg{SceneID: 1})
	if cmd == nil {
		t.Fatal("expected exec command")
	}
	if ed.prepare != "before" {
		t.Errorf("prepared %q", ed.prepare)
	}

	app.Update(editorFinishedMsg{sceneID: 1, path: os.DevNull})
	doc, _ := m.Document()
	if doc.SceneText(1) != "from vim" {
		t.Errorf("scene text = %q", doc.SceneText(1))
	}
}

func TestApp_NoEditorConfigured(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(views.OpenEditorMsg{SceneID: 1})
	if !app.statusErr {
		t.Error("expected error status without editor")
	}
}

func TestApp_StartupMessage(t *testing.T) {
	app, _, _ := newTestApp(t, WithStartupMessage("Stored data was unreadable", true))
	if !strings.Contains(app.View(), "Stored data was unreadable") {
		t.Error("expected startup warning in status bar")
	}
}

func TestApp_UnreadStorageHoldsSaves(t *testing.T) {
	store := &flakyStorage{Store: memory.NewStore()}
	_ = store.Store.Set(session.StorageKey, `{"sceneText":{"1":"the real novel"}}`)
	store.getErr = errors.New("database is locked")

	m := session.NewManager(store)
	m.Load()
	app := NewApp(m)
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.Update(keyPress("i"))
	app.Update(keyPress("x"))
	store.getErr = nil

	app.Update(autosaveMsg{})
	if !app.statusErr {
		t.Error("expected autosave to report held saves")
	}
	if !strings.Contains(app.View(), "saves held") {
		t.Error("expected held saves in status bar")
	}
	blob, _, _ := store.Get(session.StorageKey)
	if !strings.Contains(blob, "the real novel") {
		t.Fatalf("stored novel overwritten: %s", blob)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	doc, _ := m.Document()
	if doc.SceneText(1) != "the real novel" {
		t.Errorf("scene text after reload = %q", doc.SceneText(1))
	}
	if app.editorView.SceneID() != 1 || !strings.Contains(app.View(), "the real novel") {
		t.Error("expected editor refreshed after reload")
	}
}

func TestApp_OverwriteUnreadStorage(t *testing.T) {
	store := &flakyStorage{Store: memory.NewStore()}
	_ = store.Store.Set(session.StorageKey, `{"sceneText":{"1":"old"}}`)
	store.getErr = errors.New("database is locked")

	m := session.NewManager(store)
	m.Load()
	app := NewApp(m)
	app.Init()
	store.getErr = nil

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if app.statusErr {
		t.Fatalf("overwrite failed: %s", app.status)
	}
	if m.Blocked() {
		t.Error("expected saves resumed")
	}
	blob, _, _ := store.Get(session.StorageKey)
	if strings.Contains(blob, "old") {
		t.Error("expected stored document replaced")
	}
}

func TestApp_PlotTab(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(keyPress("6"))
	if app.tab != views.TabPlot {
		t.Fatalf("tab = %s, want Plot", app.tab)
	}
	if !strings.Contains(app.View(), "Confrontation") {
		t.Error("expected default acts in plot tab")
	}
}
