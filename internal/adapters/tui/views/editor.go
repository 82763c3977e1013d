package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/tui/styles"
	"scrivano/internal/domain"
)

// EditorKeyMap defines key bindings for the editor view
type EditorKeyMap struct {
	Write      key.Binding
	Stop       key.Binding
	ToggleText key.Binding
	External   key.Binding
	Copy       key.Binding
}

var EditorKeys = EditorKeyMap{
	Write: key.NewBinding(
		key.WithKeys("i", "enter"),
		key.WithHelp("i", "write"),
	),
	Stop: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "stop writing"),
	),
	ToggleText: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "scene/notes"),
	),
	External: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "$EDITOR"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
}

type editorTarget int

const (
	targetScene editorTarget = iota
	targetNotes
)

// EditorModel edits the active scene or the world notes
type EditorModel struct {
	ViewState
	session Session
	area    textarea.Model
	target  editorTarget

	sceneID   int
	sceneName string
	progress  domain.Progress
	focusMode bool

	copy func(string) error
}

// NewEditorModel creates the editor view
func NewEditorModel(session Session) *EditorModel {
	area := textarea.New()
	area.Placeholder = "Start writing..."
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.MaxHeight = 0
	area.Prompt = ""

	return &EditorModel{
		session: session,
		area:    area,
		copy:    clipboard.WriteAll,
	}
}

// Init loads the active scene
func (m *EditorModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload reads the active scene (or notes) from the session
func (m *EditorModel) Reload() tea.Cmd {
	doc, err := m.session.Document()
	if err != nil {
		return failed(err)
	}

	scene, _ := doc.Scene(doc.CurrentScene)
	m.sceneID = scene.ID
	m.sceneName = scene.Name

	text := doc.CurrentText()
	if m.target == targetNotes {
		text = doc.WorldNotes
	}
	if m.area.Value() != text {
		m.area.SetValue(text)
	}

	m.refreshProgress()
	return nil
}

func (m *EditorModel) refreshProgress() {
	stats, err := m.session.Stats()
	if err != nil {
		return
	}
	m.progress = stats.Progress
}

// Capturing reports whether keystrokes go to the text area
func (m *EditorModel) Capturing() bool {
	return m.area.Focused()
}

// SetFocusMode hides the header and progress bar
func (m *EditorModel) SetFocusMode(on bool) {
	m.focusMode = on
	m.resize()
}

// SceneID returns the scene being edited
func (m *EditorModel) SceneID() int {
	return m.sceneID
}

// Update handles messages for the editor
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.area.Focused() {
			return m, m.handleWriting(msg)
		}
		return m, m.handleNormal(msg)
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m *EditorModel) handleWriting(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, EditorKeys.Stop):
		m.area.Blur()
		return nil
	case key.Matches(msg, EditorKeys.ToggleText):
		return m.toggleTarget()
	}

	before := m.area.Value()
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	if m.area.Value() == before {
		return cmd
	}

	if err := m.store(m.area.Value()); err != nil {
		return tea.Batch(cmd, failed(err))
	}
	return cmd
}

func (m *EditorModel) handleNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, EditorKeys.Write):
		return m.area.Focus()

	case key.Matches(msg, EditorKeys.ToggleText):
		return m.toggleTarget()

	case key.Matches(msg, EditorKeys.External):
		if m.target == targetNotes {
			return status("The external editor opens scenes only", true)
		}
		id := m.sceneID
		return func() tea.Msg { return OpenEditorMsg{SceneID: id} }

	case key.Matches(msg, EditorKeys.Copy):
		if err := m.copy(m.area.Value()); err != nil {
			return failed(fmt.Errorf("copy to clipboard: %w", err))
		}
		return status("Copied to clipboard", false)
	}
	return nil
}

func (m *EditorModel) store(text string) error {
	if m.target == targetNotes {
		return m.session.SetWorldNotes(text)
	}
	words, err := m.session.SetSceneText(m.sceneID, text)
	if err != nil {
		return err
	}
	m.progress = domain.NewProgress(words, m.progress.Goal)
	return nil
}

func (m *EditorModel) toggleTarget() tea.Cmd {
	if m.target == targetScene {
		m.target = targetNotes
	} else {
		m.target = targetScene
	}
	cmd := m.Reload()
	m.area.CursorEnd()
	return cmd
}

// SetSize updates the view dimensions
func (m *EditorModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.resize()
}

func (m *EditorModel) resize() {
	if m.Width == 0 {
		return
	}
	w := m.Width - 8
	h := m.Height - 12
	if m.focusMode {
		h = m.Height - 6
	}
	m.area.SetWidth(max(w, 10))
	m.area.SetHeight(max(h, 3))
}

// View renders the editor
func (m *EditorModel) View() string {
	frame := styles.EditorFrame
	if m.area.Focused() {
		frame = styles.EditorFrameFocused
	}

	if m.focusMode {
		return frame.Render(m.area.View())
	}

	var b strings.Builder
	if m.target == targetNotes {
		b.WriteString(styles.SceneName.Render("World Notes"))
	} else {
		b.WriteString(styles.SceneName.Render(m.sceneName))
		b.WriteString("  ")
		b.WriteString(RenderProgressBar(m.progress, 20))
	}
	b.WriteString("\n")
	b.WriteString(frame.Render(m.area.View()))
	b.WriteString("\n")

	if m.area.Focused() {
		b.WriteString(RenderHelpLine(EditorKeys.Stop, EditorKeys.ToggleText))
	} else {
		b.WriteString(RenderHelpLine(EditorKeys.Write, EditorKeys.ToggleText, EditorKeys.External, EditorKeys.Copy))
	}
	return b.String()
}
