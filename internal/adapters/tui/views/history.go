package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/tui/styles"
	"scrivano/internal/domain"
)

// HistoryKeyMap defines key bindings for the version list
type HistoryKeyMap struct {
	Restore key.Binding
}

var HistoryKeys = HistoryKeyMap{
	Restore: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "restore into current scene"),
	),
}

const historyPreviewLength = 240

// HistoryModel lists saved versions, oldest first, and restores them
type HistoryModel struct {
	ViewState
	session   Session
	paginator *Paginator
	confirm   Confirmation

	entries    []domain.HistoryEntry
	sceneNames map[int]string
	current    int
}

// NewHistoryModel creates the version list view
func NewHistoryModel(session Session) *HistoryModel {
	return &HistoryModel{
		session:    session,
		paginator:  NewPaginator(10),
		confirm:    NewConfirmation(),
		sceneNames: make(map[int]string),
	}
}

// Init loads the version list
func (m *HistoryModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload reads history and scene names from the session
func (m *HistoryModel) Reload() tea.Cmd {
	doc, err := m.session.Document()
	if err != nil {
		return failed(err)
	}

	m.entries = doc.History.Entries()
	m.current = doc.CurrentScene
	clear(m.sceneNames)
	for _, s := range doc.Scenes {
		m.sceneNames[s.ID] = s.Name
	}

	// Keep the newest version in view after a tick
	atEnd := m.paginator.Cursor() >= m.paginator.Total()-1
	m.paginator.SetTotal(len(m.entries))
	if atEnd {
		m.paginator.SetCursor(len(m.entries) - 1)
	}
	return nil
}

// Capturing reports whether a restore prompt is open
func (m *HistoryModel) Capturing() bool {
	return m.confirm.Active()
}

// Update handles messages for the version list
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.confirm.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		if handleListKeys(m.paginator, msg) {
			return m, nil
		}
		if key.Matches(msg, HistoryKeys.Restore) {
			return m, m.askRestore()
		}
	}
	return m, nil
}

func (m *HistoryModel) askRestore() tea.Cmd {
	idx := m.paginator.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}

	target := fmt.Sprintf("%s into %s", m.describe(idx), m.sceneName(m.current))
	entry := m.entries[idx]
	m.confirm.Ask("Restore version", target, func() tea.Cmd {
		return m.restore(entry)
	})
	return nil
}

// restore looks the entry up again since autosave may have shifted indexes
// while the prompt was open
func (m *HistoryModel) restore(entry domain.HistoryEntry) tea.Cmd {
	if cmd := m.Reload(); cmd != nil {
		return cmd
	}
	idx := -1
	for i, e := range m.entries {
		if e == entry {
			idx = i
			break
		}
	}
	if idx < 0 {
		return status("That version has been evicted", true)
	}
	if err := m.session.Restore(m.current, idx); err != nil {
		return failed(err)
	}
	return changed(fmt.Sprintf("Restored version #%d", idx))
}

func (m *HistoryModel) sceneName(id int) string {
	if name, ok := m.sceneNames[id]; ok {
		return name
	}
	if id == 0 {
		return "unknown scene"
	}
	return domain.DefaultSceneName(id)
}

func (m *HistoryModel) describe(idx int) string {
	e := m.entries[idx]
	return fmt.Sprintf("#%d %s (%s, %d words)",
		idx, e.Timestamp.Local().Format("15:04:05"), m.sceneName(e.SceneID), domain.WordCount(e.Text))
}

// SetSize updates the view dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(listPageSize(height) / 2)
}

// View renders the version list with a preview of the selected version
func (m *HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle(fmt.Sprintf("%d of %d versions", len(m.entries), domain.HistoryCapacity)))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(styles.Placeholder.Render("No versions yet. One is captured on every autosave."))
		return b.String()
	}

	if m.confirm.Active() {
		b.WriteString(m.confirm.View())
		return b.String()
	}

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		line := m.describe(i)
		if i == m.paginator.Cursor() {
			b.WriteString(styles.RowSelected.Render(line))
		} else {
			b.WriteString(styles.Row.Render(line))
		}
		b.WriteString("\n")
	}
	if info := m.paginator.PageInfo(); info != "" {
		b.WriteString(RenderMuted(info))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if text := m.entries[m.paginator.Cursor()].Text; strings.TrimSpace(text) == "" {
		b.WriteString(styles.Placeholder.Render(domain.EmptyScenePlaceholder))
	} else {
		b.WriteString(RenderMuted(domain.Excerpt(text, historyPreviewLength)))
	}
	b.WriteString("\n\n")

	b.WriteString(RenderHelpLine(ListKeys.Up, ListKeys.Down, HistoryKeys.Restore))
	return b.String()
}
