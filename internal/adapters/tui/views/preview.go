package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scrivano/internal/domain"
)

// PreviewKeyMap defines key bindings for the manuscript preview
type PreviewKeyMap struct {
	Copy key.Binding
}

var PreviewKeys = PreviewKeyMap{
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy manuscript"),
	),
}

// PreviewModel shows the assembled manuscript in a scrollable viewport
type PreviewModel struct {
	ViewState
	session  Session
	viewport viewport.Model

	manuscript string
	summary    string

	copy func(string) error
}

// NewPreviewModel creates the manuscript preview
func NewPreviewModel(session Session) *PreviewModel {
	return &PreviewModel{
		session:  session,
		viewport: viewport.New(80, 20),
		copy:     clipboard.WriteAll,
	}
}

// Init builds the manuscript
func (m *PreviewModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload rebuilds the manuscript from the session
func (m *PreviewModel) Reload() tea.Cmd {
	doc, err := m.session.Document()
	if err != nil {
		return failed(err)
	}

	m.manuscript = domain.Manuscript(doc)
	m.summary = fmt.Sprintf("%d scenes · %d words", len(doc.Scenes), doc.TotalWords())
	m.render()
	return nil
}

func (m *PreviewModel) render() {
	content := m.manuscript
	if w := m.viewport.Width; w > 0 {
		content = lipgloss.NewStyle().Width(w).Render(content)
	}
	m.viewport.SetContent(content)
}

// Capturing is always false; the preview takes no text input
func (m *PreviewModel) Capturing() bool {
	return false
}

// Update handles messages for the preview
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, PreviewKeys.Copy) {
			if err := m.copy(m.manuscript); err != nil {
				return m, failed(fmt.Errorf("copy to clipboard: %w", err))
			}
			return m, status("Manuscript copied to clipboard", false)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetSize updates the view dimensions
func (m *PreviewModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.viewport.Width = max(width-6, 10)
	m.viewport.Height = max(height-10, 3)
	m.render()
}

// View renders the manuscript
func (m *PreviewModel) View() string {
	var b strings.Builder
	b.WriteString(RenderSubtitle(m.summary))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(RenderMuted(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)))
	b.WriteString("  ")
	b.WriteString(RenderHelpLine(ListKeys.Up, ListKeys.Down, PreviewKeys.Copy))
	return b.String()
}
