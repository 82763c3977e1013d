package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return CloseHelpMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Scrivano Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Autosaving novel workspace"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Tabs"))
	b.WriteString("\n")
	b.WriteString(helpLine("1 - 6", "Editor, Scenes, History, Characters, Preview, Plot"))
	b.WriteString(helpLine("tab / shift+tab", "Next / previous tab"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Editor"))
	b.WriteString("\n")
	b.WriteString(helpLine("i / enter", "Start writing"))
	b.WriteString(helpLine("esc", "Stop writing"))
	b.WriteString(helpLine("ctrl+t", "Switch between scene and world notes"))
	b.WriteString(helpLine("e", "Open scene in $EDITOR"))
	b.WriteString(helpLine("y", "Copy scene to clipboard"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Lists"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l / ← / →", "Previous/next page"))
	b.WriteString(helpLine("enter", "Select scene / restore version"))
	b.WriteString(helpLine("n / r / e / d", "New, rename, edit, delete"))
	b.WriteString(helpLine("t / g", "Set title / daily goal"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Plot"))
	b.WriteString("\n")
	b.WriteString(helpLine("a / enter", "Place the active scene in the selected act"))
	b.WriteString(helpLine("u", "Take the active scene out of its act"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("ctrl+s", "Save now"))
	b.WriteString(helpLine("ctrl+f", "Toggle focus mode"))
	b.WriteString(helpLine("ctrl+r", "Reload from storage, dropping unsaved changes"))
	b.WriteString(helpLine("ctrl+o", "Save over a stored novel that could not be read"))
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / ctrl+c", "Save and quit"))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render("  The active scene is captured into history on every autosave."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  The last 10 versions are kept."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
