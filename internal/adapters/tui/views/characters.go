package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/tui/styles"
	"scrivano/internal/domain"
)

// CharacterKeyMap defines key bindings for the character list
type CharacterKeyMap struct {
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

var CharacterKeys = CharacterKeyMap{
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
}

// CharactersModel manages the character sheet
type CharactersModel struct {
	ViewState
	session   Session
	paginator *Paginator
	confirm   Confirmation

	characters []domain.Character

	form    *InputForm
	editing int // -1 while adding
}

// NewCharactersModel creates the character list view
func NewCharactersModel(session Session) *CharactersModel {
	return &CharactersModel{
		session:   session,
		paginator: NewPaginator(10),
		confirm:   NewConfirmation(),
		editing:   -1,
	}
}

// Init loads the characters
func (m *CharactersModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload reads the characters from the session
func (m *CharactersModel) Reload() tea.Cmd {
	doc, err := m.session.Document()
	if err != nil {
		return failed(err)
	}
	m.characters = doc.Characters
	m.paginator.SetTotal(len(m.characters))
	return nil
}

// Capturing reports whether a form or prompt is open
func (m *CharactersModel) Capturing() bool {
	return m.form != nil || m.confirm.Active()
}

// Update handles messages for the character list
func (m *CharactersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m, m.updateForm(msg)
		}
		if handled, cmd := m.confirm.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		if handleListKeys(m.paginator, msg) {
			return m, nil
		}
		return m, m.handleKey(msg)
	}

	if m.form != nil {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CharactersModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	idx := m.paginator.Cursor()
	hasSelection := idx >= 0 && idx < len(m.characters)

	switch {
	case key.Matches(msg, CharacterKeys.New):
		return m.openForm(-1, domain.Character{})

	case key.Matches(msg, CharacterKeys.Edit):
		if !hasSelection {
			return nil
		}
		return m.openForm(idx, m.characters[idx])

	case key.Matches(msg, CharacterKeys.Delete):
		if !hasSelection {
			return nil
		}
		m.confirm.Ask("Delete character", m.characters[idx].Name, func() tea.Cmd {
			if err := m.session.RemoveCharacter(idx); err != nil {
				return failed(err)
			}
			m.paginator.RemoveAtCursor()
			return changed("Character deleted")
		})
	}
	return nil
}

func (m *CharactersModel) openForm(index int, c domain.Character) tea.Cmd {
	title := "New character"
	if index >= 0 {
		title = "Edit character"
	}
	m.editing = index
	m.form = NewInputForm(title, "save",
		NewInputField("Name", "Elena", 80),
		NewInputField("Role", "Protagonist, violinist", 200),
	)
	m.form.SetValue(0, c.Name)
	m.form.SetValue(1, c.Role)
	return m.form.Init()
}

func (m *CharactersModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.form.Update(msg)
	switch action {
	case FormCancel:
		m.form = nil
		return nil
	case FormSubmit:
		return m.submitForm()
	}
	return cmd
}

func (m *CharactersModel) submitForm() tea.Cmd {
	name, role := m.form.Value(0), m.form.Value(1)
	if name == "" {
		return status("Character name is required", true)
	}

	message := "Character updated"
	if m.editing < 0 {
		idx, err := m.session.AddCharacter(name, role)
		if err != nil {
			return failed(err)
		}
		m.paginator.SetTotal(idx + 1)
		m.paginator.SetCursor(idx)
		message = "Added " + name
	} else if err := m.session.UpdateCharacter(m.editing, name, role); err != nil {
		return failed(err)
	}

	m.form = nil
	return changed(message)
}

// SetSize updates the view dimensions
func (m *CharactersModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(listPageSize(height))
}

// View renders the character list
func (m *CharactersModel) View() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle(fmt.Sprintf("%d characters", len(m.characters))))
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		return b.String()
	}
	if m.confirm.Active() {
		b.WriteString(m.confirm.View())
		return b.String()
	}

	if len(m.characters) == 0 {
		b.WriteString(styles.Placeholder.Render("No characters yet."))
		b.WriteString("\n")
	}

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		c := m.characters[i]
		line := fmt.Sprintf("%-24s %s", c.Name, c.Role)
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
	b.WriteString(RenderHelpLine(CharacterKeys.New, CharacterKeys.Edit, CharacterKeys.Delete))
	return b.String()
}
