package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/tui/styles"
	"scrivano/internal/domain"
)

// PlotKeyMap defines key bindings for the plot outline
type PlotKeyMap struct {
	Assign   key.Binding
	Unassign key.Binding
	New      key.Binding
	Rename   key.Binding
	Delete   key.Binding
}

var PlotKeys = PlotKeyMap{
	Assign: key.NewBinding(
		key.WithKeys("a", "enter"),
		key.WithHelp("a", "place active scene"),
	),
	Unassign: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "unplace active scene"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new act"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename act"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete act"),
	),
}

// PlotModel arranges scenes into acts
type PlotModel struct {
	ViewState
	session   Session
	paginator *Paginator
	confirm   Confirmation

	acts       []domain.ActOutline
	unassigned []domain.Scene
	active     domain.Scene
	activeAct  int

	form     *InputForm
	renaming int // -1 while adding
}

// NewPlotModel creates the plot outline view
func NewPlotModel(session Session) *PlotModel {
	return &PlotModel{
		session:   session,
		paginator: NewPaginator(10),
		confirm:   NewConfirmation(),
		renaming:  -1,
	}
}

// Init loads the outline
func (m *PlotModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload reads the outline from the session
func (m *PlotModel) Reload() tea.Cmd {
	doc, err := m.session.Document()
	if err != nil {
		return failed(err)
	}
	m.acts, m.unassigned = doc.PlotOutline()
	m.active, _ = doc.Scene(doc.CurrentScene)
	m.activeAct = doc.ActOf(doc.CurrentScene)
	m.paginator.SetTotal(len(m.acts))
	return nil
}

// Capturing reports whether a form or prompt is open
func (m *PlotModel) Capturing() bool {
	return m.form != nil || m.confirm.Active()
}

// Update handles messages for the plot outline
func (m *PlotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m *PlotModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	idx := m.paginator.Cursor()
	hasSelection := idx >= 0 && idx < len(m.acts)

	switch {
	case key.Matches(msg, PlotKeys.Assign):
		if !hasSelection {
			return nil
		}
		if err := m.session.AssignScene(idx, m.active.ID); err != nil {
			return failed(err)
		}
		return changed(fmt.Sprintf("%s placed in %s", m.active.Name, m.acts[idx].Title))

	case key.Matches(msg, PlotKeys.Unassign):
		if m.activeAct < 0 {
			return status(m.active.Name+" is not in any act", false)
		}
		if err := m.session.UnassignScene(m.active.ID); err != nil {
			return failed(err)
		}
		return changed(m.active.Name + " removed from the outline")

	case key.Matches(msg, PlotKeys.New):
		return m.openForm(-1, "")

	case key.Matches(msg, PlotKeys.Rename):
		if !hasSelection {
			return nil
		}
		return m.openForm(idx, m.acts[idx].Title)

	case key.Matches(msg, PlotKeys.Delete):
		if !hasSelection {
			return nil
		}
		m.confirm.Ask("Delete act", m.acts[idx].Title, func() tea.Cmd {
			if err := m.session.RemoveAct(idx); err != nil {
				return failed(err)
			}
			m.paginator.RemoveAtCursor()
			return changed("Act deleted")
		})
	}
	return nil
}

func (m *PlotModel) openForm(index int, title string) tea.Cmd {
	heading := "New act"
	if index >= 0 {
		heading = "Rename act"
	}
	m.renaming = index
	m.form = NewInputForm(heading, "save", NewInputField("Title", "Resolution", 80))
	m.form.SetValue(0, title)
	return m.form.Init()
}

func (m *PlotModel) updateForm(msg tea.KeyMsg) tea.Cmd {
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

func (m *PlotModel) submitForm() tea.Cmd {
	title := m.form.Value(0)
	if title == "" {
		return status("Act title is required", true)
	}

	message := "Act renamed"
	if m.renaming < 0 {
		idx, err := m.session.AddAct(title)
		if err != nil {
			return failed(err)
		}
		m.paginator.SetTotal(idx + 1)
		m.paginator.SetCursor(idx)
		message = "Added act " + title
	} else if err := m.session.RenameAct(m.renaming, title); err != nil {
		return failed(err)
	}

	m.form = nil
	return changed(message)
}

// SetSize updates the view dimensions
func (m *PlotModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(listPageSize(height) / 2)
}

// View renders the acts with their scenes
func (m *PlotModel) View() string {
	var b strings.Builder

	where := "not in any act"
	if m.activeAct >= 0 && m.activeAct < len(m.acts) {
		where = "in " + m.acts[m.activeAct].Title
	}
	b.WriteString(RenderSubtitle(fmt.Sprintf("%d acts · active scene %s, %s", len(m.acts), m.active.Name, where)))
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		return b.String()
	}
	if m.confirm.Active() {
		b.WriteString(m.confirm.View())
		return b.String()
	}

	if len(m.acts) == 0 {
		b.WriteString(styles.Placeholder.Render("No acts yet."))
		b.WriteString("\n")
	}

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		act := m.acts[i]
		line := fmt.Sprintf("%d  %s", i+1, act.Title)
		if i == m.paginator.Cursor() {
			b.WriteString(styles.RowSelected.Render(line))
		} else {
			b.WriteString(styles.Row.Render(line))
		}
		b.WriteString("\n")
		b.WriteString(renderSceneCards(act.Scenes))
	}
	if info := m.paginator.PageInfo(); info != "" {
		b.WriteString(RenderMuted(info))
		b.WriteString("\n")
	}

	if len(m.unassigned) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderMuted("Unassigned"))
		b.WriteString("\n")
		b.WriteString(renderSceneCards(m.unassigned))
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(PlotKeys.Assign, PlotKeys.Unassign, PlotKeys.New, PlotKeys.Rename, PlotKeys.Delete))
	return b.String()
}

func renderSceneCards(scenes []domain.Scene) string {
	if len(scenes) == 0 {
		return RenderMuted("    (no scenes)") + "\n"
	}
	var b strings.Builder
	for _, s := range scenes {
		b.WriteString(RenderMuted("    " + s.Name))
		b.WriteString("\n")
	}
	return b.String()
}
