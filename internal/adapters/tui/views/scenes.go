package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/tui/styles"
	"scrivano/internal/domain"
)

// ListKeyMap defines the movement keys shared by list views
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
}

var ListKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
}

// handleListKeys moves p and reports whether msg was a movement key
func handleListKeys(p *Paginator, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, ListKeys.Up):
		p.CursorUp()
	case key.Matches(msg, ListKeys.Down):
		p.CursorDown()
	case key.Matches(msg, ListKeys.PrevPage):
		p.PrevPage()
	case key.Matches(msg, ListKeys.NextPage):
		p.NextPage()
	default:
		return false
	}
	return true
}

// listPageSize leaves room for the tab bar, status line and help
func listPageSize(height int) int {
	return max(height-12, 3)
}

// SceneKeyMap defines key bindings for the scene list
type SceneKeyMap struct {
	Select key.Binding
	New    key.Binding
	Rename key.Binding
	Title  key.Binding
	Goal   key.Binding
}

var SceneKeys = SceneKeyMap{
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new scene"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Title: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "title"),
	),
	Goal: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "daily goal"),
	),
}

type sceneForm int

const (
	sceneFormNone sceneForm = iota
	sceneFormNew
	sceneFormRename
	sceneFormTitle
	sceneFormGoal
)

// ScenesModel lists scenes and manages the document settings
type ScenesModel struct {
	ViewState
	session   Session
	paginator *Paginator

	title   string
	goal    int
	current int
	scenes  []domain.Scene
	words   map[int]int

	formKind sceneForm
	form     *InputForm
}

// NewScenesModel creates the scene list view
func NewScenesModel(session Session) *ScenesModel {
	return &ScenesModel{
		session:   session,
		paginator: NewPaginator(10),
		words:     make(map[int]int),
	}
}

// Init loads the scene list
func (m *ScenesModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload reads the scene list from the session
func (m *ScenesModel) Reload() tea.Cmd {
	doc, err := m.session.Document()
	if err != nil {
		return failed(err)
	}

	m.title = doc.Title
	m.goal = doc.DailyGoal
	m.current = doc.CurrentScene
	m.scenes = doc.Scenes
	clear(m.words)
	for _, s := range doc.Scenes {
		m.words[s.ID] = domain.WordCount(doc.SceneText(s.ID))
	}
	m.paginator.SetTotal(len(m.scenes))
	return nil
}

// Capturing reports whether a form is open
func (m *ScenesModel) Capturing() bool {
	return m.form != nil
}

func (m *ScenesModel) selected() (domain.Scene, bool) {
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.scenes) {
		return domain.Scene{}, false
	}
	return m.scenes[i], true
}

// Update handles messages for the scene list
func (m *ScenesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m, m.updateForm(msg)
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

func (m *ScenesModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, SceneKeys.Select):
		scene, ok := m.selected()
		if !ok {
			return nil
		}
		if err := m.session.SelectScene(scene.ID); err != nil {
			return failed(err)
		}
		return tea.Batch(
			changed("Editing "+scene.Name),
			func() tea.Msg { return SwitchToTabMsg{Tab: TabEditor} },
		)

	case key.Matches(msg, SceneKeys.New):
		return m.openForm(sceneFormNew, NewInputField("Name", "Scene name (optional)", 80), "")

	case key.Matches(msg, SceneKeys.Rename):
		scene, ok := m.selected()
		if !ok {
			return nil
		}
		return m.openForm(sceneFormRename, NewInputField("Name", "Scene name", 80), scene.Name)

	case key.Matches(msg, SceneKeys.Title):
		return m.openForm(sceneFormTitle, NewInputField("Title", "Novel title", 120), m.title)

	case key.Matches(msg, SceneKeys.Goal):
		return m.openForm(sceneFormGoal, NewInputField("Daily goal", "Words per day", 7), strconv.Itoa(m.goal))
	}
	return nil
}

func (m *ScenesModel) openForm(kind sceneForm, field InputField, value string) tea.Cmd {
	titles := map[sceneForm]string{
		sceneFormNew:    "New scene",
		sceneFormRename: "Rename scene",
		sceneFormTitle:  "Novel title",
		sceneFormGoal:   "Daily word goal",
	}
	m.formKind = kind
	m.form = NewInputForm(titles[kind], "save", field)
	m.form.SetValue(0, value)
	return m.form.Init()
}

func (m *ScenesModel) closeForm() {
	m.form = nil
	m.formKind = sceneFormNone
}

func (m *ScenesModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.form.Update(msg)
	switch action {
	case FormCancel:
		m.closeForm()
		return nil
	case FormSubmit:
		return m.submitForm()
	}
	return cmd
}

func (m *ScenesModel) submitForm() tea.Cmd {
	value := m.form.Value(0)

	var message string
	switch m.formKind {
	case sceneFormNew:
		id, err := m.session.AddScene(value)
		if err != nil {
			return failed(err)
		}
		message = fmt.Sprintf("Added scene %d", id)

	case sceneFormRename:
		scene, ok := m.selected()
		if !ok {
			m.closeForm()
			return nil
		}
		if err := m.session.RenameScene(scene.ID, value); err != nil {
			return failed(err)
		}
		message = "Renamed scene to " + value

	case sceneFormTitle:
		if err := m.session.SetTitle(value); err != nil {
			return failed(err)
		}
		message = "Title updated"

	case sceneFormGoal:
		goal, err := strconv.Atoi(value)
		if err != nil {
			return status("Daily goal must be a number", true)
		}
		if err := m.session.SetDailyGoal(goal); err != nil {
			return failed(err)
		}
		message = fmt.Sprintf("Daily goal set to %d words", goal)
	}

	m.closeForm()
	return changed(message)
}

// SetSize updates the view dimensions
func (m *ScenesModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(listPageSize(height))
}

// View renders the scene list
func (m *ScenesModel) View() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle(fmt.Sprintf("%s · goal %d words/day", m.title, m.goal)))
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		return b.String()
	}

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderScene(m.scenes[i], i == m.paginator.Cursor()))
		b.WriteString("\n")
	}
	if info := m.paginator.PageInfo(); info != "" {
		b.WriteString(RenderMuted(info))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(SceneKeys.Select, SceneKeys.New, SceneKeys.Rename, SceneKeys.Title, SceneKeys.Goal))
	return b.String()
}

func (m *ScenesModel) renderScene(scene domain.Scene, selected bool) string {
	marker := "  "
	if scene.ID == m.current {
		marker = "● "
	}
	line := fmt.Sprintf("%s%-3d %-30s %6d words", marker, scene.ID, scene.Name, m.words[scene.ID])

	switch {
	case selected:
		return styles.RowSelected.Render(line)
	case scene.ID == m.current:
		return styles.RowActive.Render(line)
	default:
		return styles.Row.Render(line)
	}
}
