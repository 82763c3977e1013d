package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"scrivano/internal/adapters/tui/styles"
	"scrivano/internal/adapters/tui/views"
	"scrivano/internal/application/session"
	"scrivano/internal/ports"
)

// Session is what the app needs from the session manager: everything the
// views drive plus autosave, explicit saves and reloading
type Session interface {
	views.Session
	Tick() error
	Save() error
	ForceSave() error
	Load() *session.LoadResult
}

// tabModel is implemented by every tab view
type tabModel interface {
	tea.Model
	SetSize(width, height int)
	Reload() tea.Cmd
	Capturing() bool
}

// AppKeyMap defines the global key bindings
type AppKeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Save      key.Binding
	Focus     key.Binding
	Reload    key.Binding
	Overwrite key.Binding
	Help      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
}

var AppKeys = AppKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Focus: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "focus"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload from storage"),
	),
	Overwrite: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "overwrite storage"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
}

// autosaveMsg fires every autosave interval
type autosaveMsg struct{ at time.Time }

type editorFinishedMsg struct {
	sceneID int
	path    string
	err     error
}

// App is the main TUI application model
type App struct {
	session  Session
	editor   ports.SceneEditor
	log      logrus.FieldLogger
	interval time.Duration

	tab       views.Tab
	showHelp  bool
	focusMode bool

	editorView *views.EditorModel
	tabs       map[views.Tab]tabModel
	help       *views.HelpModel

	status    string
	statusErr bool

	width  int
	height int
}

// Option configures an App
type Option func(*App)

// WithEditor enables editing scenes in an external editor
func WithEditor(ed ports.SceneEditor) Option {
	return func(a *App) { a.editor = ed }
}

// WithLogger sets the logger for autosave failures
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *App) { a.log = l }
}

// WithAutosaveInterval overrides session.DefaultAutosaveInterval
func WithAutosaveInterval(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithStartupMessage shows a message in the status line until the next one,
// e.g. the warning from a failed load
func WithStartupMessage(msg string, isErr bool) Option {
	return func(a *App) {
		a.status = msg
		a.statusErr = isErr
	}
}

// NewApp creates a new TUI application around a loaded session
func NewApp(s Session, opts ...Option) *App {
	a := &App{
		session:  s,
		interval: session.DefaultAutosaveInterval,
		log:      logrus.StandardLogger(),
		tab:      views.TabEditor,
		help:     views.NewHelpModel(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.editorView = views.NewEditorModel(s)
	a.tabs = map[views.Tab]tabModel{
		views.TabEditor:     a.editorView,
		views.TabScenes:     views.NewScenesModel(s),
		views.TabHistory:    views.NewHistoryModel(s),
		views.TabCharacters: views.NewCharactersModel(s),
		views.TabPreview:    views.NewPreviewModel(s),
		views.TabPlot:       views.NewPlotModel(s),
	}
	return a
}

// Init loads every view and starts the autosave timer
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.scheduleAutosave()}
	for _, t := range views.Tabs {
		cmds = append(cmds, a.tabs[t].Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) scheduleAutosave() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return autosaveMsg{at: t}
	})
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, t := range a.tabs {
			t.SetSize(msg.Width, msg.Height)
		}
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case autosaveMsg:
		return a, tea.Batch(a.autosave(), a.scheduleAutosave())

	case views.SwitchToTabMsg:
		a.tab = msg.Tab
		a.showHelp = false
		return a, nil

	case views.SwitchToHelpMsg:
		a.showHelp = true
		return a, nil

	case views.CloseHelpMsg:
		a.showHelp = false
		return a, nil

	case views.DocumentChangedMsg:
		if msg.Message != "" {
			a.setStatus(msg.Message, false)
		}
		return a, a.reloadAll()

	case views.StatusMsg:
		a.setStatus(msg.Text, msg.Err)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.SceneID)

	case editorFinishedMsg:
		return a, a.finishEditor(msg)

	case tea.KeyMsg:
		if handled, cmd := a.handleGlobalKey(msg); handled {
			return a, cmd
		}
	}

	if a.showHelp {
		_, cmd := a.help.Update(msg)
		return a, cmd
	}
	_, cmd := a.tabs[a.tab].Update(msg)
	return a, cmd
}

// handleGlobalKey handles keys that work on every tab. Plain-letter keys are
// left to the view while it is capturing text.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, AppKeys.ForceQuit):
		return true, a.quit()
	case key.Matches(msg, AppKeys.Save):
		return true, a.save()
	case key.Matches(msg, AppKeys.Reload):
		return true, a.reload()
	case key.Matches(msg, AppKeys.Overwrite):
		return true, a.overwrite()
	case key.Matches(msg, AppKeys.Focus):
		a.focusMode = !a.focusMode
		a.editorView.SetFocusMode(a.focusMode)
		if a.focusMode {
			a.tab = views.TabEditor
			a.showHelp = false
		}
		return true, nil
	}

	if a.showHelp || a.tabs[a.tab].Capturing() {
		return false, nil
	}

	switch {
	case key.Matches(msg, AppKeys.Quit):
		return true, a.quit()
	case key.Matches(msg, AppKeys.Help):
		a.showHelp = true
		return true, nil
	case key.Matches(msg, AppKeys.NextTab):
		a.tab = views.Tabs[(int(a.tab)+1)%len(views.Tabs)]
		return true, nil
	case key.Matches(msg, AppKeys.PrevTab):
		a.tab = views.Tabs[(int(a.tab)+len(views.Tabs)-1)%len(views.Tabs)]
		return true, nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(views.Tabs) {
		a.tab = views.Tabs[s[0]-'1']
		return true, nil
	}
	return false, nil
}

// autosave captures the active scene into history and persists. Failures are
// shown and logged; the timer keeps running.
func (a *App) autosave() tea.Cmd {
	if err := a.session.Tick(); err != nil {
		a.log.WithError(err).Warn("autosave failed")
		a.setStatus("Autosave failed: "+err.Error(), true)
	}
	return a.reloadAll()
}

func (a *App) save() tea.Cmd {
	if err := a.session.Save(); err != nil {
		a.log.WithError(err).Warn("save failed")
		a.setStatus("Save failed: "+err.Error(), true)
		return nil
	}
	a.setStatus("Saved", false)
	return nil
}

// reload drops in-memory changes and reads the stored document again. The
// editor is refreshed too, even mid-typing, so stale text is not written back.
func (a *App) reload() tea.Cmd {
	if res := a.session.Load(); res.Warning != nil {
		a.log.WithError(res.Warning).Warn("reload failed")
		a.setStatus("Reload failed: "+res.Warning.Error(), true)
	} else {
		a.setStatus("Reloaded from storage", false)
	}

	cmds := make([]tea.Cmd, 0, len(views.Tabs))
	for _, t := range views.Tabs {
		cmds = append(cmds, a.tabs[t].Reload())
	}
	return tea.Batch(cmds...)
}

// overwrite saves even when the stored document was never read
func (a *App) overwrite() tea.Cmd {
	if err := a.session.ForceSave(); err != nil {
		a.log.WithError(err).Warn("overwrite failed")
		a.setStatus("Save failed: "+err.Error(), true)
		return nil
	}
	a.setStatus("Saved, stored document replaced", false)
	return nil
}

func (a *App) quit() tea.Cmd {
	if err := a.session.Save(); err != nil {
		a.log.WithError(err).Error("final save failed")
	}
	return tea.Quit
}

// reloadAll refreshes the views that are not being typed into
func (a *App) reloadAll() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range views.Tabs {
		view := a.tabs[t]
		if view.Capturing() && t == views.TabEditor {
			continue
		}
		cmds = append(cmds, view.Reload())
	}
	return tea.Batch(cmds...)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) openEditor(sceneID int) tea.Cmd {
	if a.editor == nil {
		a.setStatus("No external editor configured", true)
		return nil
	}

	doc, err := a.session.Document()
	if err != nil {
		a.setStatus(err.Error(), true)
		return nil
	}
	scene, ok := doc.Scene(sceneID)
	if !ok {
		a.setStatus(fmt.Sprintf("Scene %d not found", sceneID), true)
		return nil
	}

	cmd, path, err := a.editor.Prepare(scene.Name, doc.SceneText(sceneID))
	if err != nil {
		a.setStatus(err.Error(), true)
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{sceneID: sceneID, path: path, err: err}
	})
}

func (a *App) finishEditor(msg editorFinishedMsg) tea.Cmd {
	text, collectErr := a.editor.Collect(msg.path)
	if msg.err != nil {
		a.setStatus("Editor exited with error: "+msg.err.Error(), true)
		return nil
	}
	if collectErr != nil {
		a.setStatus(collectErr.Error(), true)
		return nil
	}

	if _, err := a.session.SetSceneText(msg.sceneID, text); err != nil {
		a.setStatus(err.Error(), true)
		return nil
	}
	a.setStatus("Scene updated from editor", false)
	return a.reloadAll()
}

// View renders the current tab
func (a *App) View() string {
	if a.showHelp {
		return a.help.View()
	}

	if a.focusMode {
		return styles.Focus.Render(a.editorView.View())
	}

	var b strings.Builder
	b.WriteString(views.RenderTabs(a.tab))
	b.WriteString("\n\n")
	b.WriteString(a.tabs[a.tab].View())
	b.WriteString("\n\n")
	b.WriteString(a.renderStatusBar())

	return styles.App.Render(b.String())
}

func (a *App) renderStatusBar() string {
	stats, err := a.session.Stats()
	if err != nil {
		return views.RenderMessage(err.Error(), true)
	}

	saved := "not saved yet"
	switch {
	case stats.Blocked:
		saved = "saves held: stored novel unread"
	case !stats.LastSaved.IsZero():
		saved = "saved at " + stats.LastSaved.Local().Format("15:04:05")
	}

	left := styles.StatusKey.Render(stats.SceneName) +
		styles.StatusBar.Render(fmt.Sprintf("%d words · %d%% of %d · %d total · %s",
			stats.SceneWords, stats.Progress.Percent, stats.Progress.Goal, stats.TotalWords, saved))

	line := left
	if a.status != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", views.RenderMessage(a.status, a.statusErr))
	}
	if stats.Blocked {
		return line + "\n" + views.RenderHelpLine(AppKeys.Reload, AppKeys.Overwrite, AppKeys.Help, AppKeys.Quit)
	}
	return line + "\n" + views.RenderHelpLine(AppKeys.Save, AppKeys.Focus, AppKeys.Help, AppKeys.Quit)
}
