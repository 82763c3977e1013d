package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/application/session"
	"scrivano/internal/domain"
)

// Session is the part of the session manager the views drive
type Session interface {
	Document() (*domain.Document, error)
	History() ([]domain.HistoryEntry, error)
	Stats() (session.Stats, error)

	SetSceneText(sceneID int, text string) (int, error)
	AddScene(name string) (int, error)
	SelectScene(sceneID int) error
	RenameScene(sceneID int, name string) error
	Restore(sceneID, historyIndex int) error

	SetTitle(title string) error
	SetDailyGoal(goal int) error
	SetWorldNotes(text string) error

	AddCharacter(name, role string) (int, error)
	UpdateCharacter(index int, name, role string) error
	RemoveCharacter(index int) error

	AddAct(title string) (int, error)
	RenameAct(index int, title string) error
	RemoveAct(index int) error
	AssignScene(actIndex, sceneID int) error
	UnassignScene(sceneID int) error
}

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Tab identifies one of the top-level views
type Tab int

const (
	TabEditor Tab = iota
	TabScenes
	TabHistory
	TabCharacters
	TabPreview
	TabPlot
)

// Tabs lists the tabs in display order
var Tabs = []Tab{TabEditor, TabScenes, TabHistory, TabCharacters, TabPreview, TabPlot}

func (t Tab) String() string {
	switch t {
	case TabEditor:
		return "Editor"
	case TabScenes:
		return "Scenes"
	case TabHistory:
		return "History"
	case TabCharacters:
		return "Characters"
	case TabPreview:
		return "Preview"
	case TabPlot:
		return "Plot"
	default:
		return "Unknown"
	}
}

// SwitchToTabMsg asks the app to show a tab
type SwitchToTabMsg struct {
	Tab Tab
}

// SwitchToHelpMsg asks the app to show the help overlay
type SwitchToHelpMsg struct{}

// CloseHelpMsg returns from the help overlay to the previous tab
type CloseHelpMsg struct{}

// DocumentChangedMsg tells every view to reload from the session.
// Message, when set, is shown in the status line.
type DocumentChangedMsg struct {
	Message string
}

// StatusMsg shows a transient message in the status line
type StatusMsg struct {
	Text string
	Err  bool
}

// OpenEditorMsg asks the app to edit a scene in the external editor
type OpenEditorMsg struct {
	SceneID int
}

// changed returns a command reporting a document change
func changed(message string) tea.Cmd {
	return func() tea.Msg { return DocumentChangedMsg{Message: message} }
}

// status returns a command showing a status line message
func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, Err: isErr} }
}

// failed reports err in the status line
func failed(err error) tea.Cmd {
	return status(err.Error(), true)
}
