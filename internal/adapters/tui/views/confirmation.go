package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// Confirmation is an inline yes/no prompt about one target.
// It is inactive until Ask is called.
type Confirmation struct {
	Action string // e.g. "Restore"
	Target string // e.g. "#3 Scene 1 (14:02:10)"
	Keys   ConfirmKeyMap

	active    bool
	onConfirm func() tea.Cmd
}

// NewConfirmation creates an inactive confirmation with default keys
func NewConfirmation() Confirmation {
	return Confirmation{
		Keys: DefaultConfirmKeys,
	}
}

// Ask activates the prompt. onConfirm runs when the user confirms.
func (c *Confirmation) Ask(action, target string, onConfirm func() tea.Cmd) {
	c.Action = action
	c.Target = target
	c.onConfirm = onConfirm
	c.active = true
}

// Active reports whether the prompt is waiting for an answer
func (c *Confirmation) Active() bool {
	return c.active
}

// HandleKeyMsg processes key messages while the prompt is active.
// Returns (handled, cmd) where handled is true if the key was processed.
func (c *Confirmation) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !c.active {
		return false, nil
	}
	switch {
	case key.Matches(msg, c.Keys.Cancel):
		c.reset()
		return true, status("Cancelled", false)
	case key.Matches(msg, c.Keys.Confirm):
		confirm := c.onConfirm
		c.reset()
		if confirm == nil {
			return true, nil
		}
		return true, confirm()
	}
	// Swallow other keys while asking
	return true, nil
}

func (c *Confirmation) reset() {
	c.active = false
	c.onConfirm = nil
}

// View renders the target and the prompt
func (c *Confirmation) View() string {
	if !c.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(RenderTargetInfo(c.Action, c.Target))
	b.WriteString("\n\n")
	b.WriteString(RenderConfirmPrompt(c.Action + "?"))
	return b.String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargetInfo renders the action and what it applies to
func RenderTargetInfo(action, target string) string {
	if target == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(action + ":"))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(target)
	return b.String()
}
