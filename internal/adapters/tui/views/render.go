package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"scrivano/internal/adapters/tui/styles"
	"scrivano/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderSubtitle renders a subtitle with the standard subtitle style
func RenderSubtitle(subtitle string) string {
	return styles.Subtitle.Render(subtitle)
}

// RenderMuted renders muted/secondary text
func RenderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// RenderTabs renders the tab bar with active highlighted
func RenderTabs(active Tab) string {
	parts := make([]string, 0, 2*len(Tabs))
	for i, t := range Tabs {
		if i > 0 {
			parts = append(parts, styles.TabGap.String())
		}
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == active {
			parts = append(parts, styles.TabActive.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderProgressBar renders a bar of width cells filled to p.Ratio,
// followed by the word count and percentage
func RenderProgressBar(p domain.Progress, width int) string {
	if width < 1 {
		width = 1
	}
	filled := int(p.Ratio * float64(width))
	if filled > width {
		filled = width
	}

	bar := styles.ProgressColor(p.Ratio).Render(strings.Repeat(styles.ProgressChar, filled)) +
		styles.ProgressEmpty.Render(strings.Repeat(styles.ProgressChar, width-filled))

	return fmt.Sprintf("%s %s", bar,
		styles.MutedText.Render(fmt.Sprintf("%d / %d words (%d%%)", p.Words, p.Goal, p.Percent)))
}
