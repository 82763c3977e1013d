package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Surface   = lipgloss.Color("#1F2937") // Dark slate

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Focus mode keeps only the page margins
	Focus = lipgloss.NewStyle().
		Padding(1, 4)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tabs
	Tab = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 2)

	TabActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true).
			Padding(0, 2)

	TabGap = lipgloss.NewStyle().
		Foreground(Muted).
		SetString("│")

	// List rows
	Row = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowActive = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Scene text
	SceneName = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	Placeholder = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Progress bar
	ProgressFilled = lipgloss.NewStyle().Foreground(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(Surface)
	ProgressDone   = lipgloss.NewStyle().Foreground(Warning)
	ProgressChar   = "█"

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(Surface).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Editor frame
	EditorFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted)

	EditorFrameFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Secondary)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// ProgressColor returns the bar color for a goal ratio
func ProgressColor(ratio float64) lipgloss.Style {
	if ratio >= 1 {
		return ProgressDone
	}
	return ProgressFilled
}
