package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Player        lipgloss.Style
	Banker        lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusError   lipgloss.Style
	StatusPending lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
	PlayerColor   lipgloss.Color
	BankerColor   lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	// Colors
	Primary:     lipgloss.Color("#7c3aed"),
	Error:       lipgloss.Color("#ef4444"),
	Border:      lipgloss.Color("#404040"),
	Muted:       lipgloss.Color("#737373"),
	PlayerColor: lipgloss.Color("#3b82f6"),
	BankerColor: lipgloss.Color("#ef4444"),

	// Text styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Player: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3b82f6")),
	Banker: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ef4444")),

	// Component styles
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(1, 2),
	TableHeader: lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		BorderBottom(true),
	TableSelected: lipgloss.NewStyle().
		Background(lipgloss.Color("#7c3aed")).
		Foreground(lipgloss.Color("#fafafa")),

	// Status styles
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	StatusPending: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		Italic(true),
}
