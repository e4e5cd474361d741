package ui

import "github.com/charmbracelet/lipgloss"

// Help output styles use the base ANSI palette so they read on any terminal.
var (
	// TitleStyle ANSI 4 (Blue) for headings
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black) keeps descriptions quiet
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)
