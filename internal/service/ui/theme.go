package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/graceguide/grace/internal/core"
)

type palette struct {
	fg, muted, accent, accentFg, border, err, ok lipgloss.Color
}

var palettes = map[core.Theme]palette{
	core.ThemeLight: {
		fg:       "#1f2937",
		muted:    "#6b7280",
		accent:   "#1e3a8a",
		accentFg: "#ffffff",
		border:   "#2563eb",
		err:      "#b91c1c",
		ok:       "#15803d",
	},
	core.ThemeDark: {
		fg:       "#e5e7eb",
		muted:    "#9ca3af",
		accent:   "#60a5fa",
		accentFg: "#111827",
		border:   "#3b82f6",
		err:      "#f87171",
		ok:       "#4ade80",
	},
}

// Styles is the themed style set for the interactive client.
type Styles struct {
	Theme core.Theme

	Header   lipgloss.Style
	Banner   lipgloss.Style
	Question lipgloss.Style
	Body     lipgloss.Style
	Source   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	ModeActive   lipgloss.Style
	ModeInactive lipgloss.Style

	Panel lipgloss.Style
	Modal lipgloss.Style
}

func NewStyles(theme core.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		theme = core.ThemeLight
		p = palettes[theme]
	}

	return Styles{
		Theme:    theme,
		Header:   lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Banner:   lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		Question: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Body:     lipgloss.NewStyle().Foreground(p.fg),
		Source:   lipgloss.NewStyle().Foreground(p.muted).PaddingLeft(2),
		Muted:    lipgloss.NewStyle().Foreground(p.muted),
		Error:    lipgloss.NewStyle().Foreground(p.err).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(p.ok),

		ModeActive:   lipgloss.NewStyle().Foreground(p.accentFg).Background(p.accent).Bold(true).Padding(0, 1),
		ModeInactive: lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),

		Panel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		Modal: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.border).Padding(1, 2),
	}
}
