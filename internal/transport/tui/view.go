package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/graceguide/grace/internal/service/history"
	"github.com/graceguide/grace/internal/service/ui"
)

func (m *model) View() string {
	if m.modal {
		prompt := ui.Prompt(m.styles, m.email.View(), m.modalView(), m.width)
		if m.width == 0 || m.height == 0 {
			return prompt
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, prompt)
	}

	var sections []string
	sections = append(sections, ui.Banner(m.styles, m.day))

	body := m.viewport.View()
	if len(m.transcript) == 0 {
		body = m.styles.Muted.Render("Ask a question to begin. Answers cite Scripture and the Catechism.")
	}
	if m.showHistory {
		panelWidth := max(m.width-m.viewport.Width-4, 20)
		panel := m.styles.Panel.Width(panelWidth).Render(
			m.styles.Header.Render("History") + "\n" + ui.History(m.styles, history.Render(m.entries), panelWidth-2),
		)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panel)
	}
	sections = append(sections, body)

	sections = append(sections, ui.ModeSelector(m.styles, m.session.Mode()))
	sections = append(sections, m.inputView())

	footer := m.styles.Muted.Render(m.status)
	if m.err != "" {
		footer = m.styles.Error.Render(m.err)
	}
	sections = append(sections, footer)

	return strings.Join(sections, "\n")
}

func (m *model) inputView() string {
	if m.pending {
		return m.spinner.View() + " " + m.styles.Muted.Render("Searching Scripture and the Catechism…")
	}
	return m.input.View()
}

func (m *model) modalView() string {
	if m.subscribing {
		return m.spinner.View() + " " + m.modalStatus
	}
	return m.modalStatus
}
