package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/history"
	"github.com/muesli/reflow/wordwrap"
)

const minWidth = 20

// Markdown renders md for the terminal. Plain word wrapping is used when
// the markdown renderer cannot be built.
func Markdown(md string, width int, theme core.Theme) string {
	width = max(width, minWidth)

	style := "light"
	if theme == core.ThemeDark {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wordwrap.String(md, width)
	}
	out, err := r.Render(md)
	if err != nil {
		return wordwrap.String(md, width)
	}
	return strings.Trim(out, "\n")
}

// Answer renders one question with its answer and sources.
func Answer(st Styles, e core.HistoryEntry, width int) string {
	var sb strings.Builder
	sb.WriteString(st.Question.Render(wordwrap.String("Q: "+e.Question, width)))
	sb.WriteString("\n\n")
	sb.WriteString(Markdown(e.Answer, width, st.Theme))
	if src := Sources(st, e.Sources, width); src != "" {
		sb.WriteString("\n\n")
		sb.WriteString(src)
	}
	return sb.String()
}

// Sources renders the citation list, or "" when there are none.
func Sources(st Styles, sources []string, width int) string {
	if len(sources) == 0 {
		return ""
	}
	lines := []string{st.Muted.Bold(true).Render("Sources")}
	for _, s := range sources {
		lines = append(lines, st.Source.Render(wordwrap.String("• "+s, max(width-2, minWidth))))
	}
	return strings.Join(lines, "\n")
}

// History renders the numbered history list.
func History(st Styles, rows []history.Row, width int) string {
	if len(rows) == 0 {
		return st.Muted.Render("No questions yet.")
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		meta := st.Muted.Render(fmt.Sprintf("%s · %s", r.Mode, r.When))
		q := history.Truncate(r.Question, max(width-6, minWidth))
		lines = append(lines, fmt.Sprintf("%2d. %s  %s", r.Index, st.Body.Render(q), meta))
	}
	return strings.Join(lines, "\n")
}

// ModeSelector draws the Blend / Bible / CCC segmented control.
func ModeSelector(st Styles, current core.SourceMode) string {
	parts := make([]string, 0, 3)
	for _, m := range core.Modes() {
		if m == current {
			parts = append(parts, st.ModeActive.Render(m.Label()))
		} else {
			parts = append(parts, st.ModeInactive.Render(m.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// Banner is the header line with today's celebration, if known.
func Banner(st Styles, day core.LiturgicalDay) string {
	header := st.Header.Render(core.AppName)
	if title := day.Title(); title != "" {
		return header + "  " + st.Banner.Render(title)
	}
	return header
}

const (
	promptTitle = "Enjoying GraceGuide?"
	promptBody  = "Get a daily verse and reflection in your inbox."
)

// SubscribeHint is the one-line nudge for non-interactive output.
func SubscribeHint(st Styles) string {
	return st.Muted.Render(promptTitle + " " + promptBody + " Run: grace subscribe you@example.com")
}

// Prompt draws the subscribe modal around the email field view.
func Prompt(st Styles, input, status string, width int) string {
	inner := max(min(width-8, 60), minWidth)
	body := []string{
		st.Header.Render(promptTitle),
		"",
		wordwrap.String(promptBody, inner),
		"",
		input,
	}
	if status != "" {
		body = append(body, "", status)
	}
	body = append(body, "", st.Muted.Render("enter subscribe · ctrl+l maybe later · esc close"))
	return st.Modal.Width(inner).Render(strings.Join(body, "\n"))
}
