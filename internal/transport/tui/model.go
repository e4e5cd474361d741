// Package tui is the interactive question panel.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/service/engagement"
	"github.com/graceguide/grace/internal/service/history"
	"github.com/graceguide/grace/internal/service/session"
	"github.com/graceguide/grace/internal/service/ui"
	"github.com/graceguide/grace/pkg/log"
)

// Session is the part of the session controller the panel drives.
type Session interface {
	Ask(ctx context.Context, req session.AskRequest) (session.AskResult, error)
	Subscribe(ctx context.Context, email string) error
	MaybeLater(ctx context.Context) error
	ClosePrompt(ctx context.Context)
	History(ctx context.Context) ([]core.HistoryEntry, error)
	HistoryLimit() int
	Mode() core.SourceMode
	CycleMode() core.SourceMode
	Theme(ctx context.Context) (core.Theme, error)
	ToggleTheme(ctx context.Context) (core.Theme, error)
	Today(ctx context.Context, date time.Time) (core.LiturgicalDay, error)
}

const (
	inputHeight   = 3
	chromeHeight  = inputHeight + 6
	minViewHeight = 5
	minViewWidth  = 30
)

type model struct {
	ctx     context.Context
	session Session
	router  core.CmdRouter
	styles  ui.Styles

	input    textarea.Model
	email    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	transcript []string
	day        core.LiturgicalDay

	pending     bool
	showHistory bool
	// entries mirrors stored history once loaded; answers are prepended
	// locally instead of re-reading the list.
	entries       []core.HistoryEntry
	historyLoaded bool

	modal       bool
	modalStatus string
	subscribing bool

	status string
	err    string

	width, height int
}

type answerMsg struct {
	res session.AskResult
	err error
}

type dayMsg struct {
	day core.LiturgicalDay
	err error
}

type historyMsg struct {
	entries []core.HistoryEntry
	err     error
}

type subscribeMsg struct {
	err error
}

type themeMsg struct {
	theme core.Theme
	err   error
}

func newModel(ctx context.Context, s Session, router core.CmdRouter, theme core.Theme) *model {
	input := textarea.New()
	input.Placeholder = "Ask about Scripture or the Catechism…"
	input.ShowLineNumbers = false
	input.CharLimit = 2000
	input.SetHeight(inputHeight)
	input.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return &model{
		ctx:      ctx,
		session:  s,
		router:   router,
		styles:   ui.NewStyles(theme),
		input:    input,
		email:    email,
		spinner:  spin,
		viewport: vp,
		status:   "ctrl+s ask · tab mode · ctrl+h history · ctrl+t theme · /help · ctrl+c quit",
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.fetchDay())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modal {
			return m.handleModalKey(msg)
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.pending && !m.subscribing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case answerMsg:
		return m.handleAnswer(msg)

	case dayMsg:
		if msg.err != nil {
			log.FromCtx(m.ctx).Debug().Err(msg.err).Msg("liturgical day unavailable")
			return m, nil
		}
		m.day = msg.day
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		m.historyLoaded = true
		return m, nil

	case subscribeMsg:
		m.subscribing = false
		switch {
		case errors.Is(msg.err, engagement.ErrEmptyEmail):
			m.modalStatus = m.styles.Error.Render("Please enter an email address.")
		case msg.err != nil:
			m.modalStatus = m.styles.Error.Render("Subscription failed. Please try again.")
		default:
			m.closeModal()
			m.status = m.styles.Success.Render("Thanks for subscribing!")
		}
		return m, nil

	case themeMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.styles = ui.NewStyles(msg.theme)
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	if m.modal {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+s", "alt+enter":
		return m, m.submit()
	case "tab":
		mode := m.session.CycleMode()
		m.status = "Mode: " + mode.Label()
		return m, nil
	case "ctrl+h":
		m.showHistory = !m.showHistory
		m.resize(m.width, m.height)
		if m.showHistory {
			return m, m.fetchHistory()
		}
		return m, nil
	case "ctrl+t":
		return m, m.toggleTheme()
	case "esc":
		if m.showHistory {
			m.showHistory = false
			m.resize(m.width, m.height)
			return m, nil
		}
		return m, tea.Quit
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *model) handleModalKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		if m.subscribing {
			return m, nil
		}
		email := strings.TrimSpace(m.email.Value())
		if email == "" {
			m.modalStatus = m.styles.Error.Render("Please enter an email address.")
			return m, nil
		}
		m.subscribing = true
		m.modalStatus = "Subscribing…"
		return m, tea.Batch(m.subscribe(email), m.spinner.Tick)
	case "ctrl+l":
		ctx := m.ctx
		if err := m.session.MaybeLater(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("maybe later failed")
		}
		m.closeModal()
		return m, nil
	case "esc":
		m.session.ClosePrompt(m.ctx)
		m.closeModal()
		return m, nil
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(key)
	return m, cmd
}

// submit handles the input: slash commands run locally, anything else is
// sent as a question. Empty input and input while a question is pending
// are ignored.
func (m *model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.pending {
		return nil
	}

	if out, ok := m.router.Execute(m.ctx, text); ok {
		m.input.Reset()
		m.appendTranscript(ui.Markdown(out, m.contentWidth(), m.styles.Theme))

		// commands such as /clear change stored history
		m.historyLoaded = false
		var cmds []tea.Cmd
		if m.showHistory {
			cmds = append(cmds, m.fetchHistory())
		}
		if strings.HasPrefix(text, "/theme") {
			cmds = append(cmds, m.loadTheme())
		}
		return tea.Batch(cmds...)
	}

	m.pending = true
	m.err = ""
	m.input.Blur()
	req := session.AskRequest{Question: text}
	ctx := m.ctx
	s := m.session
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := s.Ask(ctx, req)
		return answerMsg{res: res, err: err}
	})
}

func (m *model) handleAnswer(msg answerMsg) (tea.Model, tea.Cmd) {
	m.pending = false
	m.input.Focus()

	if msg.err != nil {
		if !errors.Is(msg.err, session.ErrBusy) {
			m.err = msg.err.Error()
		}
		return m, nil
	}

	m.input.Reset()
	m.appendTranscript(ui.Answer(m.styles, msg.res.Entry, m.contentWidth()))

	if m.historyLoaded {
		m.entries = history.Prepend(m.entries, msg.res.Entry, m.session.HistoryLimit())
	}

	if msg.res.ShowPrompt {
		return m, m.openModal()
	}
	return m, nil
}

func (m *model) openModal() tea.Cmd {
	m.modal = true
	m.modalStatus = ""
	m.email.Reset()
	m.input.Blur()
	return m.email.Focus()
}

func (m *model) closeModal() {
	m.modal = false
	m.subscribing = false
	m.modalStatus = ""
	m.email.Blur()
	m.input.Focus()
}

func (m *model) appendTranscript(block string) {
	m.transcript = append(m.transcript, block)
	m.refreshViewport()
	m.viewport.GotoBottom()
}

func (m *model) refreshViewport() {
	sep := "\n" + m.styles.Muted.Render(strings.Repeat("─", max(m.contentWidth(), 1))) + "\n"
	m.viewport.SetContent(strings.Join(m.transcript, sep))
}

func (m *model) contentWidth() int {
	return max(m.viewport.Width-2, minViewWidth)
}

func (m *model) resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	m.width, m.height = width, height
	m.input.SetWidth(max(width-4, minViewWidth))

	vw := width
	if m.showHistory {
		vw = width * 3 / 5
	}
	m.viewport.Width = max(vw, minViewWidth)
	m.viewport.Height = max(height-chromeHeight, minViewHeight)
	m.refreshViewport()
}

func (m *model) fetchDay() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		day, err := s.Today(ctx, time.Time{})
		return dayMsg{day: day, err: err}
	}
}

func (m *model) fetchHistory() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		entries, err := s.History(ctx)
		if err != nil {
			return historyMsg{err: fmt.Errorf("failed to load history: %w", err)}
		}
		return historyMsg{entries: entries}
	}
}

func (m *model) subscribe(email string) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		return subscribeMsg{err: s.Subscribe(ctx, email)}
	}
}

func (m *model) toggleTheme() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		theme, err := s.ToggleTheme(ctx)
		return themeMsg{theme: theme, err: err}
	}
}

func (m *model) loadTheme() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		theme, err := s.Theme(ctx)
		return themeMsg{theme: theme, err: err}
	}
}

// Run starts the panel on the alternate screen and blocks until it exits.
func Run(ctx context.Context, s Session, router core.CmdRouter) error {
	theme, err := s.Theme(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		newModel(ctx, s, router, theme),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
