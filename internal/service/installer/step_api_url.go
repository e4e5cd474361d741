package installer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultAPIURL = "https://graceguide.ai"

// APIURLStep asks for the answer service address. Empty keeps the default.
type APIURLStep struct {
	input textinput.Model
	err   error
}

func NewAPIURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = defaultAPIURL
	ti.Width = 50
	return &APIURLStep{input: ti}
}

func (s *APIURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimRight(strings.TrimSpace(s.input.Value()), "/")
		if val == "" || val == defaultAPIURL {
			return nil, nil
		}
		if err := validateURL(val); err != nil {
			s.err = err
			return s, cmd
		}
		state.Settings.BaseURL = val
		return nil, nil
	}
	return s, cmd
}

func (s *APIURLStep) View(state *InstallState) string {
	out := "GraceGuide service URL:\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		out += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return out + hintStyle.Render("(press enter to keep the default)") + "\n"
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
