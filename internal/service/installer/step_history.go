package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// HistoryStep picks how many answers to keep locally.
type HistoryStep struct {
	choices []int
	cursor  int
}

func NewHistoryStep() Step {
	return &HistoryStep{
		choices: []int{10, 25, 50},
		cursor:  0,
	}
}

func (s *HistoryStep) Init() tea.Cmd {
	return nil
}

func (s *HistoryStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			// 10 is the application default
			if s.cursor > 0 {
				state.Settings.HistoryLimit = s.choices[s.cursor]
			}
			return nil, nil
		}
	}
	return s, nil
}

func (s *HistoryStep) View(state *InstallState) string {
	labels := []string{"10 answers (default)", "25 answers", "50 answers"}
	return renderChoices("How much history should be kept?", labels, s.cursor)
}
