package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	state.Settings.EnableTelegram = state.Settings.TelegramToken != "" && state.Settings.TelegramOwnerID != 0
	if !state.Settings.EnableTelegram {
		state.Settings.TelegramToken = ""
		state.Settings.TelegramOwnerID = 0
	}

	if state.Settings.Debug == "" {
		state.Settings.Debug = "0"
	}

	// Signal completion
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
