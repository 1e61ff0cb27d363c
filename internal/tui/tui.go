package tui

import (
	"applock/internal/protect"
	"applock/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(ctrl *protect.Controller, s store.Store) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(ctrl, s)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
