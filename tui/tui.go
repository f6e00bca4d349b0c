package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Start launches the TUI and blocks until the user quits. Form state is
// discarded on exit.
func Start(app *App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
