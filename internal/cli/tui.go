package cli

import tea "github.com/charmbracelet/bubbletea"

// runTUI runs the full-screen tree builder until the user quits.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
