package cli

import tea "github.com/charmbracelet/bubbletea"

// Messages views send to appModel to change the stack or the output panel.
type (
	pushViewMsg    struct{ view View }
	popViewMsg     struct{}
	refreshViewMsg struct{} // re-read the builder after a mutation
	cmdOutputMsg   struct{ output string }
	quitMsg        struct{}

	// wizardCompleteMsg closes a form: the form is popped, then nextCmd runs.
	wizardCompleteMsg struct{ nextCmd tea.Cmd }
)

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func pushView(v View) tea.Cmd { return send(pushViewMsg{view: v}) }
func popView() tea.Cmd        { return send(popViewMsg{}) }
func refreshViews() tea.Cmd   { return send(refreshViewMsg{}) }

// outputCmd shows s in the output panel; empty output sends nothing.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return send(cmdOutputMsg{output: s})
}
