package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Line-oriented shell over the command language",
		Long: `Start an inline shell. Each line is one command (see 'help');
output is printed above the prompt and the tree stays in memory until
you quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := tea.NewProgram(newShellModel(app)).Run()
			return err
		},
	}
}

// newCommandInput is the text input behind both the shell prompt and the
// TUI command bar. ctrl+n and ctrl+p cycle completions.
func newCommandInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.ShowSuggestions = true
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))
	return ti
}

// shellModel prints each command's output above a single prompt line.
// Deleting a node that has descendants parks the command in pending and
// asks y/n before running it.
type shellModel struct {
	input    textinput.Model
	exec     scriptExecutor
	history  *cmdHistory
	pending  *scriptCommand
	quitting bool
}

func newShellModel(app *App) shellModel {
	ti := newCommandInput()
	ti.Focus()
	return shellModel{
		input:   ti,
		exec:    scriptExecutor{builder: app.Builder()},
		history: newCmdHistory(app.Config.HistoryFile),
	}
}

func (m shellModel) confirming() bool { return m.pending != nil }

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.Println(formatter.FormatShellWelcome()))
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - len(cmdBarPrompt) - 1
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			cmd = tea.Quit
		case m.confirming():
			cmd = m.answer(msg)
		default:
			cmd = m.prompt(msg)
		}
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	label := formatter.StylePurple.Render("ost")
	if m.confirming() {
		label = formatter.StyleYellow.Render("confirm (y/n)")
	}
	return label + " " + formatter.Dim("❯") + " " + m.input.View()
}

// takeLine empties the input and returns what was in it.
func (m *shellModel) takeLine() string {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.input.SetSuggestions(nil)
	return line
}

func (m *shellModel) recall(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}

func (m *shellModel) prompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := m.takeLine()
		if line == "" {
			return nil
		}
		m.history.add(line)
		out, next := m.runLine(line)
		if out == "" {
			return next
		}
		return tea.Batch(tea.Println(out), next)
	case tea.KeyUp:
		if line, ok := m.history.prev(); ok {
			m.recall(line)
		}
		return nil
	case tea.KeyDown:
		m.recall(m.history.next())
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.input.SetSuggestions(commandSuggestions(m.input.Value(), m.exec.builder.Snapshot()))
	return cmd
}

// answer handles keys while a delete waits for y/n. Anything but y or yes
// cancels.
func (m *shellModel) answer(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEnter && msg.Type != tea.KeyEsc {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	reply := strings.ToLower(m.takeLine())
	pending := *m.pending
	m.pending = nil
	if msg.Type == tea.KeyEsc || (reply != "y" && reply != "yes") {
		return tea.Println(formatter.Dim("Cancelled."))
	}
	return tea.Println(m.output(pending))
}

// output runs cmd and renders its result or error.
func (m *shellModel) output(cmd scriptCommand) string {
	out, _, err := m.exec.exec(context.Background(), cmd)
	if err != nil {
		return shellError(err)
	}
	return out
}

// runLine executes one command line, returning text to print and an
// optional follow-up command.
func (m *shellModel) runLine(line string) (string, tea.Cmd) {
	cmd, ok, err := parseScriptLine(line, 1)
	switch {
	case err != nil:
		return shellError(err), nil
	case !ok:
		return "", nil
	}

	switch cmd.name {
	case "clear":
		return "\033[H\033[2J", nil
	case "shell":
		return formatter.StyleYellow.Render("Already in shell mode."), nil
	case "delete", "rm":
		return m.delete(cmd), nil
	}

	out, quit, err := m.exec.exec(context.Background(), cmd)
	switch {
	case err != nil:
		return shellError(err), nil
	case quit:
		m.quitting = true
		return "", tea.Quit
	}
	return out, nil
}

// delete removes leaves straight away and asks first for anything with
// descendants.
func (m *shellModel) delete(cmd scriptCommand) string {
	if len(cmd.args) != 1 {
		return m.output(cmd)
	}
	n, err := resolveNodeRef(m.exec.builder.Snapshot(), cmd.args[0])
	if err != nil {
		return shellError(err)
	}
	if n.IsLeaf() {
		return m.output(cmd)
	}
	m.pending = &cmd
	return formatter.StyleYellow.Render(fmt.Sprintf(
		"Delete %q and its %d descendant(s)?", n.Content, n.Count()-1))
}
