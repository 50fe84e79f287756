package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// cmdBarPrompt is the plain prompt, used to size the input.
const cmdBarPrompt = "ost > "

// commandBar is the command-language input pinned under the TUI views.
// Typing completes command names and row references; up and down recall
// history.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	exec    scriptExecutor
	history *cmdHistory
	focused bool
}

func newCommandBar(state *SharedState) commandBar {
	return commandBar{
		input:   newCommandInput(),
		state:   state,
		exec:    scriptExecutor{builder: state.Builder},
		history: newCmdHistory(state.App.Config.HistoryFile),
	}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth fits the input to a terminal of width w.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len(cmdBarPrompt) - 1
}

// Update handles a key while the bar has focus.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if line == "" {
			return nil
		}
		c.history.add(line)
		return c.run(line)

	case tea.KeyUp:
		if line, ok := c.history.prev(); ok {
			c.setValue(line)
		}
		return nil

	case tea.KeyDown:
		c.setValue(c.history.next())
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.input.SetSuggestions(commandSuggestions(c.input.Value(), c.state.Builder.Snapshot()))
	return cmd
}

// UpdateNonKey forwards cursor blinks and similar messages to the input.
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("ost") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a command")
	}
	return prompt + c.input.View()
}

func (c *commandBar) setValue(s string) {
	c.input.SetValue(s)
	c.input.CursorEnd()
}

// run executes one command-language line. Mutations refresh every view;
// deleting a node with descendants asks for confirmation first.
func (c *commandBar) run(line string) tea.Cmd {
	cmd, ok, err := parseScriptLine(line, 1)
	switch {
	case err != nil:
		return outputCmd(shellError(err))
	case !ok, cmd.name == "clear":
		return nil
	}

	if (cmd.name == "delete" || cmd.name == "rm") && len(cmd.args) == 1 {
		n, err := resolveNodeRef(c.state.Builder.Snapshot(), cmd.args[0])
		if err != nil {
			return outputCmd(shellError(err))
		}
		if !n.IsLeaf() {
			return execConfirmDelete(c.state, n)
		}
	}

	out, quit, err := c.exec.exec(context.Background(), cmd)
	switch {
	case err != nil:
		return outputCmd(shellError(err))
	case quit:
		return func() tea.Msg { return quitMsg{} }
	case isMutating(cmd.name):
		return tea.Batch(refreshViews(), outputCmd(out))
	default:
		return outputCmd(out)
	}
}
