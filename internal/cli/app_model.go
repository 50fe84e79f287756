package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/alexanderramin/ost/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea Model for the TUI: a stack of views with
// the tree at the bottom, an output panel and the command bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	output    outputPanel
	quitting  bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{
		App:     app,
		Builder: app.Builder(),
	}
	return appModel{
		state:     state,
		viewStack: []View{newTreeView(state)},
		cmdBar:    newCommandBar(state),
		output:    newOutputPanel(),
	}
}

// activeView returns the top of the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// updateActive forwards msg to the top view and stores the result.
func (m *appModel) updateActive(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.viewStack[len(m.viewStack)-1] = updated.(View)
	return cmd
}

// pop removes the top view; the tree view at the bottom always stays.
func (m *appModel) pop() bool {
	if len(m.viewStack) <= 1 {
		return false
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
	return true
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		m.cmdBar.SetWidth(msg.Width)
		if m.output.active {
			m.output.resize(msg.Width, m.state.ContentHeight())
		}
		return m, m.updateActive(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.output.active {
			return m, m.output.update(msg)
		}

	case pushViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.pop()
		return m, nil

	case refreshViewMsg:
		// Every view re-reads the builder, including the tree under a form.
		cmds := make([]tea.Cmd, 0, len(m.viewStack))
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.output.show(msg.output, m.state.Width, m.state.ContentHeight())
		return m, nil

	case wizardCompleteMsg:
		m.pop()
		m.output.clear()
		m.cmdBar.Focus()
		return m, tea.Batch(msg.nextCmd, refreshViews())

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Remaining messages (cursor blinks, timers) go to whoever has focus.
	if m.cmdBar.Focused() {
		return m, m.cmdBar.UpdateNonKey(msg)
	}
	return m, m.updateActive(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.output.clear()
		}
		return m, m.cmdBar.Update(msg)
	}

	if m.output.active {
		if isOutputScrollKey(msg) {
			return m, m.output.update(msg)
		}
		m.output.clear()
	}

	// Forms get every key, including q, : and ?.
	if viewCapturesInput(m.activeView()) {
		return m, m.updateActive(msg)
	}

	switch {
	case msg.String() == ":":
		m.cmdBar.Focus()
		return m, nil
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "?":
		return m, outputCmd(formatter.FormatShellHelp())
	case msg.Type == tea.KeyEsc:
		m.pop()
		return m, nil
	}
	return m, m.updateActive(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	content := m.output.view(m.state.Height > 0)
	if content == "" {
		if v := m.activeView(); v != nil {
			content = v.View()
		}
	}

	result := strings.Join([]string{
		m.renderHeader(),
		content,
		m.renderStatusBar(),
		m.cmdBar.View(),
	}, "\n")

	// Fill the alt screen so shorter frames do not leave stale lines behind.
	if lines := strings.Count(result, "\n") + 1; lines < m.state.Height {
		result += strings.Repeat("\n", m.state.Height-lines)
	}
	return result
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

// renderHeader shows the breadcrumb of the view stack and a tree summary.
func (m *appModel) renderHeader() string {
	crumbs := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}

	header := formatter.StylePurple.Render("ost")
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("› "+strings.Join(crumbs, " › "))
	}

	if snap := m.state.Builder.Snapshot(); !snap.Empty() {
		info := fmt.Sprintf("%d nodes · %d/%d selected", snap.NodeCount, len(snap.Selected), tree.MaxSelectedSolutions)
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(info) + formatter.Dim("]")
	}
	return header + "\n" + m.rule()
}

// renderStatusBar lists the key hints of the active view, or the scroll
// controls while long output is shown.
func (m *appModel) renderStatusBar() string {
	var hints []string
	switch {
	case m.output.scrollable():
		hints = m.output.hints()
	case !m.output.active:
		if v := m.activeView(); v != nil {
			for _, b := range v.ShortHelp() {
				hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
			}
		}
	}

	if !m.cmdBar.Focused() && !m.output.active {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim(": command"))
	}
	return m.rule() + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput reports views with their own text input, which receive
// every key ahead of the global bindings.
func viewCapturesInput(v View) bool {
	return v != nil && v.ID() == ViewForm
}
