package cli

import (
	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// statusView shows the status panel for the current tree.
type statusView struct {
	state *SharedState
}

func newStatusView(state *SharedState) *statusView {
	return &statusView{state: state}
}

func (v *statusView) ID() ViewID    { return ViewStatus }
func (v *statusView) Title() string { return "Status" }
func (v *statusView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("i", "esc"), key.WithHelp("i", "close")),
	}
}

func (v *statusView) Init() tea.Cmd { return nil }

func (v *statusView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "i" {
		return v, popView()
	}
	return v, nil
}

func (v *statusView) View() string {
	return "\n" + formatter.FormatStatus(v.state.Builder.Snapshot(), v.state.Builder.Controls())
}
