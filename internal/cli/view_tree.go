package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/service"
	"github.com/alexanderramin/ost/internal/tree"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// jumpTimeoutMsg clears the digit-jump buffer after a pause.
type jumpTimeoutMsg struct{ seq int }

// treeView is the home view: the rendered tree with a row cursor and the
// builder controls bound to keys.
type treeView struct {
	state   *SharedState
	snap    tree.Snapshot
	rows    []*domain.TreeNode
	cursor  int
	jumpBuf string // accumulated digit keys for jump-to-row
	jumpSeq int    // incremented per digit press; stale timeouts are ignored
}

func newTreeView(state *SharedState) *treeView {
	v := &treeView{state: state}
	v.reload()
	return v
}

func (v *treeView) ID() ViewID    { return ViewTree }
func (v *treeView) Title() string { return "Tree" }

func (v *treeView) ShortHelp() []key.Binding {
	ctrl := v.state.Builder.Controls()
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", strings.ToLower(ctrl.PrimaryLabel))),
	}
	if ctrl.CanAddSolution {
		bindings = append(bindings, key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "add solution")))
	}
	if ctrl.CanAddTest {
		bindings = append(bindings, key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add test")))
	}
	if n := v.current(); n != nil {
		switch n.Kind {
		case domain.NodeOpportunity:
			bindings = append(bindings, key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", strings.ToLower(ctrl.TargetLabel(n.ID)))))
		case domain.NodeSolution:
			if ctrl.CanToggleSolution(n.ID) {
				bindings = append(bindings, key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", strings.ToLower(ctrl.SelectLabel(n.ID)))))
			}
		}
		bindings = append(bindings, key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")))
	}
	bindings = append(bindings,
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "status")),
		key.NewBinding(key.WithKeys("1"), key.WithHelp("#", "jump to row")),
	)
	return bindings
}

func (v *treeView) Init() tea.Cmd {
	return nil
}

func (v *treeView) reload() {
	v.snap = v.state.Builder.Snapshot()
	v.rows = v.snap.Rows()
	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// current returns the node under the cursor, or nil for an empty tree.
func (v *treeView) current() *domain.TreeNode {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return nil
	}
	return v.rows[v.cursor]
}

func (v *treeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
		return v, nil

	case jumpTimeoutMsg:
		if msg.seq == v.jumpSeq {
			v.jumpBuf = ""
		}
		return v, nil

	case tea.KeyMsg:
		// Digit keys: accumulate and jump to the matching row number.
		if k := msg.String(); len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
			v.jumpBuf += k
			v.jumpSeq++
			if row, err := strconv.Atoi(v.jumpBuf); err == nil && row >= 1 && row <= len(v.rows) {
				v.cursor = row - 1
			}
			seq := v.jumpSeq
			return v, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return jumpTimeoutMsg{seq: seq}
			})
		}
		v.jumpBuf = ""

		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.rows)-1 {
				v.cursor++
			}
		case "home", "g":
			v.cursor = 0
		case "end", "G":
			if len(v.rows) > 0 {
				v.cursor = len(v.rows) - 1
			}
		case "o":
			return v, v.addPrimary()
		case "s":
			return v, v.addSolution()
		case "t":
			return v, v.addTest()
		case "enter", " ":
			return v, v.toggle()
		case "x":
			if n := v.current(); n != nil {
				return v, execConfirmDelete(v.state, n)
			}
		case "i":
			return v, pushView(newStatusView(v.state))
		}
	}
	return v, nil
}

func (v *treeView) addPrimary() tea.Cmd {
	b := v.state.Builder
	ctrl := b.Controls()
	desc := "The measurable result this tree works toward."
	if ctrl.PrimaryKind == domain.NodeOpportunity {
		desc = "A customer need, pain point or desire."
	}
	return execAddNode(v.state, ctrl.PrimaryKind, ctrl.PrimaryLabel, desc, single(b.AddPrimary))
}

func (v *treeView) addSolution() tea.Cmd {
	b := v.state.Builder
	ctrl := b.Controls()
	if !ctrl.CanAddSolution {
		return outputCmd(formatter.Dim(ctrl.SolutionHint()))
	}
	target := b.Find(ctrl.Target)
	desc := ""
	if target != nil {
		desc = "For: " + target.Content
	}
	return execAddNode(v.state, domain.NodeSolution, "Add Solution", desc, single(b.AddSolution))
}

func (v *treeView) addTest() tea.Cmd {
	b := v.state.Builder
	ctrl := b.Controls()
	if !ctrl.CanAddTest {
		return outputCmd(formatter.Dim(ctrl.TestHint()))
	}
	return execAddNode(v.state, domain.NodeTest, "Add Assumption Test", "Attached to the solution(s) you are exploring.", b.AddTest)
}

// toggle flips the target for an opportunity or the selection for a
// solution; other kinds have no toggle.
func (v *treeView) toggle() tea.Cmd {
	n := v.current()
	if n == nil {
		return nil
	}
	b := v.state.Builder
	var err error
	switch n.Kind {
	case domain.NodeOpportunity:
		err = b.ToggleTarget(context.Background(), n.ID)
	case domain.NodeSolution:
		if !b.Controls().CanToggleSolution(n.ID) {
			return outputCmd(formatter.StyleYellow.Render("Selection full. Unselect a solution first."))
		}
		err = b.ToggleSolution(context.Background(), n.ID)
	default:
		return nil
	}
	if err != nil {
		return outputCmd(shellError(err))
	}
	v.reload()
	return nil
}

func (v *treeView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.snap.Empty() {
		b.WriteString("  " + formatter.Dim("No desired outcome yet. Press o to add one.") + "\n")
		return b.String()
	}
	b.WriteString(formatter.FormatTreeCursor(v.snap, v.cursor+1))
	if v.jumpBuf != "" {
		b.WriteString("\n  " + formatter.Dim("jump: #"+v.jumpBuf) + "\n")
	}
	b.WriteString("\n" + controlsLine(v.state.Builder.Controls()))
	return b.String()
}

// controlsLine summarises the add controls with their disabled hints.
func controlsLine(ctrl service.Controls) string {
	parts := []string{formatter.StyleGreen.Render(ctrl.PrimaryLabel)}
	if hint := ctrl.SolutionHint(); hint != "" {
		parts = append(parts, formatter.Dim("Add Solution ("+hint+")"))
	} else {
		parts = append(parts, formatter.StyleGreen.Render("Add Solution"))
	}
	if hint := ctrl.TestHint(); hint != "" {
		parts = append(parts, formatter.Dim("Add Test ("+hint+")"))
	} else {
		parts = append(parts, formatter.StyleGreen.Render("Add Test"))
	}
	return "  " + strings.Join(parts, formatter.Dim("  ·  "))
}
