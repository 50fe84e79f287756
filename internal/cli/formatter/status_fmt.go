package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/service"
	"github.com/alexanderramin/ost/internal/tree"
)

// statusContentWidth caps node text in the status box.
const statusContentWidth = 48

// FormatStatus renders the selection state and which builder controls are
// currently available.
func FormatStatus(snap tree.Snapshot, ctrl service.Controls) string {
	var b strings.Builder

	nodes := make(map[string]*domain.TreeNode, snap.NodeCount)
	for _, n := range snap.Rows() {
		nodes[n.ID] = n
	}

	b.WriteString(fmt.Sprintf("%s %d\n", Dim("Nodes:   "), snap.NodeCount))

	target := Dim("none")
	if n, ok := nodes[snap.Target]; ok {
		target = Bold(Truncate(n.Content, statusContentWidth)) + " " + TruncID(n.ID)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Target:  "), target))

	b.WriteString(fmt.Sprintf("%s %d/%d\n", Dim("Selected:"), len(snap.Selected), tree.MaxSelectedSolutions))
	for i, id := range snap.Selected {
		content := id
		if n, ok := nodes[id]; ok {
			content = n.Content
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			StylePurple.Render(fmt.Sprintf("★ %d", i+1)), Truncate(content, statusContentWidth), TruncID(id)))
	}
	b.WriteString("\n")

	rows := [][]string{
		{ctrl.PrimaryLabel, StyleGreen.Render("ready")},
		{"Add Solution", controlState(ctrl.SolutionHint())},
		{"Add Test", controlState(ctrl.TestHint())},
	}
	b.WriteString(RenderTable([]string{"CONTROL", "STATE"}, rows))

	return RenderBox("Status", strings.TrimRight(b.String(), "\n"))
}

func controlState(hint string) string {
	if hint == "" {
		return StyleGreen.Render("ready")
	}
	return Dim(hint)
}
