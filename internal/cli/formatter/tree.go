package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one row of a rendered tree.
type TreeItem struct {
	Title  string
	Row    int // 1-based pre-order row number; 0 means don't display
	Level  int
	IsLast bool
	// Guides has one entry per ancestor level below the root; true draws a
	// vertical connector for an ancestor that still has siblings below.
	Guides []bool
	Marker string
	Detail string
	Active bool
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
	cursorMark = "▸ "
)

// connector returns the guide columns and branch glyph drawn before item.
func (item TreeItem) connector() string {
	if item.Level == 0 {
		return ""
	}
	var b strings.Builder
	for depth := 0; depth < item.Level-1; depth++ {
		if depth < len(item.Guides) && item.Guides[depth] {
			b.WriteString(treePipe)
		} else {
			b.WriteString(treeSpace)
		}
	}
	if item.IsLast {
		b.WriteString(treeCorner)
	} else {
		b.WriteString(treeBranch)
	}
	return b.String()
}

// label is the row number, title and marker of item.
func (item TreeItem) label() string {
	title := item.Title
	if item.Active {
		title = StyleBold.Render(title)
	}
	if item.Row > 0 {
		title = Dim(fmt.Sprintf("#%d ", item.Row)) + title
	}
	if item.Marker != "" {
		title += " " + item.Marker
	}
	return title
}

// RenderTree draws items as an indented tree with box-drawing connectors.
// Detail badges line up in a column after the widest row. A non-zero
// cursor adds a gutter with an arrow on that Row.
func RenderTree(items []TreeItem, cursor int) string {
	left := make([]string, len(items))
	width := 0
	for i, item := range items {
		line := Dim(item.connector()) + item.label()
		if cursor > 0 {
			if item.Row == cursor {
				line = StyleYellowBold.Render(cursorMark) + line
			} else {
				line = "  " + line
			}
		}
		left[i] = line
		width = max(width, lipgloss.Width(line))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(left[i])
		if item.Detail != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(left[i])))
			b.WriteString("  " + Dim("[ "+item.Detail+" ]"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// TreeItems flattens a snapshot into display rows in pre-order, numbering
// rows the same way Snapshot.Rows does.
func TreeItems(snap tree.Snapshot) []TreeItem {
	var items []TreeItem
	var visit func(n *domain.TreeNode, level int, last bool, guides []bool)
	visit = func(n *domain.TreeNode, level int, last bool, guides []bool) {
		item := TreeItem{
			Title:  KindBadge(n.Kind) + "  " + n.Content,
			Row:    len(items) + 1,
			Level:  level,
			IsLast: last,
			Guides: guides,
			Detail: n.DisplayID(),
		}
		switch {
		case n.ID == snap.Target:
			item.Marker = StyleYellowBold.Render("◎ target")
			item.Active = true
		case snap.SelectionIndex(n.ID) > 0:
			item.Marker = StylePurple.Render(fmt.Sprintf("★ %d", snap.SelectionIndex(n.ID)))
			item.Active = true
		}
		items = append(items, item)

		var childGuides []bool
		if level > 0 {
			childGuides = append(append([]bool(nil), guides...), !last)
		}
		for i, c := range n.Children {
			visit(c, level+1, i == len(n.Children)-1, childGuides)
		}
	}
	if snap.Root != nil {
		visit(snap.Root, 0, true, nil)
	}
	return items
}

// FormatTree renders the whole snapshot, or a hint when the tree is empty.
func FormatTree(snap tree.Snapshot) string {
	return FormatTreeCursor(snap, 0)
}

// FormatTreeCursor renders the snapshot with a cursor gutter pointing at
// row cursor.
func FormatTreeCursor(snap tree.Snapshot, cursor int) string {
	if snap.Empty() {
		return Dim("No desired outcome yet. Add one to start the tree.") + "\n"
	}
	return RenderTree(TreeItems(snap), cursor)
}
