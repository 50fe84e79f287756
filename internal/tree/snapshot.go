package tree

import "github.com/alexanderramin/ost/internal/domain"

// Snapshot is a detached copy of the store state, safe to hold across
// later mutations.
type Snapshot struct {
	Root      *domain.TreeNode
	Target    string
	Selected  []string
	NodeCount int
}

// Snapshot copies the current tree and selection state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Root:      s.root.Clone(),
		Target:    s.target,
		Selected:  s.SelectedSolutions(),
		NodeCount: s.Len(),
	}
}

// Empty reports whether the snapshot has no tree.
func (s Snapshot) Empty() bool {
	return s.Root == nil
}

// SelectionIndex returns the 1-based selection position of id, or 0.
func (s Snapshot) SelectionIndex(id string) int {
	for i, sel := range s.Selected {
		if sel == id {
			return i + 1
		}
	}
	return 0
}

// Rows lists the snapshot's nodes in pre-order, the order in which they are
// rendered and numbered.
func (s Snapshot) Rows() []*domain.TreeNode {
	var rows []*domain.TreeNode
	var visit func(n *domain.TreeNode)
	visit = func(n *domain.TreeNode) {
		if n == nil {
			return
		}
		rows = append(rows, n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(s.Root)
	return rows
}
