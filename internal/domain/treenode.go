package domain

import "time"

// TreeNode is a single node of an opportunity solution tree. Content is set
// once at creation; Children keep insertion order.
type TreeNode struct {
	ID        string
	Kind      NodeKind
	Content   string
	Children  []*TreeNode
	CreatedAt time.Time
}

// IsLeaf reports whether the node has no children.
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// DisplayID returns a short identifier for display, the first 8 characters
// of the ID.
func (n *TreeNode) DisplayID() string {
	return DisplayID(n.ID)
}

// DisplayID truncates an id to at most 8 characters.
func DisplayID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *TreeNode) Clone() *TreeNode {
	if n == nil {
		return nil
	}
	c := &TreeNode{
		ID:        n.ID,
		Kind:      n.Kind,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Children) > 0 {
		c.Children = make([]*TreeNode, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *TreeNode) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Depth returns the number of levels in the subtree rooted at n.
func (n *TreeNode) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
