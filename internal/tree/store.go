// Package tree holds the opportunity solution tree and the selection state
// that gates which mutations the builder offers.
//
// A Store is owned by a single actor. It performs no locking; callers that
// share one across goroutines must serialise access themselves.
package tree

import (
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/ost/internal/domain"
	"github.com/google/uuid"
)

// MaxSelectedSolutions caps how many solutions can be selected to explore.
const MaxSelectedSolutions = 3

// IDGenerator returns a fresh node id on every call.
type IDGenerator func() string

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStrictKinds makes AddNode reject children whose kind does not match
// the outcome → opportunity → solution → test edge table.
func WithStrictKinds() Option {
	return func(s *Store) {
		s.strict = true
	}
}

// Store owns the tree root, the target opportunity and the ordered set of
// selected solutions.
type Store struct {
	root     *domain.TreeNode
	target   string
	selected []string

	newID  IDGenerator
	now    func() time.Time
	strict bool
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		newID: func() string { return uuid.New().String() },
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strict reports whether parent kinds are validated on add.
func (s *Store) Strict() bool {
	return s.strict
}

// Root returns the live root, or nil when the tree is empty. The returned
// node is owned by the store and must not be modified.
func (s *Store) Root() *domain.TreeNode {
	return s.root
}

// TargetOpportunity returns the target opportunity id, or "" when none.
func (s *Store) TargetOpportunity() string {
	return s.target
}

// SelectedSolutions returns the selected solution ids in selection order.
func (s *Store) SelectedSolutions() []string {
	return slices.Clone(s.selected)
}

// IsSelected reports whether the solution id is currently selected.
func (s *Store) IsSelected(id string) bool {
	return slices.Contains(s.selected, id)
}

// SelectionFull reports whether no further solution can be selected.
func (s *Store) SelectionFull() bool {
	return len(s.selected) >= MaxSelectedSolutions
}

// Len returns the number of nodes in the tree.
func (s *Store) Len() int {
	return s.root.Count()
}

// AddNode creates a node and returns its id. An outcome becomes the root and
// parentID is ignored; every other kind is appended as the last child of
// parentID.
func (s *Store) AddNode(parentID string, kind domain.NodeKind, content string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	if kind == domain.NodeOutcome {
		if s.root != nil {
			return "", ErrOutcomeAlreadyExists
		}
		n, err := s.newNode(kind, content)
		if err != nil {
			return "", err
		}
		s.root = n
		return n.ID, nil
	}

	if s.root == nil {
		return "", ErrNoRoot
	}
	parent := s.FindNode(parentID)
	if parent == nil {
		return "", fmt.Errorf("%w: %q", ErrParentNotFound, parentID)
	}
	if s.strict && !domain.CanParent(parent.Kind, kind) {
		return "", fmt.Errorf("%w: %s cannot be added under %s", ErrInvalidParentKind, kind, parent.Kind)
	}

	n, err := s.newNode(kind, content)
	if err != nil {
		return "", err
	}
	parent.Children = append(parent.Children, n)
	return n.ID, nil
}

func (s *Store) newNode(kind domain.NodeKind, content string) (*domain.TreeNode, error) {
	id := s.newID()
	if id == "" || s.FindNode(id) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	return &domain.TreeNode{
		ID:        id,
		Kind:      kind,
		Content:   content,
		CreatedAt: s.now(),
	}, nil
}

// FindNode searches the tree depth-first, pre-order, and returns the first
// node with the given id, or nil.
func (s *Store) FindNode(id string) *domain.TreeNode {
	if s.root == nil {
		return nil
	}
	return findNode(s.root, id)
}

func findNode(n *domain.TreeNode, id string) *domain.TreeNode {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := findNode(c, id); found != nil {
			return found
		}
	}
	return nil
}

// ParentOf returns the parent of the node with the given id. It returns nil
// for the root and for unknown ids.
func (s *Store) ParentOf(id string) *domain.TreeNode {
	if s.root == nil {
		return nil
	}
	return parentOf(s.root, id)
}

func parentOf(n *domain.TreeNode, id string) *domain.TreeNode {
	for _, c := range n.Children {
		if c.ID == id {
			return n
		}
		if p := parentOf(c, id); p != nil {
			return p
		}
	}
	return nil
}

// Walk visits every node pre-order with its depth (root is 0). Returning
// false from fn stops the walk.
func (s *Store) Walk(fn func(n *domain.TreeNode, depth int) bool) {
	if s.root == nil {
		return
	}
	walk(s.root, 0, fn)
}

func walk(n *domain.TreeNode, depth int, fn func(*domain.TreeNode, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// DeleteNode removes the node and its entire subtree. Deleting the root
// clears the tree. The target and selected solutions are scrubbed of every
// id that left the tree.
func (s *Store) DeleteNode(id string) error {
	if s.root == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	var removed *domain.TreeNode
	if s.root.ID == id {
		removed = s.root
		s.root = nil
	} else {
		removed = removeFromChildren(s.root, id)
		if removed == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, id)
		}
	}

	gone := make(map[string]bool)
	walk(removed, 0, func(n *domain.TreeNode, _ int) bool {
		gone[n.ID] = true
		return true
	})
	if gone[s.target] {
		s.target = ""
	}
	s.selected = slices.DeleteFunc(s.selected, func(sel string) bool { return gone[sel] })
	return nil
}

// removeFromChildren splices the first node matching id out of n's subtree
// and returns it.
func removeFromChildren(n *domain.TreeNode, id string) *domain.TreeNode {
	for i, c := range n.Children {
		if c.ID == id {
			n.Children = slices.Delete(n.Children, i, i+1)
			return c
		}
	}
	for _, c := range n.Children {
		if removed := removeFromChildren(c, id); removed != nil {
			return removed
		}
	}
	return nil
}

// SetTargetOpportunity toggles the target: the current target clears it,
// any other opportunity replaces it.
func (s *Store) SetTargetOpportunity(id string) error {
	n := s.FindNode(id)
	if n == nil || n.Kind != domain.NodeOpportunity {
		return fmt.Errorf("%w: %q", ErrNotAnOpportunity, id)
	}
	if s.target == id {
		s.target = ""
		return nil
	}
	s.target = id
	return nil
}

// ToggleSolutionSelection deselects a selected solution or appends an
// unselected one. Selecting a fourth solution is a silent no-op.
func (s *Store) ToggleSolutionSelection(id string) error {
	n := s.FindNode(id)
	if n == nil || n.Kind != domain.NodeSolution {
		return fmt.Errorf("%w: %q", ErrNotASolution, id)
	}
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return nil
	}
	if s.SelectionFull() {
		return nil
	}
	s.selected = append(s.selected, id)
	return nil
}
