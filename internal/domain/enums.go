package domain

import "strings"

// NodeKind is the level a node occupies in the tree. The set of kinds is closed.
type NodeKind string

const (
	NodeOutcome     NodeKind = "outcome"
	NodeOpportunity NodeKind = "opportunity"
	NodeSolution    NodeKind = "solution"
	NodeTest        NodeKind = "test"
)

// ValidNodeKinds is the canonical set of accepted node kind strings.
var ValidNodeKinds = map[string]bool{
	"outcome": true, "opportunity": true, "solution": true, "test": true,
}

// parentKinds maps each kind to the only kind allowed directly above it.
// The outcome is the root and has no entry.
var parentKinds = map[NodeKind]NodeKind{
	NodeOpportunity: NodeOutcome,
	NodeSolution:    NodeOpportunity,
	NodeTest:        NodeSolution,
}

// ParseNodeKind accepts a kind name case-insensitively.
func ParseNodeKind(s string) (NodeKind, bool) {
	k := strings.ToLower(strings.TrimSpace(s))
	if !ValidNodeKinds[k] {
		return "", false
	}
	return NodeKind(k), true
}

// Valid reports whether k is one of the four tree kinds.
func (k NodeKind) Valid() bool {
	return ValidNodeKinds[string(k)]
}

// IsRoot reports whether nodes of this kind must be the tree root.
func (k NodeKind) IsRoot() bool {
	return k == NodeOutcome
}

// AllowedParent returns the kind a node of kind k must hang under.
// ok is false for the outcome and for unknown kinds.
func AllowedParent(k NodeKind) (parent NodeKind, ok bool) {
	parent, ok = parentKinds[k]
	return parent, ok
}

// CanParent reports whether a node of kind child may be attached to a node
// of kind parent.
func CanParent(parent, child NodeKind) bool {
	want, ok := parentKinds[child]
	return ok && want == parent
}

// ChildKind returns the kind that hangs directly under k, if any.
func ChildKind(k NodeKind) (NodeKind, bool) {
	for child, parent := range parentKinds {
		if parent == k {
			return child, true
		}
	}
	return "", false
}

// Label returns the display name with the first letter upper-cased,
// e.g. "Opportunity".
func (k NodeKind) Label() string {
	s := string(k)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
