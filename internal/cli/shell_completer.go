package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/tree"
)

// allCommandNames returns the full list of command names for autocomplete.
func allCommandNames() []string {
	return []string{
		"outcome", "opportunity", "solution", "test", "add",
		"target", "select", "delete",
		"tree", "status", "export",
		"clear", "help", "exit", "quit",
	}
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}

// commandSuggestions returns whole-line completions for the text typed so
// far. Node arguments complete to row references of nodes the command
// accepts.
func commandSuggestions(text string, snap tree.Snapshot) []string {
	if text == "" {
		return nil
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) == 1 && !trailingSpace {
		return filterSuggestions(allCommandNames(), parts[0])
	}
	if len(parts) > 2 || (len(parts) == 2 && trailingSpace) {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	prefix := ""
	if len(parts) == 2 {
		prefix = parts[1]
	}

	var pool []string
	switch cmd {
	case "add":
		for _, k := range []domain.NodeKind{domain.NodeOutcome, domain.NodeOpportunity, domain.NodeSolution, domain.NodeTest} {
			pool = append(pool, string(k))
		}
	case "export":
		pool = []string{"json", "yaml"}
	case "target":
		pool = rowRefs(snap, domain.NodeOpportunity)
	case "select":
		pool = rowRefs(snap, domain.NodeSolution)
	case "delete", "rm":
		pool = rowRefs(snap, "")
	default:
		return nil
	}

	matches := filterSuggestions(pool, prefix)
	out := make([]string, len(matches))
	for i, s := range matches {
		out[i] = parts[0] + " " + s
	}
	return out
}

// rowRefs lists "#n" references for rows of the given kind, or all rows
// when kind is empty.
func rowRefs(snap tree.Snapshot, kind domain.NodeKind) []string {
	var refs []string
	for i, n := range snap.Rows() {
		if kind == "" || n.Kind == kind {
			refs = append(refs, fmt.Sprintf("#%d", i+1))
		}
	}
	return refs
}
