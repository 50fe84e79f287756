package service

import (
	"context"

	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/tree"
)

// BuilderService is the operation surface the presentation layer drives.
// Each method corresponds to one control of the tree builder.
type BuilderService interface {
	// AddPrimary adds the desired outcome when the tree is empty and an
	// opportunity under it otherwise.
	AddPrimary(ctx context.Context, content string) (string, error)
	AddOutcome(ctx context.Context, content string) (string, error)
	AddOpportunity(ctx context.Context, content string) (string, error)
	// AddSolution attaches a solution to the target opportunity.
	AddSolution(ctx context.Context, content string) (string, error)
	// AddTest attaches an assumption test to the selected solution(s) and
	// returns the ids created. If any add fails, none of the tests are kept.
	AddTest(ctx context.Context, content string) ([]string, error)
	// AddChild attaches a node of the given kind directly under parentID.
	AddChild(ctx context.Context, parentID string, kind domain.NodeKind, content string) (string, error)

	ToggleTarget(ctx context.Context, id string) error
	ToggleSolution(ctx context.Context, id string) error
	// Delete removes the node and its subtree and reports how many nodes
	// were removed.
	Delete(ctx context.Context, id string) (int, error)

	// Find returns a copy of the node's subtree, or nil.
	Find(id string) *domain.TreeNode
	Snapshot() tree.Snapshot
	Controls() Controls
}
