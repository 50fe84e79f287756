package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/alexanderramin/ost/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// addFunc creates nodes from content and returns their ids.
type addFunc func(ctx context.Context, content string) ([]string, error)

// execAddNode pushes a text form and runs add with the entered content.
func execAddNode(state *SharedState, kind domain.NodeKind, title, description string, add addFunc) tea.Cmd {
	var content string
	form := contentForm(kind, title, description, &content)
	return pushView(newWizardView(state, title, form, addNodeDone(state, add, &content)))
}

// addNodeDone returns the completion callback for an add form. It runs on
// the event loop when the form completes, so the builder is mutated before
// any later message is handled; only the output travels as a command.
func addNodeDone(state *SharedState, add addFunc, content *string) func() tea.Cmd {
	return func() tea.Cmd {
		ids, err := add(context.Background(), *content)
		if err != nil {
			return outputCmd(shellError(err))
		}
		return outputCmd(addedMessage(state.Builder, ids))
	}
}

// execConfirmDelete pushes a confirmation form and deletes n with its
// subtree if confirmed.
func execConfirmDelete(state *SharedState, n *domain.TreeNode) tea.Cmd {
	var confirmed bool
	prompt := fmt.Sprintf("Delete %s %q?", n.Kind, n.Content)
	if d := n.Count() - 1; d > 0 {
		prompt = fmt.Sprintf("Delete %s %q and %d descendant(s)?", n.Kind, n.Content, d)
	}
	form := confirmForm(prompt, &confirmed)
	return pushView(newWizardView(state, "Confirm Delete", form, deleteDone(state, n, &confirmed)))
}

// deleteDone returns the completion callback for a delete confirmation.
// Like addNodeDone it mutates synchronously.
func deleteDone(state *SharedState, n *domain.TreeNode, confirmed *bool) func() tea.Cmd {
	id, content := n.ID, n.Content
	return func() tea.Cmd {
		if !*confirmed {
			return outputCmd(formatter.Dim("Cancelled."))
		}
		removed, err := state.Builder.Delete(context.Background(), id)
		if err != nil {
			return outputCmd(shellError(err))
		}
		return outputCmd(fmt.Sprintf("%s Deleted: %s %s",
			formatter.StyleGreen.Render("✔"),
			formatter.Bold(content),
			formatter.Dim(fmt.Sprintf("(%d node(s))", removed))))
	}
}

// single adapts a single-id add to addFunc.
func single(fn func(ctx context.Context, content string) (string, error)) addFunc {
	return func(ctx context.Context, content string) ([]string, error) {
		id, err := fn(ctx, content)
		if err != nil {
			return nil, err
		}
		return []string{id}, nil
	}
}
