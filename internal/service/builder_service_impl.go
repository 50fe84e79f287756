package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ost/internal/config"
	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/tree"
)

type builderService struct {
	store      *tree.Store
	testTarget config.TestTarget
	observer   UseCaseObserver
}

// NewBuilderService wraps store. testTarget decides whether AddTest uses the
// latest selected solution or all of them; an invalid value means latest.
func NewBuilderService(store *tree.Store, testTarget config.TestTarget, observers ...UseCaseObserver) BuilderService {
	if !testTarget.Valid() {
		testTarget = config.TestTargetLatest
	}
	return &builderService{
		store:      store,
		testTarget: testTarget,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// track starts a use-case measurement; call the returned func with the
// final error.
func (s *builderService) track(ctx context.Context, name string, fields map[string]any) func(error) {
	startedAt := time.Now().UTC()
	return func(err error) {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}
}

func cleanContent(content string) (string, error) {
	c := strings.TrimSpace(content)
	if c == "" {
		return "", ErrEmptyContent
	}
	return c, nil
}

func (s *builderService) AddPrimary(ctx context.Context, content string) (string, error) {
	if s.store.Root() == nil {
		return s.AddOutcome(ctx, content)
	}
	return s.AddOpportunity(ctx, content)
}

func (s *builderService) AddOutcome(ctx context.Context, content string) (id string, err error) {
	fields := map[string]any{"kind": string(domain.NodeOutcome)}
	done := s.track(ctx, "add-outcome", fields)
	defer func() { done(err) }()

	if content, err = cleanContent(content); err != nil {
		return "", err
	}
	id, err = s.store.AddNode("", domain.NodeOutcome, content)
	fields["id"] = id
	return id, err
}

func (s *builderService) AddOpportunity(ctx context.Context, content string) (id string, err error) {
	fields := map[string]any{"kind": string(domain.NodeOpportunity)}
	done := s.track(ctx, "add-opportunity", fields)
	defer func() { done(err) }()

	if content, err = cleanContent(content); err != nil {
		return "", err
	}
	root := s.store.Root()
	if root == nil {
		return "", tree.ErrNoRoot
	}
	id, err = s.store.AddNode(root.ID, domain.NodeOpportunity, content)
	fields["id"] = id
	return id, err
}

func (s *builderService) AddSolution(ctx context.Context, content string) (id string, err error) {
	target := s.store.TargetOpportunity()
	fields := map[string]any{"kind": string(domain.NodeSolution), "parent": target}
	done := s.track(ctx, "add-solution", fields)
	defer func() { done(err) }()

	if content, err = cleanContent(content); err != nil {
		return "", err
	}
	if target == "" {
		return "", ErrNoTarget
	}
	id, err = s.store.AddNode(target, domain.NodeSolution, content)
	fields["id"] = id
	return id, err
}

func (s *builderService) AddTest(ctx context.Context, content string) (ids []string, err error) {
	selected := s.store.SelectedSolutions()
	fields := map[string]any{
		"kind":     string(domain.NodeTest),
		"mode":     string(s.testTarget),
		"selected": len(selected),
	}
	done := s.track(ctx, "add-test", fields)
	defer func() { done(err) }()

	if content, err = cleanContent(content); err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}

	parents := selected[len(selected)-1:]
	if s.testTarget == config.TestTargetAll {
		parents = selected
	}
	for _, parent := range parents {
		id, addErr := s.store.AddNode(parent, domain.NodeTest, content)
		if addErr != nil {
			// All or nothing. Tests are never targeted or selected, so
			// removing them leaves the rest of the state untouched.
			for _, added := range ids {
				_ = s.store.DeleteNode(added)
			}
			err = fmt.Errorf("adding test under %s: %w", domain.DisplayID(parent), addErr)
			return nil, err
		}
		ids = append(ids, id)
	}
	fields["created"] = len(ids)
	return ids, nil
}

func (s *builderService) AddChild(ctx context.Context, parentID string, kind domain.NodeKind, content string) (id string, err error) {
	fields := map[string]any{"kind": string(kind), "parent": parentID}
	done := s.track(ctx, "add-child", fields)
	defer func() { done(err) }()

	if content, err = cleanContent(content); err != nil {
		return "", err
	}
	id, err = s.store.AddNode(parentID, kind, content)
	fields["id"] = id
	return id, err
}

func (s *builderService) ToggleTarget(ctx context.Context, id string) (err error) {
	fields := map[string]any{"id": id}
	done := s.track(ctx, "toggle-target", fields)
	defer func() { done(err) }()

	err = s.store.SetTargetOpportunity(id)
	fields["target"] = s.store.TargetOpportunity()
	return err
}

func (s *builderService) ToggleSolution(ctx context.Context, id string) (err error) {
	fields := map[string]any{"id": id}
	done := s.track(ctx, "toggle-solution", fields)
	defer func() { done(err) }()

	err = s.store.ToggleSolutionSelection(id)
	fields["selected"] = len(s.store.SelectedSolutions())
	return err
}

func (s *builderService) Delete(ctx context.Context, id string) (removed int, err error) {
	fields := map[string]any{"id": id}
	done := s.track(ctx, "delete-node", fields)
	defer func() { done(err) }()

	if n := s.store.FindNode(id); n != nil {
		removed = n.Count()
		fields["kind"] = string(n.Kind)
	}
	if err = s.store.DeleteNode(id); err != nil {
		return 0, err
	}
	fields["removed"] = removed
	return removed, nil
}

func (s *builderService) Find(id string) *domain.TreeNode {
	return s.store.FindNode(id).Clone()
}

func (s *builderService) Snapshot() tree.Snapshot {
	return s.store.Snapshot()
}

func (s *builderService) Controls() Controls {
	c := Controls{
		PrimaryKind:    domain.NodeOutcome,
		PrimaryLabel:   "Add Desired Outcome",
		CanAddSolution: s.store.TargetOpportunity() != "",
		CanAddTest:     len(s.store.SelectedSolutions()) > 0,
		SelectionFull:  s.store.SelectionFull(),
		Selected:       s.store.SelectedSolutions(),
		Target:         s.store.TargetOpportunity(),
	}
	if s.store.Root() != nil {
		c.PrimaryKind = domain.NodeOpportunity
		c.PrimaryLabel = "Add Opportunity"
	}
	return c
}
