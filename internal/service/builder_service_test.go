package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexanderramin/ost/internal/config"
	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/testutil"
	"github.com/alexanderramin/ost/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	return r.events[len(r.events)-1]
}

func newTestBuilder(t *testing.T, mode config.TestTarget) (BuilderService, *tree.Store, *recordingObserver) {
	t.Helper()
	store := tree.NewStore(
		tree.WithStrictKinds(),
		tree.WithIDGenerator(testutil.SeqIDs("b")),
	)
	obs := &recordingObserver{}
	return NewBuilderService(store, mode, obs), store, obs
}

func TestBuilder_AddPrimary_OutcomeThenOpportunity(t *testing.T) {
	svc, store, _ := newTestBuilder(t, config.TestTargetLatest)
	ctx := context.Background()

	assert.Equal(t, "Add Desired Outcome", svc.Controls().PrimaryLabel)

	outcome, err := svc.AddPrimary(ctx, "  Grow retention  ")
	require.NoError(t, err)
	assert.Equal(t, outcome, store.Root().ID)
	assert.Equal(t, "Grow retention", store.Root().Content, "content is trimmed")

	ctrl := svc.Controls()
	assert.Equal(t, "Add Opportunity", ctrl.PrimaryLabel)
	assert.Equal(t, domain.NodeOpportunity, ctrl.PrimaryKind)

	opp, err := svc.AddPrimary(ctx, "Users forget to return")
	require.NoError(t, err)
	require.Len(t, store.Root().Children, 1)
	assert.Equal(t, opp, store.Root().Children[0].ID)
	assert.Equal(t, domain.NodeOpportunity, store.Root().Children[0].Kind)
}

func TestBuilder_RejectsBlankContent(t *testing.T) {
	svc, store, obs := newTestBuilder(t, config.TestTargetLatest)
	ctx := context.Background()

	_, err := svc.AddPrimary(ctx, "   ")
	require.ErrorIs(t, err, ErrEmptyContent)
	assert.Nil(t, store.Root())

	ev := obs.last()
	assert.Equal(t, "add-outcome", ev.Name)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, ErrEmptyContent)
}

func TestBuilder_AddOpportunity_NeedsOutcome(t *testing.T) {
	svc, _, _ := newTestBuilder(t, config.TestTargetLatest)
	_, err := svc.AddOpportunity(context.Background(), "x")
	assert.ErrorIs(t, err, tree.ErrNoRoot)
}

func TestBuilder_AddSolution_GatedOnTarget(t *testing.T) {
	svc, store, _ := newTestBuilder(t, config.TestTargetLatest)
	ctx := context.Background()
	_, err := svc.AddOutcome(ctx, "root")
	require.NoError(t, err)
	opp, err := svc.AddOpportunity(ctx, "opp")
	require.NoError(t, err)

	ctrl := svc.Controls()
	assert.False(t, ctrl.CanAddSolution)
	assert.Equal(t, HintNeedTarget, ctrl.SolutionHint())

	_, err = svc.AddSolution(ctx, "sol")
	require.ErrorIs(t, err, ErrNoTarget)

	require.NoError(t, svc.ToggleTarget(ctx, opp))
	ctrl = svc.Controls()
	assert.True(t, ctrl.CanAddSolution)
	assert.Empty(t, ctrl.SolutionHint())
	assert.Equal(t, "Unselect", ctrl.TargetLabel(opp))

	sol, err := svc.AddSolution(ctx, "sol")
	require.NoError(t, err)
	assert.Equal(t, opp, store.ParentOf(sol).ID)
}

func TestBuilder_AddTest_LatestSelection(t *testing.T) {
	svc, store, obs := newTestBuilder(t, config.TestTargetLatest)
	ctx := context.Background()
	_, sols := seedSolutions(t, svc, 2)

	_, err := svc.AddTest(ctx, "test")
	require.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, HintNeedSelection, svc.Controls().TestHint())

	require.NoError(t, svc.ToggleSolution(ctx, sols[1]))
	require.NoError(t, svc.ToggleSolution(ctx, sols[0]))

	ids, err := svc.AddTest(ctx, "A/B test opt-in rate")
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, sols[0], store.ParentOf(ids[0]).ID, "latest selection wins")
	assert.Empty(t, store.FindNode(sols[1]).Children)

	ev := obs.last()
	assert.Equal(t, "add-test", ev.Name)
	assert.Equal(t, 1, ev.Fields["created"])
	assert.Equal(t, "latest", ev.Fields["mode"])
}

func TestBuilder_AddTest_AllSelections(t *testing.T) {
	svc, store, _ := newTestBuilder(t, config.TestTargetAll)
	ctx := context.Background()
	_, sols := seedSolutions(t, svc, 3)
	for _, id := range sols {
		require.NoError(t, svc.ToggleSolution(ctx, id))
	}

	ids, err := svc.AddTest(ctx, "Survey")
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for i, id := range ids {
		n := store.FindNode(id)
		require.NotNil(t, n)
		assert.Equal(t, domain.NodeTest, n.Kind)
		assert.Equal(t, "Survey", n.Content)
		assert.Equal(t, sols[i], store.ParentOf(id).ID)
	}
}

func TestBuilder_AddTest_AllModeKeepsNothingOnFailure(t *testing.T) {
	seq := testutil.SeqIDs("b")
	collide := false
	store := tree.NewStore(
		tree.WithStrictKinds(),
		tree.WithIDGenerator(func() string {
			if collide {
				return "t-dup"
			}
			return seq()
		}),
	)
	svc := NewBuilderService(store, config.TestTargetAll)
	ctx := context.Background()
	opp, sols := seedSolutions(t, svc, 2)
	for _, id := range sols {
		require.NoError(t, svc.ToggleSolution(ctx, id))
	}
	before := svc.Snapshot().NodeCount

	// The second test collides with the first.
	collide = true
	ids, err := svc.AddTest(ctx, "Survey")

	require.ErrorIs(t, err, tree.ErrDuplicateID)
	assert.Nil(t, ids)
	assert.Equal(t, before, svc.Snapshot().NodeCount)
	for _, id := range sols {
		assert.Empty(t, store.FindNode(id).Children)
	}
	assert.Equal(t, opp, store.TargetOpportunity())
	assert.Equal(t, sols, store.SelectedSolutions())
}

func TestBuilder_InvalidModeFallsBackToLatest(t *testing.T) {
	store := tree.NewStore()
	svc := NewBuilderService(store, config.TestTarget("bogus"))
	_, sols := seedSolutions(t, svc, 2)
	ctx := context.Background()
	require.NoError(t, svc.ToggleSolution(ctx, sols[0]))
	require.NoError(t, svc.ToggleSolution(ctx, sols[1]))

	ids, err := svc.AddTest(ctx, "t")
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestBuilder_Controls_SelectionCapacity(t *testing.T) {
	svc, _, _ := newTestBuilder(t, config.TestTargetLatest)
	ctx := context.Background()
	_, sols := seedSolutions(t, svc, 4)

	for _, id := range sols[:3] {
		require.NoError(t, svc.ToggleSolution(ctx, id))
	}
	ctrl := svc.Controls()
	assert.True(t, ctrl.SelectionFull)
	assert.True(t, ctrl.CanToggleSolution(sols[0]), "selected solutions stay toggleable")
	assert.False(t, ctrl.CanToggleSolution(sols[3]))
	assert.Equal(t, "Unselect", ctrl.SelectLabel(sols[0]))
	assert.Equal(t, "Select to Explore", ctrl.SelectLabel(sols[3]))

	require.NoError(t, svc.ToggleSolution(ctx, sols[3]), "overflow is a no-op")
	assert.Equal(t, sols[:3], svc.Snapshot().Selected)
}

func TestBuilder_Delete_ReportsRemovedCount(t *testing.T) {
	svc, store, obs := newTestBuilder(t, config.TestTargetLatest)
	ctx := context.Background()
	opp, sols := seedSolutions(t, svc, 2)
	require.NoError(t, svc.ToggleSolution(ctx, sols[0]))
	_, err := svc.AddTest(ctx, "t")
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, opp)
	require.NoError(t, err)
	assert.Equal(t, 4, removed, "opportunity, two solutions and one test")
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, svc.Controls().Selected)
	assert.Empty(t, svc.Controls().Target)

	ev := obs.last()
	assert.Equal(t, "delete-node", ev.Name)
	assert.Equal(t, "opportunity", ev.Fields["kind"])

	_, err = svc.Delete(ctx, opp)
	assert.ErrorIs(t, err, tree.ErrNotFound)
}

func TestBuilder_AddChild_StrictPairing(t *testing.T) {
	svc, _, _ := newTestBuilder(t, config.TestTargetLatest)
	ctx := context.Background()
	root, err := svc.AddOutcome(ctx, "root")
	require.NoError(t, err)

	_, err = svc.AddChild(ctx, root, domain.NodeTest, "x")
	assert.ErrorIs(t, err, tree.ErrInvalidParentKind)

	id, err := svc.AddChild(ctx, root, domain.NodeOpportunity, "o")
	require.NoError(t, err)
	assert.Equal(t, "o", svc.Find(id).Content)
}

func TestLogUseCaseObserver_WritesRecords(t *testing.T) {
	var buf bytes.Buffer
	store := tree.NewStore()
	svc := NewBuilderService(store, config.TestTargetLatest, NewLogUseCaseObserver(&buf))
	ctx := context.Background()

	_, err := svc.AddOutcome(ctx, "Grow retention")
	require.NoError(t, err)
	_, err = svc.AddOutcome(ctx, "Again")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "use_case=add-outcome")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "outcome already exists")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

// seedSolutions builds root → opportunity (target) → n solutions.
func seedSolutions(t *testing.T, svc BuilderService, n int) (string, []string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.AddOutcome(ctx, "root")
	require.NoError(t, err)
	opp, err := svc.AddOpportunity(ctx, "opp")
	require.NoError(t, err)
	require.NoError(t, svc.ToggleTarget(ctx, opp))
	sols := make([]string, n)
	for i := range sols {
		sols[i], err = svc.AddSolution(ctx, "sol")
		require.NoError(t, err)
	}
	return opp, sols
}

func TestBuilderService_NotifiesEveryObserver(t *testing.T) {
	first, second := &recordingObserver{}, &recordingObserver{}
	svc := NewBuilderService(tree.NewStore(), config.TestTargetLatest, first, nil, second)

	_, err := svc.AddOutcome(context.Background(), "Grow retention")
	require.NoError(t, err)

	assert.Equal(t, "add-outcome", first.last().Name)
	assert.Equal(t, "add-outcome", second.last().Name)
	assert.True(t, second.last().Success)
}

func TestBuilder_FindReturnsDetachedCopy(t *testing.T) {
	svc, _, _ := newTestBuilder(t, config.TestTargetLatest)
	opp, sols := seedSolutions(t, svc, 1)

	found := svc.Find(opp)
	require.NotNil(t, found)
	found.Content = "edited"
	found.Children = append(found.Children, &domain.TreeNode{ID: "stray", Kind: domain.NodeSolution})
	found.Children[0].Content = "edited too"

	again := svc.Find(opp)
	assert.Equal(t, "opp", again.Content)
	require.Len(t, again.Children, 1)
	assert.Equal(t, "sol", again.Children[0].Content)
	assert.Equal(t, sols[0], again.Children[0].ID)
	assert.Equal(t, 3, svc.Snapshot().NodeCount)
	assert.Nil(t, svc.Find("missing"))
}
