package formatter

import (
	"context"
	"testing"

	"github.com/alexanderramin/ost/internal/config"
	"github.com/alexanderramin/ost/internal/service"
	"github.com/alexanderramin/ost/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatStatus_EmptyTree(t *testing.T) {
	svc := service.NewBuilderService(tree.NewStore(), config.TestTargetLatest)
	out := stripANSI(FormatStatus(svc.Snapshot(), svc.Controls()))

	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "0/3")
	assert.Contains(t, out, "Add Desired Outcome")
	assert.Contains(t, out, service.HintNeedTarget)
	assert.Contains(t, out, service.HintNeedSelection)
}

func TestFormatStatus_WithSelection(t *testing.T) {
	ctx := context.Background()
	svc := service.NewBuilderService(tree.NewStore(), config.TestTargetLatest)
	_, err := svc.AddOutcome(ctx, "Grow retention")
	require.NoError(t, err)
	opp, err := svc.AddOpportunity(ctx, "Users forget to return")
	require.NoError(t, err)
	require.NoError(t, svc.ToggleTarget(ctx, opp))
	sol, err := svc.AddSolution(ctx, "Push notifications")
	require.NoError(t, err)
	require.NoError(t, svc.ToggleSolution(ctx, sol))

	out := stripANSI(FormatStatus(svc.Snapshot(), svc.Controls()))
	assert.Contains(t, out, "Users forget to return")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "★ 1 Push notifications")
	assert.Contains(t, out, "Add Opportunity")
	assert.NotContains(t, out, service.HintNeedTarget)
	assert.NotContains(t, out, service.HintNeedSelection)
}
