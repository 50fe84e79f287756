package service

import (
	"slices"

	"github.com/alexanderramin/ost/internal/domain"
)

// Hint texts shown next to disabled controls.
const (
	HintNeedTarget    = "Select a target opportunity first"
	HintNeedSelection = "Select a solution to explore first"
)

// Controls describes which builder controls are currently enabled, so the
// presentation layer can disable them instead of surfacing errors.
type Controls struct {
	PrimaryKind    domain.NodeKind
	PrimaryLabel   string
	CanAddSolution bool
	CanAddTest     bool
	SelectionFull  bool
	Selected       []string
	Target         string
}

// CanToggleSolution reports whether the select control for a solution is
// enabled: always for selected ones, otherwise only while there is room.
func (c Controls) CanToggleSolution(id string) bool {
	return slices.Contains(c.Selected, id) || !c.SelectionFull
}

// SolutionHint returns the tooltip for the add-solution control, or "".
func (c Controls) SolutionHint() string {
	if c.CanAddSolution {
		return ""
	}
	return HintNeedTarget
}

// TestHint returns the tooltip for the add-test control, or "".
func (c Controls) TestHint() string {
	if c.CanAddTest {
		return ""
	}
	return HintNeedSelection
}

// TargetLabel returns the button label for an opportunity.
func (c Controls) TargetLabel(id string) string {
	if c.Target == id {
		return "Unselect"
	}
	return "Select as Target"
}

// SelectLabel returns the button label for a solution.
func (c Controls) SelectLabel(id string) string {
	if slices.Contains(c.Selected, id) {
		return "Unselect"
	}
	return "Select to Explore"
}
