package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShellArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "single word",
			input: "status",
			want:  []string{"status"},
		},
		{
			name:  "double quoted phrase",
			input: `opportunity "Users forget to come back"`,
			want:  []string{"opportunity", "Users forget to come back"},
		},
		{
			name:  "single quoted phrase",
			input: "solution 'Push notification reminders'",
			want:  []string{"solution", "Push notification reminders"},
		},
		{
			name:  "kind with quoted value",
			input: `add test "Interview 5 churned users"`,
			want:  []string{"add", "test", "Interview 5 churned users"},
		},
		{
			name:  "escaped quote inside double quotes",
			input: `outcome "Grow \"active\" users"`,
			want:  []string{"outcome", `Grow "active" users`},
		},
		{
			name:  "empty quoted arg",
			input: `outcome ""`,
			want:  []string{"outcome", ""},
		},
		{
			name:    "unterminated quote",
			input:   `outcome "oops`,
			wantErr: true,
		},
		{
			name:    "unterminated escape",
			input:   `outcome hi\`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := splitShellArgs(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// submit types line into the shell input and presses Enter.
func submit(t *testing.T, m shellModel, line string) (shellModel, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(shellModel), cmd
}

func TestShellModel_ExecutesCommands(t *testing.T) {
	app := testApp(t)
	m := newShellModel(app)

	out, cmd := m.runLine(`outcome "Grow 90-day retention"`)
	assert.Nil(t, cmd)
	assert.Contains(t, out, "Added Outcome")

	out, _ = m.runLine("opportunity Users churn")
	assert.Contains(t, out, "Added Opportunity")
	assert.Equal(t, 2, app.Builder().Snapshot().NodeCount)
}

func TestShellModel_ErrorsAreRendered(t *testing.T) {
	app := testApp(t)
	m := newShellModel(app)

	out, cmd := m.runLine("solution Orphan")
	assert.Nil(t, cmd)
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "select a target opportunity first")

	out, _ = m.runLine("frobnicate")
	assert.Contains(t, out, "unknown command")
	assert.True(t, app.Builder().Snapshot().Empty())
}

func TestShellModel_ExitSetsQuitting(t *testing.T) {
	m := newShellModel(testApp(t))

	_, cmd := m.runLine("exit")

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestShellModel_QuitSetsQuitting(t *testing.T) {
	m := newShellModel(testApp(t))

	m, cmd := submit(t, m, "quit")

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Goodbye.")
}

func TestShellModel_AlreadyInShell(t *testing.T) {
	m := newShellModel(testApp(t))
	out, _ := m.runLine("shell")
	assert.Contains(t, out, "Already in shell mode.")
}

func TestShellModel_DeleteLeafSkipsConfirmation(t *testing.T) {
	app := testApp(t)
	seedRetentionTree(t, app)
	m := newShellModel(app)

	out, _ := m.runLine("delete #4")

	assert.False(t, m.confirming())
	assert.Contains(t, out, "Deleted: A/B test notification opt-in rate")
	assert.Equal(t, 5, app.Builder().Snapshot().NodeCount)
}

func TestShellConfirm_DeleteSubtree_YesExecutes(t *testing.T) {
	app := testApp(t)
	seedRetentionTree(t, app)
	m := newShellModel(app)

	m, _ = submit(t, m, "delete #2")
	require.True(t, m.confirming())
	assert.Equal(t, []string{"#2"}, m.pending.args)
	assert.Contains(t, m.View(), "confirm (y/n)")
	assert.Equal(t, 6, app.Builder().Snapshot().NodeCount, "nothing removed before confirmation")

	m, _ = submit(t, m, "y")
	assert.False(t, m.confirming())
	assert.Nil(t, m.pending)
	assert.Equal(t, 2, app.Builder().Snapshot().NodeCount)
	assert.Empty(t, app.Builder().Controls().Target)
}

func TestShellConfirm_DeleteSubtree_NoAborts(t *testing.T) {
	app := testApp(t)
	seedRetentionTree(t, app)
	m := newShellModel(app)

	m, _ = submit(t, m, "rm #3")
	require.True(t, m.confirming())

	m, _ = submit(t, m, "n")
	assert.False(t, m.confirming())
	assert.Equal(t, 6, app.Builder().Snapshot().NodeCount)
}

func TestShellConfirm_EscCancels(t *testing.T) {
	app := testApp(t)
	seedRetentionTree(t, app)
	m := newShellModel(app)

	m, _ = submit(t, m, "delete #1")
	require.True(t, m.confirming())

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(shellModel)
	require.NotNil(t, cmd)
	assert.False(t, m.confirming())
	assert.Equal(t, 6, app.Builder().Snapshot().NodeCount)
}

func TestShellConfirm_BadReferenceReportsError(t *testing.T) {
	app := testApp(t)
	seedRetentionTree(t, app)
	m := newShellModel(app)

	out, _ := m.runLine("delete #42")
	assert.False(t, m.confirming())
	assert.Contains(t, out, "node not found")

	out, _ = m.runLine("delete")
	assert.Contains(t, out, "usage")
}

func TestShellModel_HistoryNavigation(t *testing.T) {
	app := testApp(t)
	m := newShellModel(app)

	m, _ = submit(t, m, "outcome A")
	m, _ = submit(t, m, "tree")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(shellModel)
	assert.Equal(t, "tree", m.input.Value())

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(shellModel)
	assert.Equal(t, "outcome A", m.input.Value())

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(shellModel)
	assert.Equal(t, "tree", m.input.Value())

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(shellModel)
	assert.Empty(t, m.input.Value())

	assert.Equal(t, []string{"outcome A", "tree"}, loadHistoryFromPath(app.Config.HistoryFile))
}

func TestShellModel_CtrlCQuitsFromConfirm(t *testing.T) {
	app := testApp(t)
	seedRetentionTree(t, app)
	m := newShellModel(app)
	m, _ = submit(t, m, "delete #2")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = model.(shellModel)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, 6, app.Builder().Snapshot().NodeCount)
}
