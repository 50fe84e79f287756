package cli

import (
	"testing"

	"github.com/alexanderramin/ost/internal/teatest"
)

// TestDriver runs an appModel through the synchronous teatest driver and
// exposes the parts of its state the TUI tests assert on.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver starts the TUI for app in a 120x40 terminal.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

// Command runs input through the command bar, then blurs the bar if the
// command left it focused so later keys reach the active view.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

func (d *TestDriver) model() appModel { return d.Model.(appModel) }

func (d *TestDriver) State() *SharedState { return d.model().state }
func (d *TestDriver) LastOutput() string  { return d.model().output.text }

// CmdBarFocused binds the model first: Focused has a pointer receiver.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.model()
	return m.cmdBar.Focused()
}

func (d *TestDriver) ViewStackIDs() []ViewID {
	return stackIDs(d.model())
}
func (d *TestDriver) ViewStackLen() int {
	return len(d.model().viewStack)
}

// ActiveViewID is -1 for an empty stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.model()
	if v := m.activeView(); v != nil {
		return v.ID()
	}
	return -1
}

func (d *TestDriver) ActiveViewTitle() string {
	m := d.model()
	if v := m.activeView(); v != nil {
		return v.Title()
	}
	return ""
}

// IsQuitting covers both q/ctrl+c, which set appModel.quitting, and
// tea.Quit reaching the driver.
func (d *TestDriver) IsQuitting() bool {
	return d.model().quitting || d.Quitting
}

// TreeCursor is the row cursor of the tree view, -1 if it is missing.
func (d *TestDriver) TreeCursor() int {
	stack := d.model().viewStack
	if len(stack) == 0 {
		return -1
	}
	if tv, ok := stack[0].(*treeView); ok {
		return tv.cursor
	}
	return -1
}
