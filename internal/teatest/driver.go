// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver stands in for tea.Program: every message goes straight through
// Update and the returned commands are run to completion before the call
// returns, so assertions see the settled model. Commands that block on a
// timer (cursor blinks, jump timeouts) are abandoned after a short wait.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many messages one Send may cascade into.
const MaxDrainDepth = 100

// cmdTimeout separates message factories, which return at once, from
// commands waiting on a ticker.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has fired. The runtime normally swallows
	// tea.QuitMsg, so the driver records it itself.
	Quitting bool

	// Seen lists every message delivered to the model, in order.
	Seen []tea.Msg
}

// Option configures a Driver during construction.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.deliver(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit afterwards to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command and everything it produces.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init())
}

// Send delivers msg and drains the resulting commands. Messages sent after
// the model quit are dropped.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.run(d.deliver(msg))
}

// ── keys ─────────────────────────────────────────────────────────────────────

// namedKeys maps the key names used by Press to their key types.
var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+p":    tea.KeyCtrlP,
}

// Press sends a named key such as "enter" or "ctrl+c". Any other single
// rune is sent as typed text.
func (d *Driver) Press(name string) {
	d.T.Helper()
	if kt, ok := namedKeys[name]; ok {
		d.Send(tea.KeyMsg{Type: kt})
		return
	}
	runes := []rune(name)
	if len(runes) != 1 {
		d.T.Fatalf("teatest: unknown key %q", name)
	}
	d.PressKey(runes[0])
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Press("enter")
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Press("esc")
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Press("ctrl+c")
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.Press("up")
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.Press("down")
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// ── draining ─────────────────────────────────────────────────────────────────

// deliver passes msg to Update and records it.
func (d *Driver) deliver(msg tea.Msg) tea.Cmd {
	d.Seen = append(d.Seen, msg)
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	return cmd
}

// run executes cmd and every command it leads to, depth first so that
// batched commands settle in the order the runtime would usually see them.
func (d *Driver) run(cmd tea.Cmd) {
	d.T.Helper()
	type pending struct {
		cmd   tea.Cmd
		depth int
	}
	stack := []pending{{cmd: cmd}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.cmd == nil {
			continue
		}
		if p.depth >= MaxDrainDepth {
			d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
			continue
		}

		msg := runWithTimeout(p.cmd)
		switch m := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			for i := len(m) - 1; i >= 0; i-- {
				stack = append(stack, pending{cmd: m[i], depth: p.depth + 1})
			}
			continue
		case tea.QuitMsg:
			d.Quitting = true
			d.deliver(m)
			continue
		}
		if isCursorBlink(msg) {
			continue
		}
		stack = append(stack, pending{cmd: d.deliver(msg), depth: p.depth + 1})
	}
}

// runWithTimeout returns cmd's message, or nil if it is still waiting
// after cmdTimeout.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink reports the unexported blink messages of bubbles/cursor,
// which would otherwise chain into further timer commands.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
