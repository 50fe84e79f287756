package cli

import (
	"fmt"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// outputPanel shows command output in place of the active view until the
// next non-scroll key. Long output scrolls in a viewport.
type outputPanel struct {
	text   string
	active bool
	vp     viewport.Model
}

func newOutputPanel() outputPanel {
	vp := viewport.New(0, 0)
	// Letter keys stay free to dismiss the panel or reach global shortcuts.
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return outputPanel{vp: vp}
}

func (p *outputPanel) show(text string, width, height int) {
	p.text = text
	p.active = true
	p.vp.SetContent(text)
	p.resize(width, height)
	p.vp.GotoTop()
}

func (p *outputPanel) clear() {
	p.text = ""
	p.active = false
}

func (p *outputPanel) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
}

func (p *outputPanel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

// scrollable reports whether the output is taller than the panel.
func (p *outputPanel) scrollable() bool {
	return p.active && p.vp.TotalLineCount() > p.vp.Height
}

// view renders the viewport once the terminal size is known, the raw text
// before that.
func (p *outputPanel) view(sized bool) string {
	if p.active && sized {
		return p.vp.View()
	}
	return p.text
}

// hints returns the status-bar entries for a scrollable panel.
func (p *outputPanel) hints() []string {
	pos := fmt.Sprintf("[%d%%]", int(p.vp.ScrollPercent()*100))
	switch {
	case p.vp.AtTop():
		pos = "[TOP]"
	case p.vp.AtBottom():
		pos = "[END]"
	}
	return []string{
		formatter.Dim(pos),
		formatter.Dim("↑↓ pgup/pgdn: scroll"),
		formatter.Dim("esc: dismiss"),
	}
}

// isOutputScrollKey reports keys that scroll the panel instead of
// dismissing it.
func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}
