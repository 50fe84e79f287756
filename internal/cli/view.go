package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID tells the kinds of stacked screens apart.
type ViewID int

const (
	ViewTree   ViewID = iota // the tree, always at the bottom of the stack
	ViewStatus               // target, selection and control state
	ViewForm                 // a huh form; receives every key
)

// View is one screen on the appModel stack.
type View interface {
	tea.Model
	ID() ViewID
	Title() string
	ShortHelp() []key.Binding
}
