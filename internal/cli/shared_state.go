package cli

import (
	"github.com/alexanderramin/ost/internal/service"
)

// SharedState is the session state every TUI view holds a pointer to.
type SharedState struct {
	App     *App
	Builder service.BuilderService

	Width  int
	Height int
}

// chromeLines is the height of the header (title, rule), the status bar
// (rule, hints) and the command bar.
const chromeLines = 5

// ContentHeight returns the rows left for the active view or output panel.
func (s *SharedState) ContentHeight() int {
	return max(s.Height-chromeLines, 1)
}
