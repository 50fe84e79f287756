package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/alexanderramin/ost/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errContentRequired = errors.New("text is required")

// wizardView puts a huh.Form on the view stack. When the form completes,
// done runs inside Update and its command rides on a single
// wizardCompleteMsg; esc cancels.
type wizardView struct {
	state    *SharedState
	form     *huh.Form
	title    string
	done     func() tea.Cmd
	finished bool // a wizardCompleteMsg has been sent
}

func newWizardView(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) *wizardView {
	return &wizardView{state: state, form: form, title: title, done: done}
}

func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.title }

func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *wizardView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Messages can still arrive between completion and the pop.
	if v.finished {
		return v, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return v, v.finish(outputCmd(formatter.Dim("Cancelled.")))
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State != huh.StateCompleted {
		return v, cmd
	}

	var next tea.Cmd
	if v.done != nil {
		next = v.done()
	}
	return v, v.finish(tea.Batch(cmd, next))
}

// finish sends the single wizardCompleteMsg that closes this form.
func (v *wizardView) finish(next tea.Cmd) tea.Cmd {
	v.finished = true
	return send(wizardCompleteMsg{nextCmd: next})
}

func (v *wizardView) View() string {
	return v.form.View()
}

// ── forms ────────────────────────────────────────────────────────────────────

// formTheme styles huh forms in the Gruvbox palette; accent colours the
// focused title and cursor.
func formTheme(accent lipgloss.Color) *huh.Theme {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	t := huh.ThemeBase()
	t.Focused.Title = fg(accent).Bold(true)
	t.Focused.Description = fg(formatter.ColorDim)
	t.Focused.TextInput.Cursor = fg(accent)
	t.Focused.TextInput.Prompt = fg(accent)
	t.Focused.TextInput.Text = fg(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = fg(formatter.ColorDim)
	t.Focused.FocusedButton = fg(formatter.ColorFg).Background(accent).Padding(0, 1)
	t.Focused.BlurredButton = fg(formatter.ColorDim).Padding(0, 1)
	t.Focused.ErrorMessage = fg(formatter.ColorRed)
	t.Focused.ErrorIndicator = fg(formatter.ColorRed)

	t.Blurred.Title = fg(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = fg(formatter.ColorDim)
	t.Blurred.TextInput.Text = fg(formatter.ColorDim)
	return t
}

// validateContent rejects blank node text before it reaches the builder.
func validateContent(s string) error {
	if strings.TrimSpace(s) == "" {
		return errContentRequired
	}
	return nil
}

// contentForm asks for the text of a new node of the given kind.
func contentForm(kind domain.NodeKind, title, description string, result *string) *huh.Form {
	accent := formatter.KindColor(kind)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder(kind.Label() + " text").
				Value(result).
				Validate(validateContent),
		),
	).WithTheme(formTheme(accent)).WithShowHelp(false)
}

// confirmForm asks a yes/no question, defaulting to no.
func confirmForm(question string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Delete").
				Negative("Keep").
				Value(result),
		),
	).WithTheme(formTheme(formatter.ColorRed)).WithShowHelp(false)
}
