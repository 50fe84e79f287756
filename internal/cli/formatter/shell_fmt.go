package formatter

import (
	"fmt"
	"strings"
)

type commandDoc struct {
	usage, summary string
	intro          bool // listed in the shell welcome banner
}

type commandSection struct {
	title string
	docs  []commandDoc
}

var commandReference = []commandSection{
	{"Build", []commandDoc{
		{"outcome TEXT", "Add the desired outcome (tree root)", true},
		{"opportunity TEXT", "Add an opportunity under the outcome", true},
		{"solution TEXT", "Add a solution under the target", false},
		{"test TEXT", "Add an assumption test under the selection", false},
		{"add KIND TEXT", "Same as the four commands above", false},
	}},
	{"Select", []commandDoc{
		{"target ID", "Toggle the target opportunity", true},
		{"select ID", "Toggle a solution to explore (max 3)", false},
		{"delete ID", "Delete a node and its subtree", false},
	}},
	{"Inspect", []commandDoc{
		{"tree", "Render the tree", false},
		{"status", "Show target, selection and controls", false},
		{"export json|yaml", "Print a snapshot of the tree", false},
	}},
	{"Utilities", []commandDoc{
		{"help", "Show this command reference", true},
		{"quit / exit", "Leave ost", false},
	}},
}

const usageWidth = 18

func writeCommandDoc(b *strings.Builder, d commandDoc, width int) {
	fmt.Fprintf(b, "  %s %s\n", StyleGreen.Render(fmt.Sprintf("%-*s", width, d.usage)), Dim(d.summary))
}

// FormatShellWelcome is the banner printed when the shell starts.
func FormatShellWelcome() string {
	var b strings.Builder
	b.WriteString("\n  " + StylePurple.Render("ost") + Dim("  opportunity solution tree") + "\n")
	b.WriteString("  " + Dim(strings.Repeat("─", 29)) + "\n\n")
	b.WriteString("  " + Dim("Start with a desired outcome, then branch into opportunities.") + "\n\n")
	for _, s := range commandReference {
		for _, d := range s.docs {
			if d.intro {
				writeCommandDoc(&b, d, usageWidth)
			}
		}
	}
	b.WriteString("\n  " + Dim("Type 'help' for commands, 'quit' to leave.") + "\n\n")
	return b.String()
}

// FormatShellHelp renders the command reference, one section per group.
func FormatShellHelp() string {
	var b strings.Builder
	for _, s := range commandReference {
		b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(s.title)) + "\n")
		for _, d := range s.docs {
			writeCommandDoc(&b, d, usageWidth+4)
		}
	}
	b.WriteString("\n" + Dim("ID is a unique id prefix (4+ chars) or a row number like #3.\n"+
		"Quote text with spaces or leave it bare; # starts a comment."))
	return RenderBox("Commands", b.String())
}
