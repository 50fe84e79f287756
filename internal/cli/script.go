package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/service"
	"github.com/alexanderramin/ost/internal/tree"
)

// minIDPrefix is the shortest id prefix accepted as a node reference.
const minIDPrefix = 4

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
	errAmbiguousRef   = errors.New("ambiguous node reference")
	errShortRef       = errors.New("id prefix too short")
)

// scriptCommand is one parsed line of the command language.
type scriptCommand struct {
	line int
	name string
	args []string
}

// scriptOptions controls how a script is replayed.
type scriptOptions struct {
	keepGoing bool // continue after a failing line
	quiet     bool // suppress confirmations of mutating commands
}

// parseScriptLine parses one line. ok is false for blank and comment lines.
func parseScriptLine(text string, line int) (cmd scriptCommand, ok bool, err error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return scriptCommand{}, false, nil
	}
	parts, err := splitShellArgs(trimmed)
	if err != nil {
		return scriptCommand{}, false, fmt.Errorf("line %d: %w", line, err)
	}
	if len(parts) == 0 {
		return scriptCommand{}, false, nil
	}
	return scriptCommand{
		line: line,
		name: strings.ToLower(parts[0]),
		args: parts[1:],
	}, true, nil
}

// parseScript reads every command from r. Parse errors carry their line
// number; all of them are reported together.
func parseScript(r io.Reader) ([]scriptCommand, error) {
	var (
		cmds []scriptCommand
		errs []error
	)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		cmd, ok, err := parseScriptLine(scanner.Text(), line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("reading script: %w", err))
	}
	return cmds, errors.Join(errs...)
}

// runScript parses r and executes it against builder, writing command output
// to w. Without keepGoing it stops at the first failing line.
func runScript(ctx context.Context, builder service.BuilderService, r io.Reader, w io.Writer, opts scriptOptions) error {
	cmds, err := parseScript(r)
	if err != nil {
		return err
	}
	x := scriptExecutor{builder: builder}
	var errs []error
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, quit, err := x.exec(ctx, c)
		if err != nil {
			err = fmt.Errorf("line %d: %w", c.line, err)
			if !opts.keepGoing {
				return err
			}
			errs = append(errs, err)
			continue
		}
		if out != "" && !(opts.quiet && isMutating(c.name)) {
			fmt.Fprintln(w, out)
		}
		if quit {
			break
		}
	}
	return errors.Join(errs...)
}

func isMutating(name string) bool {
	switch name {
	case "outcome", "opportunity", "solution", "test", "add", "target", "select", "delete", "rm":
		return true
	}
	return false
}

// scriptExecutor runs parsed commands against a builder. It is shared by the
// command bar, the shell and the script runners.
type scriptExecutor struct {
	builder service.BuilderService
}

// exec runs cmd and returns its display output. quit is true for quit/exit.
func (x scriptExecutor) exec(ctx context.Context, cmd scriptCommand) (out string, quit bool, err error) {
	switch cmd.name {
	case "outcome", "opportunity", "solution", "test":
		out, err = x.add(ctx, cmd.name, cmd.args)
	case "add":
		if len(cmd.args) < 2 {
			return "", false, fmt.Errorf("%w: add KIND TEXT", errUsage)
		}
		out, err = x.add(ctx, cmd.args[0], cmd.args[1:])
	case "target":
		out, err = x.target(ctx, cmd.args)
	case "select":
		out, err = x.selectSolution(ctx, cmd.args)
	case "delete", "rm":
		out, err = x.delete(ctx, cmd.args)
	case "tree":
		out = strings.TrimRight(formatter.FormatTree(x.builder.Snapshot()), "\n")
	case "status":
		out = formatter.FormatStatus(x.builder.Snapshot(), x.builder.Controls())
	case "export":
		out, err = x.export(cmd.args)
	case "help":
		out = formatter.FormatShellHelp()
	case "quit", "exit":
		quit = true
	default:
		err = fmt.Errorf("%w: %s (type 'help' for commands)", errUnknownCommand, cmd.name)
	}
	return out, quit, err
}

func (x scriptExecutor) add(ctx context.Context, kindName string, args []string) (string, error) {
	kind, ok := domain.ParseNodeKind(kindName)
	if !ok {
		return "", fmt.Errorf("%w: %q", tree.ErrInvalidKind, kindName)
	}
	content := strings.Join(args, " ")

	var (
		ids []string
		err error
	)
	switch kind {
	case domain.NodeOutcome:
		var id string
		id, err = x.builder.AddOutcome(ctx, content)
		ids = []string{id}
	case domain.NodeOpportunity:
		var id string
		id, err = x.builder.AddOpportunity(ctx, content)
		ids = []string{id}
	case domain.NodeSolution:
		var id string
		id, err = x.builder.AddSolution(ctx, content)
		ids = []string{id}
	case domain.NodeTest:
		ids, err = x.builder.AddTest(ctx, content)
	}
	if err != nil {
		return "", err
	}
	return addedMessage(x.builder, ids), nil
}

// addedMessage confirms the nodes just created.
func addedMessage(b service.BuilderService, ids []string) string {
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		n := b.Find(id)
		if n == nil {
			continue
		}
		line := fmt.Sprintf("%s Added %s: %s %s",
			formatter.StyleGreen.Render("✔"),
			formatter.KindBadge(n.Kind),
			formatter.Bold(n.Content),
			formatter.TruncID(n.ID))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (x scriptExecutor) target(ctx context.Context, args []string) (string, error) {
	n, err := x.resolveArg(args, "target ID")
	if err != nil {
		return "", err
	}
	if err := x.builder.ToggleTarget(ctx, n.ID); err != nil {
		return "", err
	}
	if x.builder.Controls().Target == "" {
		return formatter.Dim("Target cleared."), nil
	}
	return fmt.Sprintf("%s Target: %s", formatter.StyleYellowBold.Render("◎"), formatter.Bold(n.Content)), nil
}

func (x scriptExecutor) selectSolution(ctx context.Context, args []string) (string, error) {
	n, err := x.resolveArg(args, "select ID")
	if err != nil {
		return "", err
	}
	was := x.builder.Snapshot().SelectionIndex(n.ID)
	if err := x.builder.ToggleSolution(ctx, n.ID); err != nil {
		return "", err
	}
	now := x.builder.Snapshot().SelectionIndex(n.ID)
	switch {
	case was > 0:
		return formatter.Dim("Unselected: ") + n.Content, nil
	case now > 0:
		return fmt.Sprintf("%s Exploring: %s", formatter.StylePurple.Render(fmt.Sprintf("★ %d", now)), formatter.Bold(n.Content)), nil
	default:
		return formatter.StyleYellow.Render(fmt.Sprintf(
			"Selection full (%d/%d). Unselect a solution first.", tree.MaxSelectedSolutions, tree.MaxSelectedSolutions)), nil
	}
}

func (x scriptExecutor) delete(ctx context.Context, args []string) (string, error) {
	n, err := x.resolveArg(args, "delete ID")
	if err != nil {
		return "", err
	}
	removed, err := x.builder.Delete(ctx, n.ID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s Deleted: %s %s",
		formatter.StyleGreen.Render("✔"),
		formatter.Bold(n.Content),
		formatter.Dim(fmt.Sprintf("(%d node(s))", removed))), nil
}

func (x scriptExecutor) export(args []string) (string, error) {
	name := "json"
	if len(args) > 0 {
		name = args[0]
	}
	format, err := formatter.ParseExportFormat(name)
	if err != nil {
		return "", err
	}
	data, err := formatter.Export(x.builder.Snapshot(), format)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func (x scriptExecutor) resolveArg(args []string, usage string) (*domain.TreeNode, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s", errUsage, usage)
	}
	return resolveNodeRef(x.builder.Snapshot(), args[0])
}

// resolveNodeRef finds the node named by ref: a row number "#3", a full id,
// or a unique id prefix of at least minIDPrefix characters.
func resolveNodeRef(snap tree.Snapshot, ref string) (*domain.TreeNode, error) {
	rows := snap.Rows()

	if strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n < 1 || n > len(rows) {
			return nil, fmt.Errorf("%w: row %s", tree.ErrNotFound, ref)
		}
		return rows[n-1], nil
	}

	for _, r := range rows {
		if r.ID == ref {
			return r, nil
		}
	}
	if len(ref) < minIDPrefix {
		return nil, fmt.Errorf("%w: %q (need %d+ characters or a row like #2)", errShortRef, ref, minIDPrefix)
	}

	var match *domain.TreeNode
	for _, r := range rows {
		if !strings.HasPrefix(r.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", errAmbiguousRef, ref)
		}
		match = r
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q", tree.ErrNotFound, ref)
	}
	return match, nil
}

// shellError formats an error for display in the shell and TUI.
func shellError(err error) string {
	return formatter.Error(err)
}
