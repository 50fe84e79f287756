package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-render the tree whenever a script changes",
		Long: `Replay FILE into a fresh tree and print it, then do so again every
time the file is written. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			replay := func(ctx context.Context, r io.Reader, out io.Writer) error {
				return replayScript(ctx, app, r, out)
			}
			w := &scriptWatcher{
				path:     args[0],
				debounce: app.Config.WatchDebounce,
				out:      cmd.OutOrStdout(),
				replay:   replay,
			}
			return w.Run(ctx)
		},
	}
}

// replayScript runs r against a fresh builder and prints the tree and
// status. Script errors are printed rather than returned so watching
// continues.
func replayScript(ctx context.Context, app *App, r io.Reader, out io.Writer) error {
	builder := app.NewBuilder()
	err := runScript(ctx, builder, r, out, scriptOptions{keepGoing: true, quiet: true})
	if err != nil {
		fmt.Fprintln(out, shellError(err))
	}
	fmt.Fprint(out, formatter.FormatTree(builder.Snapshot()))
	fmt.Fprintln(out, formatter.FormatStatus(builder.Snapshot(), builder.Controls()))
	return nil
}

// scriptWatcher replays a script file after writes to it settle: every
// write or create event restarts the debounce timer, and the replay runs
// once the timer fires, so a save that truncates before writing is read
// whole.
type scriptWatcher struct {
	path     string
	debounce time.Duration
	out      io.Writer
	replay   func(ctx context.Context, r io.Reader, out io.Writer) error
}

// Run replays once, then watches until ctx is cancelled.
func (w *scriptWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file rather than
	// write it in place, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	if err := w.replayFile(ctx); err != nil {
		return err
	}

	target := filepath.Clean(w.path)
	settle := time.NewTimer(w.debounce)
	settle.Stop()
	defer settle.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settle.Reset(w.debounce)

		case <-settle.C:
			if err := w.replayFile(ctx); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(w.out, shellError(err))
		}
	}
}

func (w *scriptWatcher) replayFile(ctx context.Context) error {
	f, err := os.Open(w.path)
	if err != nil {
		fmt.Fprintln(w.out, shellError(err))
		return nil
	}
	defer f.Close()
	fmt.Fprintln(w.out, formatter.Header(fmt.Sprintf("%s @ %s", filepath.Base(w.path), time.Now().Format("15:04:05"))))
	return w.replay(ctx, f, w.out)
}
