package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/ost/internal/config"
	"github.com/alexanderramin/ost/internal/service"
	"github.com/alexanderramin/ost/internal/tree"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// App holds configuration and the builder used by CLI commands.
type App struct {
	Config config.Config

	// Observer receives use-case events. When nil, the root command builds
	// one from the logging config.
	Observer service.UseCaseObserver

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	builder   service.BuilderService
	storeOpts []tree.Option
	logFile   io.Closer
}

// Builder returns the session's builder, creating it on first use.
func (a *App) Builder() service.BuilderService {
	if a.builder == nil {
		a.builder = a.NewBuilder()
	}
	return a.builder
}

// NewBuilder returns a builder over a fresh, empty tree configured from the
// current settings.
func (a *App) NewBuilder() service.BuilderService {
	opts := append([]tree.Option(nil), a.storeOpts...)
	if a.Config.StrictKinds {
		opts = append(opts, tree.WithStrictKinds())
	}
	return service.NewBuilderService(tree.NewStore(opts...), a.Config.TestTarget, a.Observer)
}

// setupObserver wires use-case logging once flags have been parsed.
func (a *App) setupObserver(stderr io.Writer) error {
	if a.Observer != nil || !a.Config.LogUseCases {
		return nil
	}
	if a.Config.LogFile == "" {
		a.Observer = service.NewLogUseCaseObserver(stderr)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.Config.LogFile), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(a.Config.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	a.logFile = f
	a.Observer = service.NewLogUseCaseObserver(f)
	return nil
}

// Close releases the log file, if one was opened.
func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "ost" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ost",
		Short: "Opportunity solution tree builder",
		Long: `Build an opportunity solution tree: one desired outcome, the
opportunities that could move it, candidate solutions for a target
opportunity, and assumption tests for the solutions you explore.

With a terminal on stdin, ost opens the interactive tree builder.
Otherwise it reads commands from stdin, one per line.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setupObserver(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			return runScript(cmd.Context(), app.Builder(), cmd.InOrStdin(), cmd.OutOrStdout(), scriptOptions{})
		},
	}
	config.BindFlags(root.PersistentFlags(), &app.Config)

	root.AddCommand(
		newShellCmd(app),
		newRunCmd(app),
		newWatchCmd(app),
		newDemoCmd(app),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ost version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ost %s\n", Version)
		},
	}
}
