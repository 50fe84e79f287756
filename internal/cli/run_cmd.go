package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		keepGoing bool
		quiet     bool
		noTree    bool
	)
	cmd := &cobra.Command{
		Use:   "run FILE...",
		Short: "Replay command scripts into one tree",
		Long: `Replay one or more command scripts, in order, into a single tree and
print the result. Use "-" to read a script from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := app.Builder()
			opts := scriptOptions{keepGoing: keepGoing, quiet: quiet}
			out := cmd.OutOrStdout()
			for _, path := range args {
				err := withScriptReader(cmd, path, func(r io.Reader) error {
					return runScript(cmd.Context(), builder, r, out, opts)
				})
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			if !noTree {
				fmt.Fprint(out, formatter.FormatTree(builder.Snapshot()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Continue past failing lines and report them all")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress confirmations of mutating commands")
	cmd.Flags().BoolVar(&noTree, "no-tree", false, "Do not print the tree after the scripts run")
	return cmd
}

// withScriptReader opens path ("-" for the command's stdin) and hands it to fn.
func withScriptReader(cmd *cobra.Command, path string, fn func(r io.Reader) error) error {
	if path == "-" {
		return fn(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}
