package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ost/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// demoScript builds the retention example tree.
const demoScript = `# Desired outcome and the opportunities that could move it.
outcome "Grow 90-day retention"
opportunity "Users forget to come back"
opportunity "Onboarding is confusing"

# Explore the first opportunity.
target #2
solution "Push notification reminders"
solution "Weekly progress digest email"
select #3

# Assumption tests for the selected solution.
test "A/B test notification opt-in rate"
test "Interview 5 churned users about reminders"
`

func newDemoCmd(app *App) *cobra.Command {
	var showScript bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build and print an example tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showScript {
				fmt.Fprint(out, demoScript)
				return nil
			}
			builder := app.NewBuilder()
			opts := scriptOptions{quiet: true}
			if err := runScript(cmd.Context(), builder, strings.NewReader(demoScript), out, opts); err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatTree(builder.Snapshot()))
			fmt.Fprintln(out, formatter.FormatStatus(builder.Snapshot(), builder.Controls()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showScript, "script", false, "Print the demo script instead of running it")
	return cmd
}
