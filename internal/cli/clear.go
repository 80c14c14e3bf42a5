package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verdantiq/esgtrack/internal/tui"
)

// AddClearCommand adds the clear command to the root command.
func AddClearCommand(root *cobra.Command) {
	root.AddCommand(newClearCmd())
}

// newClearCmd creates the clear command.
func newClearCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear locally tracked progress",
		Long: `Clear removes the local progress ledger for the current user. The next
sync rebuilds it from the platform's view.

With --all, the user's entire local store is removed, including the
imported meter configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClear(cmd.OutOrStdout(), all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also remove the meter configuration")

	return cmd
}

func runClear(out io.Writer, all bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if all {
		if err := a.store.Clear(); err != nil {
			return err
		}
	} else if err := a.ledger.Clear(); err != nil {
		return err
	}

	tui.CheckNoColor()
	styles := tui.NewOutputStyles()
	if all {
		fmt.Fprintln(out, styles.Success.Render("✓")+" Cleared all local data for this user")
	} else {
		fmt.Fprintln(out, styles.Success.Render("✓")+" Cleared the local progress ledger")
	}
	return nil
}
