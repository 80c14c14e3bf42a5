package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verdantiq/esgtrack/internal/tui"
)

// AddRemoveCommand adds the remove command to the root command.
func AddRemoveCommand(root *cobra.Command) {
	root.AddCommand(newRemoveCmd())
}

// newRemoveCmd creates the remove command.
func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <task-id> <evidence-id>",
		Short: "Remove an uploaded evidence file from a task",
		Long: `Remove deletes one evidence record on the platform and then removes it
from the local ledger. Task progress is recomputed and may regress.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func runRemove(ctx context.Context, out io.Writer, taskID, evidenceID string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if _, err := a.ledger.Entry(taskID); err != nil {
		return err
	}

	client, err := a.apiClient()
	if err != nil {
		return err
	}
	if err := client.DeleteAttachment(ctx, taskID, evidenceID); err != nil {
		return err
	}

	if err := a.ledger.LogFileRemoval(taskID, evidenceID); err != nil {
		return err
	}

	entry, err := a.ledger.Entry(taskID)
	if err != nil {
		return err
	}

	tui.CheckNoColor()
	styles := tui.NewOutputStyles()
	fmt.Fprintf(out, "%s Removed evidence %s  %s\n",
		styles.Success.Render("✓"), evidenceID,
		styles.Dim.Render(fmt.Sprintf("(files %d/%d, task %d%%)",
			entry.Files.Uploaded, entry.Files.Required, entry.OverallProgress)))
	return nil
}
