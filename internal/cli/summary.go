package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verdantiq/esgtrack/internal/ledger"
	"github.com/verdantiq/esgtrack/internal/tui"
)

// AddSummaryCommand adds the summary command to the root command.
func AddSummaryCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newSummaryCmd(flags))
}

// newSummaryCmd creates the summary command.
func newSummaryCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show overall compliance progress",
		Long: `Summary shows overall progress across all tracked tasks with a
per-category breakdown.

When no tasks are tracked locally yet, the summary is computed directly
from the platform's task list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
}

func runSummary(ctx context.Context, out io.Writer, flags *GlobalFlags) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	summary, err := resolveSummary(ctx, a)
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return json.NewEncoder(out).Encode(summary)
	}

	tui.CheckNoColor()
	fmt.Fprintln(out, tui.RenderSummary(summary))
	return nil
}

// resolveSummary prefers the ledger and falls back to server tasks when
// nothing is tracked locally yet.
func resolveSummary(ctx context.Context, a *app) (ledger.Summary, error) {
	if len(a.ledger.Log().Tasks) > 0 {
		return a.ledger.ProgressSummary(), nil
	}

	client, err := a.apiClient()
	if err != nil {
		// No platform configured; report the empty local state.
		return a.ledger.ProgressSummary(), nil
	}
	tasks, err := client.FetchTasks(ctx)
	if err != nil {
		return ledger.Summary{}, err
	}
	return a.reconciler.FallbackSummary(tasks, a.locations()), nil
}
