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

// AddNextCommand adds the next command to the root command.
func AddNextCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newNextCmd(flags))
}

// newNextCmd creates the next command.
func newNextCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Recommend which tasks to work on next",
		Long: `Next recommends up to three tasks to work on, least complete first.
Environmental obligations are surfaced before social and governance ones
when progress is tied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNext(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
}

func runNext(ctx context.Context, out io.Writer, flags *GlobalFlags) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	steps, err := resolveNextSteps(ctx, a)
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return json.NewEncoder(out).Encode(steps)
	}

	tui.CheckNoColor()
	fmt.Fprintln(out, tui.RenderNextSteps(steps))
	return nil
}

// resolveNextSteps prefers the ledger and falls back to server tasks when
// nothing is tracked locally yet.
func resolveNextSteps(ctx context.Context, a *app) ([]ledger.NextStep, error) {
	if len(a.ledger.Log().Tasks) > 0 {
		return a.ledger.NextSteps(), nil
	}

	client, err := a.apiClient()
	if err != nil {
		return a.ledger.NextSteps(), nil
	}
	tasks, err := client.FetchTasks(ctx)
	if err != nil {
		return nil, err
	}
	return a.reconciler.FallbackNextSteps(tasks, a.locations()), nil
}
