package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verdantiq/esgtrack/internal/domain"
	"github.com/verdantiq/esgtrack/internal/errors"
	"github.com/verdantiq/esgtrack/internal/tui"
)

// AddRequirementsCommand adds the requirements command to the root command.
func AddRequirementsCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newRequirementsCmd(flags))
}

// newRequirementsCmd creates the requirements command.
func newRequirementsCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "requirements <task-id>",
		Short: "Show the data fields and documents a task requires",
		Long: `Requirements derives the data-entry fields and supporting documents a
task needs from its text and your configured meters.

Examples:
  esgtrack requirements task-42
  esgtrack requirements task-42 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequirements(cmd.Context(), cmd.OutOrStdout(), flags, args[0])
		},
	}
}

func runRequirements(ctx context.Context, out io.Writer, flags *GlobalFlags, taskID string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	client, err := a.apiClient()
	if err != nil {
		return err
	}

	tasks, err := client.FetchTasks(ctx)
	if err != nil {
		return err
	}

	var task *domain.Task
	for i := range tasks {
		if tasks[i].ID == taskID {
			task = &tasks[i]
			break
		}
	}
	if task == nil {
		return errors.Wrapf(errors.ErrTaskNotFound, "task '%s' is not assigned to you", taskID)
	}

	reqs := a.extractor.TaskRequirements(task, a.locations())

	if flags.Output == OutputJSON {
		return json.NewEncoder(out).Encode(reqs)
	}

	tui.CheckNoColor()
	fmt.Fprintln(out, tui.RenderRequirements(task, reqs))
	return nil
}
