package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verdantiq/esgtrack/internal/tui"
)

// AddTasksCommand adds the tasks command to the root command.
func AddTasksCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newTasksCmd(flags))
}

// newTasksCmd creates the tasks command.
func newTasksCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List locally tracked tasks with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasks(cmd.OutOrStdout(), flags)
		},
	}
}

func runTasks(out io.Writer, flags *GlobalFlags) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	doc := a.ledger.Log()

	if flags.Output == OutputJSON {
		return json.NewEncoder(out).Encode(doc)
	}

	tui.CheckNoColor()
	fmt.Fprintln(out, tui.RenderTaskList(doc.Tasks))
	return nil
}
