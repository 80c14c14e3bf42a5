package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdantiq/esgtrack/internal/api"
	"github.com/verdantiq/esgtrack/internal/errors"
	"github.com/verdantiq/esgtrack/internal/tui"
)

// AddEnterCommand adds the enter command to the root command.
func AddEnterCommand(root *cobra.Command) {
	root.AddCommand(newEnterCmd())
}

// newEnterCmd creates the enter command.
func newEnterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enter <task-id> <field> <value>",
		Short: "Record a data-field value for a task",
		Long: `Enter records one data-field value, e.g. a meter reading. The value is
sent to the platform first; the local ledger is updated only after the
platform accepts it.

Examples:
  esgtrack enter task-42 ELC0001_current 1250
  esgtrack enter task-42 percentage 80`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnter(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], args[2])
		},
	}
}

func runEnter(ctx context.Context, out io.Writer, taskID, fieldKey, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Wrap(errors.ErrEmptyValue, "field value")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	entry, err := a.ledger.Entry(taskID)
	if err != nil {
		return err
	}

	known := false
	for _, desc := range entry.DataEntries.RequiredFields {
		if desc.Key == fieldKey {
			known = true
			break
		}
	}
	if !known {
		return errors.Wrapf(errors.ErrFieldUnknown, "field '%s' (run 'esgtrack requirements %s')", fieldKey, taskID)
	}

	client, err := a.apiClient()
	if err != nil {
		return err
	}
	if _, err := client.UpdateTask(ctx, taskID, api.TaskPatch{
		DataEntries: map[string]string{fieldKey: value},
	}); err != nil {
		return err
	}

	if err := a.ledger.LogDataEntry(taskID, fieldKey, value); err != nil {
		return err
	}

	updated, err := a.ledger.Entry(taskID)
	if err != nil {
		return err
	}

	tui.CheckNoColor()
	styles := tui.NewOutputStyles()
	fmt.Fprintf(out, "%s Recorded %s = %s  %s\n",
		styles.Success.Render("✓"), fieldKey, value,
		styles.Dim.Render(fmt.Sprintf("(task now %d%%)", updated.OverallProgress)))
	return nil
}
