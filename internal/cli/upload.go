package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verdantiq/esgtrack/internal/api"
	"github.com/verdantiq/esgtrack/internal/domain"
	"github.com/verdantiq/esgtrack/internal/errors"
	"github.com/verdantiq/esgtrack/internal/tui"
)

// AddUploadCommand adds the upload command to the root command.
func AddUploadCommand(root *cobra.Command) {
	root.AddCommand(newUploadCmd())
}

// newUploadCmd creates the upload command.
func newUploadCmd() *cobra.Command {
	var dataEvidence bool

	cmd := &cobra.Command{
		Use:   "upload <task-id> <file>",
		Short: "Upload an evidence file for a task",
		Long: `Upload sends one evidence file to the platform and records it in the
local progress ledger on success. Files over the configured size limit
(10 MB by default) are rejected before any bytes are sent.

Examples:
  esgtrack upload task-42 bills/march.pdf
  esgtrack upload task-42 readings.xlsx --data-evidence`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], dataEvidence)
		},
	}

	cmd.Flags().BoolVar(&dataEvidence, "data-evidence", false, "mark the file as data-backed evidence")

	return cmd
}

func runUpload(ctx context.Context, out io.Writer, taskID, path string, dataEvidence bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if _, err := a.ledger.Entry(taskID); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read '%s'", path)
	}

	file, err := os.Open(path) //#nosec G304 -- user-provided upload path
	if err != nil {
		return errors.Wrapf(err, "failed to open '%s'", path)
	}
	defer func() { _ = file.Close() }()

	attachmentType := domain.AttachmentTypeEvidence
	if dataEvidence {
		attachmentType = domain.AttachmentTypeDataEvidence
	}

	client, err := a.apiClient()
	if err != nil {
		return err
	}

	filename := filepath.Base(path)
	evidence, err := client.UploadAttachment(ctx, taskID, api.Upload{
		Filename: filename,
		Size:     info.Size(),
		Content:  file,
		Type:     attachmentType,
		Title:    filename,
	})
	if err != nil {
		return err
	}

	// Some platform versions omit the id in the upload response.
	summaryID := evidence.ID
	if summaryID == "" {
		summaryID = uuid.NewString()
	}

	if err := a.ledger.LogFileUpload(taskID, domain.FileSummary{
		ID:         summaryID,
		Filename:   filename,
		Size:       info.Size(),
		UploadedAt: evidence.UploadedAt,
		Type:       attachmentType,
	}); err != nil {
		return err
	}

	entry, err := a.ledger.Entry(taskID)
	if err != nil {
		return err
	}

	tui.CheckNoColor()
	styles := tui.NewOutputStyles()
	fmt.Fprintf(out, "%s Uploaded %s  %s\n",
		styles.Success.Render("✓"), filename,
		styles.Dim.Render(fmt.Sprintf("(files %d/%d, task %d%%)",
			entry.Files.Uploaded, entry.Files.Required, entry.OverallProgress)))
	return nil
}
