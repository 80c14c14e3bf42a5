// Package reconcile aligns the local progress ledger with the server's view
// of tasks after every fetch.
//
// The server is authoritative for which attachments and data entries exist;
// the ledger is authoritative for requirement counts and derived progress.
// Reconciliation therefore replaces server-owned state wholesale on
// divergence and then recomputes everything derived.
package reconcile

import (
	stderrors "errors"

	"github.com/rs/zerolog"

	"github.com/verdantiq/esgtrack/internal/domain"
	esgerrors "github.com/verdantiq/esgtrack/internal/errors"
	"github.com/verdantiq/esgtrack/internal/ledger"
	"github.com/verdantiq/esgtrack/internal/require"
)

// Reconciler syncs server task state into the progress ledger.
type Reconciler struct {
	ledger    *ledger.Service
	extractor *require.Extractor
	logger    zerolog.Logger
}

// NewReconciler creates a Reconciler over the given ledger and extractor.
func NewReconciler(svc *ledger.Service, extractor *require.Extractor, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		ledger:    svc,
		extractor: extractor,
		logger:    logger.With().Str("component", "reconcile").Logger(),
	}
}

// Sync reconciles every server task into the ledger and reports whether any
// entry changed. Unknown tasks are initialized; attachment-count divergence
// triggers a wholesale file-list replace; when the server task carries data
// entries, a key-set divergence merges the server's non-empty values in
// (tasks without data entries leave local values untouched). Requirement
// descriptors and the required-file count are refreshed on every pass so
// rule changes propagate.
func (r *Reconciler) Sync(tasks []domain.Task, locations []domain.Location) (bool, error) {
	changed := false

	for i := range tasks {
		task := &tasks[i]
		if task.ID == "" {
			r.logger.Warn().Str("title", task.Title).Msg("skipping task without id")
			continue
		}

		taskChanged, err := r.syncTask(task, locations)
		if err != nil {
			return changed, esgerrors.Wrapf(err, "failed to sync task '%s'", task.ID)
		}
		changed = changed || taskChanged
	}

	r.logger.Info().Int("tasks", len(tasks)).Bool("changed", changed).Msg("reconciliation complete")
	return changed, nil
}

func (r *Reconciler) syncTask(task *domain.Task, locations []domain.Location) (bool, error) {
	reqs := r.extractor.TaskRequirements(task, locations)
	changed := false

	entry, err := r.ledger.Entry(task.ID)
	if err != nil {
		if !stderrors.Is(err, esgerrors.ErrTaskNotFound) {
			return false, err
		}
		if err := r.ledger.InitializeTask(task.ID, ledger.TaskInit{
			Title:         task.Title,
			Category:      task.Category,
			RequiredFiles: reqs.ExpectedFiles,
		}); err != nil {
			return false, err
		}
		changed = true
		if entry, err = r.ledger.Entry(task.ID); err != nil {
			return changed, err
		}
	}

	if err := r.ledger.UpdateDataFields(task.ID, require.Descriptors(reqs.DataFields)); err != nil {
		return changed, err
	}
	if err := r.ledger.UpdateRequiredFiles(task.ID, reqs.ExpectedFiles); err != nil {
		return changed, err
	}

	if len(task.Attachments) != entry.Files.Uploaded {
		r.logger.Debug().
			Str("task_id", task.ID).
			Int("server", len(task.Attachments)).
			Int("local", entry.Files.Uploaded).
			Msg("attachment count diverged, replacing file list")
		if err := r.ledger.ReplaceFiles(task.ID, fileSummaries(task.Attachments, entry.Files.Items)); err != nil {
			return changed, err
		}
		changed = true
	}

	if len(task.DataEntries) > 0 && !sameKeySet(task.DataEntries, entry.DataEntries.Entries) {
		r.logger.Debug().Str("task_id", task.ID).Msg("data entry keys diverged, merging server values")
		if err := r.ledger.MergeDataEntries(task.ID, task.DataEntries); err != nil {
			return changed, err
		}
		changed = true
	}

	return changed, nil
}

// fileSummaries converts server evidence records into ledger file summaries,
// preserving local metadata where the evidence id is already tracked.
func fileSummaries(attachments []domain.Evidence, existing []domain.FileSummary) []domain.FileSummary {
	known := make(map[string]domain.FileSummary, len(existing))
	for _, item := range existing {
		known[item.ID] = item
	}

	items := make([]domain.FileSummary, 0, len(attachments))
	for _, att := range attachments {
		if local, ok := known[att.ID]; ok {
			items = append(items, local)
			continue
		}
		filename := att.OriginalFilename
		if filename == "" {
			filename = att.Title
		}
		items = append(items, domain.FileSummary{
			ID:         att.ID,
			Filename:   filename,
			Size:       att.FileSize,
			UploadedAt: att.UploadedAt,
			Type:       att.AttachmentType,
		})
	}
	return items
}

// sameKeySet reports whether the server's data-entry keys match the ledger's.
func sameKeySet(server map[string]string, local map[string]domain.DataEntry) bool {
	if len(server) != len(local) {
		return false
	}
	for key := range server {
		if _, ok := local[key]; !ok {
			return false
		}
	}
	return true
}
