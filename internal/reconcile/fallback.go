package reconcile

import (
	"strings"

	"github.com/verdantiq/esgtrack/internal/domain"
	"github.com/verdantiq/esgtrack/internal/ledger"
	"github.com/verdantiq/esgtrack/internal/require"
)

// FallbackSummary computes the dashboard summary directly from server tasks,
// without consulting the ledger. Used when no ledger document exists yet,
// e.g. on a fresh machine before the first sync has persisted anything.
// It synthesizes an entry per task with the same extraction rules and
// progress math the ledger uses, so both paths agree numerically.
func (r *Reconciler) FallbackSummary(tasks []domain.Task, locations []domain.Location) ledger.Summary {
	return ledger.Summarize(r.synthesize(tasks, locations))
}

// FallbackNextSteps derives next-step recommendations directly from server
// tasks, mirroring FallbackSummary.
func (r *Reconciler) FallbackNextSteps(tasks []domain.Task, locations []domain.Location) []ledger.NextStep {
	return ledger.Recommend(r.synthesize(tasks, locations))
}

// synthesize builds in-memory ledger entries from server task state.
func (r *Reconciler) synthesize(tasks []domain.Task, locations []domain.Location) map[string]*domain.TaskEntry {
	entries := make(map[string]*domain.TaskEntry, len(tasks))

	for i := range tasks {
		task := &tasks[i]
		if task.ID == "" {
			continue
		}
		reqs := r.extractor.TaskRequirements(task, locations)
		descriptors := require.Descriptors(reqs.DataFields)

		var completed []string
		for _, desc := range descriptors {
			if !desc.Required {
				continue
			}
			if strings.TrimSpace(task.DataEntries[desc.Key]) != "" {
				completed = append(completed, desc.Key)
			}
		}

		entry := &domain.TaskEntry{
			ID:       task.ID,
			Title:    task.Title,
			Category: task.Category,
			Files: domain.FileRecord{
				Required: reqs.ExpectedFiles,
				Uploaded: len(task.Attachments),
			},
			DataEntries: domain.DataRecord{
				RequiredFields:  descriptors,
				CompletedFields: completed,
			},
		}
		ledger.Recompute(entry)
		entries[task.ID] = entry
	}

	return entries
}
