package ledger

import "github.com/verdantiq/esgtrack/internal/domain"

// Recompute rederives an entry's percentage and status from its counts.
// Exposed for the reconciler's server-side fallback, which synthesizes
// entries from server tasks and must match the ledger's math exactly.
func Recompute(entry *domain.TaskEntry) {
	recomputeProgress(entry)
}

// recomputeProgress rederives the entry's overall percentage and status from
// its current file and data counts.
//
// Each dimension contributes a percentage capped at 100 so over-delivery
// (more uploads than required) cannot mask a gap in the other dimension.
// When both dimensions have requirements the overall value is their average;
// with one dimension it stands alone; with none the task is vacuously 100%.
func recomputeProgress(entry *domain.TaskEntry) {
	filesRequired := entry.Files.Required > 0
	dataRequired := requiredFieldCount(entry) > 0

	switch {
	case filesRequired && dataRequired:
		entry.OverallProgress = (filePercent(entry) + dataPercent(entry)) / 2
	case filesRequired:
		entry.OverallProgress = filePercent(entry)
	case dataRequired:
		entry.OverallProgress = dataPercent(entry)
	default:
		entry.OverallProgress = 100
	}

	switch {
	case entry.OverallProgress >= 100:
		entry.Status = domain.EntryStatusCompleted
	case entry.OverallProgress > 0:
		entry.Status = domain.EntryStatusInProgress
	default:
		entry.Status = domain.EntryStatusPending
	}
}

// filePercent returns the file dimension's completion, capped at 100.
func filePercent(entry *domain.TaskEntry) int {
	if entry.Files.Required <= 0 {
		return 0
	}
	pct := entry.Files.Uploaded * 100 / entry.Files.Required
	if pct > 100 {
		pct = 100
	}
	return pct
}

// dataPercent returns the data dimension's completion, capped at 100.
func dataPercent(entry *domain.TaskEntry) int {
	required := requiredFieldCount(entry)
	if required <= 0 {
		return 0
	}
	pct := len(entry.DataEntries.CompletedFields) * 100 / required
	if pct > 100 {
		pct = 100
	}
	return pct
}

// requiredFieldCount counts the required descriptors only; optional fields
// and warning pseudo-fields never gate completion.
func requiredFieldCount(entry *domain.TaskEntry) int {
	var n int
	for _, f := range entry.DataEntries.RequiredFields {
		if f.Required {
			n++
		}
	}
	return n
}
