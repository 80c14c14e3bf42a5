package ledger

import (
	"math"
	"sort"

	"github.com/verdantiq/esgtrack/internal/domain"
)

// DimensionProgress aggregates one completion dimension, either uploaded
// files or filled data fields, across all entries.
type DimensionProgress struct {
	// Overall is the whole-ledger completion percentage for this dimension.
	Overall int `json:"overall"`

	// Completed and Total are the summed counts behind Overall.
	Completed int `json:"completed"`
	Total     int `json:"total"`

	// Categories holds the percentage per ESG axis. An axis with no
	// requirements reports 100%: nothing required means nothing outstanding.
	Categories map[domain.Category]int `json:"categories"`
}

// TaskCounts tallies entries by derived status.
type TaskCounts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
}

// Summary is the dashboard-level aggregation over all ledger entries.
// File and data-field completion are reported separately so the dashboard
// can show evidence collection and data entry as independent dimensions.
type Summary struct {
	DataProgress     DimensionProgress `json:"data_progress"`
	EvidenceProgress DimensionProgress `json:"evidence_progress"`
	TaskSummary      TaskCounts        `json:"task_summary"`
}

// NextStep is one actionable recommendation for the dashboard.
type NextStep struct {
	TaskID   string          `json:"task_id,omitempty"`
	Title    string          `json:"title"`
	Detail   string          `json:"detail"`
	Category domain.Category `json:"category,omitempty"`
	Progress int             `json:"progress"`

	// Celebratory marks the terminal all-done recommendation.
	Celebratory bool `json:"celebratory,omitempty"`
}

// summaryCategories fixes the ESG axes a summary breaks down by. Tasks in
// the general (or an unknown) category count toward overall totals only.
//
//nolint:gochecknoglobals // Static ordering table
var summaryCategories = []domain.Category{
	domain.CategoryEnvironmental,
	domain.CategorySocial,
	domain.CategoryGovernance,
}

// categoryRank orders recommendations among equally incomplete tasks.
// Environmental obligations surface first, then social, then governance.
//
//nolint:gochecknoglobals // Static ordering table
var categoryRank = map[domain.Category]int{
	domain.CategoryEnvironmental: 0,
	domain.CategorySocial:        1,
	domain.CategoryGovernance:    2,
	domain.CategoryGeneral:       3,
}

// ProgressSummary aggregates the current ledger into dashboard totals with
// a per-category breakdown.
func (s *Service) ProgressSummary() Summary {
	return Summarize(s.Log().Tasks)
}

// Summarize aggregates a set of entries into dashboard totals. Exposed so
// the reconciler's server-side fallback can produce numerically identical
// results from synthesized entries.
//
// An empty ledger reports zero everywhere, including per-category. With
// entries present, a dimension or axis with zero requirements reports
// 100%, never 0/0.
func Summarize(entries map[string]*domain.TaskEntry) Summary {
	summary := Summary{
		DataProgress:     DimensionProgress{Categories: zeroCategoryPercents()},
		EvidenceProgress: DimensionProgress{Categories: zeroCategoryPercents()},
	}
	if len(entries) == 0 {
		return summary
	}

	type tally struct{ completed, total int }
	dataByCat := make(map[domain.Category]*tally, len(summaryCategories))
	evidenceByCat := make(map[domain.Category]*tally, len(summaryCategories))
	for _, cat := range summaryCategories {
		dataByCat[cat] = &tally{}
		evidenceByCat[cat] = &tally{}
	}

	for _, entry := range entries {
		requiredFields := requiredFieldCount(entry)
		completedFields := len(entry.DataEntries.CompletedFields)

		summary.DataProgress.Completed += completedFields
		summary.DataProgress.Total += requiredFields
		summary.EvidenceProgress.Completed += entry.Files.Uploaded
		summary.EvidenceProgress.Total += entry.Files.Required

		summary.TaskSummary.Total++
		switch entry.Status {
		case domain.EntryStatusCompleted:
			summary.TaskSummary.Completed++
		case domain.EntryStatusInProgress:
			summary.TaskSummary.InProgress++
		default:
			summary.TaskSummary.Pending++
		}

		// The per-axis breakdown covers the three ESG axes; general and
		// unknown categories still count toward the overall totals.
		if data, ok := dataByCat[entry.Category]; ok {
			data.completed += completedFields
			data.total += requiredFields
			evidence := evidenceByCat[entry.Category]
			evidence.completed += entry.Files.Uploaded
			evidence.total += entry.Files.Required
		}
	}

	summary.DataProgress.Overall = percentOf(summary.DataProgress.Completed, summary.DataProgress.Total)
	summary.EvidenceProgress.Overall = percentOf(summary.EvidenceProgress.Completed, summary.EvidenceProgress.Total)
	for _, cat := range summaryCategories {
		summary.DataProgress.Categories[cat] = percentOf(dataByCat[cat].completed, dataByCat[cat].total)
		summary.EvidenceProgress.Categories[cat] = percentOf(evidenceByCat[cat].completed, evidenceByCat[cat].total)
	}

	return summary
}

// zeroCategoryPercents builds the per-axis map with every axis at zero.
func zeroCategoryPercents() map[domain.Category]int {
	percents := make(map[domain.Category]int, len(summaryCategories))
	for _, cat := range summaryCategories {
		percents[cat] = 0
	}
	return percents
}

// percentOf rounds completed/total to a whole percentage. A zero total is
// fully satisfied.
func percentOf(completed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// NextSteps recommends up to three tasks to work on next, least complete
// first. When every tracked task is complete a single celebratory entry is
// returned so the dashboard always has something to show.
func (s *Service) NextSteps() []NextStep {
	return Recommend(s.Log().Tasks)
}

// Recommend derives next-step recommendations from a set of entries.
func Recommend(entries map[string]*domain.TaskEntry) []NextStep {
	if len(entries) == 0 {
		return []NextStep{{
			Title:    "No active tasks",
			Detail:   "Sync with the compliance platform to pull your assigned tasks.",
			Progress: 0,
		}}
	}

	var open []*domain.TaskEntry
	for _, entry := range entries {
		if entry.Status != domain.EntryStatusCompleted {
			open = append(open, entry)
		}
	}

	if len(open) == 0 {
		return []NextStep{{
			Title:       "All tasks complete",
			Detail:      "Great work. Every tracked task has all required evidence and data.",
			Progress:    100,
			Celebratory: true,
		}}
	}

	sort.Slice(open, func(i, j int) bool {
		if open[i].OverallProgress != open[j].OverallProgress {
			return open[i].OverallProgress < open[j].OverallProgress
		}
		ri := categoryRank[normalizeCategory(open[i].Category)]
		rj := categoryRank[normalizeCategory(open[j].Category)]
		if ri != rj {
			return ri < rj
		}
		return open[i].ID < open[j].ID
	})

	if len(open) > 3 {
		open = open[:3]
	}

	steps := make([]NextStep, 0, len(open))
	for _, entry := range open {
		steps = append(steps, NextStep{
			TaskID:   entry.ID,
			Title:    entry.Title,
			Detail:   stepDetail(entry),
			Category: normalizeCategory(entry.Category),
			Progress: entry.OverallProgress,
		})
	}
	return steps
}

// stepDetail phrases what is still missing for an open entry.
func stepDetail(entry *domain.TaskEntry) string {
	missingFiles := entry.Files.Required - entry.Files.Uploaded
	missingFields := requiredFieldCount(entry) - len(entry.DataEntries.CompletedFields)

	switch {
	case missingFiles > 0 && missingFields > 0:
		return "Upload the remaining documents and fill in the outstanding data fields."
	case missingFiles > 0:
		return "Upload the remaining required documents."
	case missingFields > 0:
		return "Fill in the outstanding data fields."
	default:
		return "Review and finish this task."
	}
}

// normalizeCategory maps unknown categories onto the catch-all axis.
func normalizeCategory(cat domain.Category) domain.Category {
	if _, ok := categoryRank[cat]; ok {
		return cat
	}
	return domain.CategoryGeneral
}
