package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/esgtrack/internal/domain"
)

// countedEntry builds an entry from raw requirement counts, with progress
// and status rederived the same way the service does.
func countedEntry(id string, cat domain.Category, uploaded, requiredFiles, doneFields, requiredFields int) *domain.TaskEntry {
	descriptors := make([]domain.FieldDescriptor, 0, requiredFields)
	completed := make([]string, 0, doneFields)
	for i := 0; i < requiredFields; i++ {
		key := fmt.Sprintf("f%d", i)
		descriptors = append(descriptors, domain.FieldDescriptor{Key: key, Required: true})
		if i < doneFields {
			completed = append(completed, key)
		}
	}
	e := &domain.TaskEntry{
		ID:       id,
		Title:    "Task " + id,
		Category: cat,
		Files:    domain.FileRecord{Required: requiredFiles, Uploaded: uploaded},
		DataEntries: domain.DataRecord{
			RequiredFields:  descriptors,
			CompletedFields: completed,
		},
	}
	Recompute(e)
	return e
}

func entry(id string, cat domain.Category, progress int) *domain.TaskEntry {
	status := domain.EntryStatusPending
	switch {
	case progress >= 100:
		status = domain.EntryStatusCompleted
	case progress > 0:
		status = domain.EntryStatusInProgress
	}
	return &domain.TaskEntry{
		ID:              id,
		Title:           "Task " + id,
		Category:        cat,
		OverallProgress: progress,
		Status:          status,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty ledger reports zero everywhere", func(t *testing.T) {
		summary := Summarize(nil)
		assert.Zero(t, summary.TaskSummary.Total)
		assert.Zero(t, summary.DataProgress.Overall)
		assert.Zero(t, summary.EvidenceProgress.Overall)
		for _, cat := range summaryCategories {
			assert.Zero(t, summary.DataProgress.Categories[cat])
			assert.Zero(t, summary.EvidenceProgress.Categories[cat])
		}
	})

	t.Run("category evidence percent comes from file counts", func(t *testing.T) {
		entries := map[string]*domain.TaskEntry{
			"t1": countedEntry("t1", domain.CategoryEnvironmental, 2, 4, 0, 0),
		}
		summary := Summarize(entries)

		assert.Equal(t, 50, summary.EvidenceProgress.Categories[domain.CategoryEnvironmental])
		assert.Equal(t, 50, summary.EvidenceProgress.Overall)
		assert.Equal(t, 100, summary.DataProgress.Categories[domain.CategoryEnvironmental],
			"no required fields means the data dimension is satisfied")
	})

	t.Run("mixed ledger", func(t *testing.T) {
		entries := map[string]*domain.TaskEntry{
			"t1": countedEntry("t1", domain.CategoryEnvironmental, 2, 4, 0, 0),
			"t2": countedEntry("t2", domain.CategorySocial, 0, 0, 1, 2),
			"t3": countedEntry("t3", domain.CategoryGeneral, 1, 1, 0, 0),
		}
		summary := Summarize(entries)

		assert.Equal(t, 3, summary.TaskSummary.Total)
		assert.Equal(t, 1, summary.TaskSummary.Completed)
		assert.Equal(t, 2, summary.TaskSummary.InProgress)
		assert.Zero(t, summary.TaskSummary.Pending)

		assert.Equal(t, 3, summary.EvidenceProgress.Completed, "general tasks count toward totals")
		assert.Equal(t, 5, summary.EvidenceProgress.Total)
		assert.Equal(t, 60, summary.EvidenceProgress.Overall)

		assert.Equal(t, 1, summary.DataProgress.Completed)
		assert.Equal(t, 2, summary.DataProgress.Total)
		assert.Equal(t, 50, summary.DataProgress.Overall)

		assert.Equal(t, 50, summary.EvidenceProgress.Categories[domain.CategoryEnvironmental])
		assert.Equal(t, 50, summary.DataProgress.Categories[domain.CategorySocial])
		assert.Equal(t, 100, summary.EvidenceProgress.Categories[domain.CategorySocial],
			"no required files means the evidence dimension is satisfied")
		assert.Equal(t, 100, summary.DataProgress.Categories[domain.CategoryGovernance])
		assert.Equal(t, 100, summary.EvidenceProgress.Categories[domain.CategoryGovernance])
	})

	t.Run("percentages round to the nearest whole", func(t *testing.T) {
		entries := map[string]*domain.TaskEntry{
			"t1": countedEntry("t1", domain.CategoryEnvironmental, 1, 3, 2, 3),
		}
		summary := Summarize(entries)
		assert.Equal(t, 33, summary.EvidenceProgress.Overall)
		assert.Equal(t, 67, summary.DataProgress.Overall)
	})
}

func TestRecommend(t *testing.T) {
	t.Run("empty ledger prompts a sync", func(t *testing.T) {
		steps := Recommend(nil)
		require.Len(t, steps, 1)
		assert.Equal(t, "No active tasks", steps[0].Title)
		assert.False(t, steps[0].Celebratory)
	})

	t.Run("all complete yields a celebratory entry", func(t *testing.T) {
		entries := map[string]*domain.TaskEntry{
			"t1": entry("t1", domain.CategoryEnvironmental, 100),
			"t2": entry("t2", domain.CategorySocial, 100),
		}
		steps := Recommend(entries)
		require.Len(t, steps, 1)
		assert.True(t, steps[0].Celebratory)
		assert.Equal(t, 100, steps[0].Progress)
	})

	t.Run("least complete first, at most three", func(t *testing.T) {
		entries := map[string]*domain.TaskEntry{
			"t1": entry("t1", domain.CategoryGovernance, 75),
			"t2": entry("t2", domain.CategorySocial, 10),
			"t3": entry("t3", domain.CategoryEnvironmental, 40),
			"t4": entry("t4", domain.CategoryGeneral, 90),
			"t5": entry("t5", domain.CategoryEnvironmental, 100),
		}
		steps := Recommend(entries)
		require.Len(t, steps, 3)
		assert.Equal(t, "t2", steps[0].TaskID)
		assert.Equal(t, "t3", steps[1].TaskID)
		assert.Equal(t, "t1", steps[2].TaskID)
	})

	t.Run("category priority breaks progress ties", func(t *testing.T) {
		entries := map[string]*domain.TaskEntry{
			"gov": entry("gov", domain.CategoryGovernance, 30),
			"soc": entry("soc", domain.CategorySocial, 30),
			"env": entry("env", domain.CategoryEnvironmental, 30),
		}
		steps := Recommend(entries)
		require.Len(t, steps, 3)
		assert.Equal(t, "env", steps[0].TaskID)
		assert.Equal(t, "soc", steps[1].TaskID)
		assert.Equal(t, "gov", steps[2].TaskID)
	})
}

func TestStepDetail(t *testing.T) {
	e := &domain.TaskEntry{
		Files: domain.FileRecord{Required: 2, Uploaded: 1},
		DataEntries: domain.DataRecord{
			RequiredFields:  []domain.FieldDescriptor{{Key: "r", Required: true}},
			CompletedFields: []string{},
		},
	}
	assert.Contains(t, stepDetail(e), "documents")
	assert.Contains(t, stepDetail(e), "data fields")

	e.DataEntries.CompletedFields = []string{"r"}
	assert.Equal(t, "Upload the remaining required documents.", stepDetail(e))
}
