package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdantiq/esgtrack/internal/domain"
)

func TestHasColorSupport(t *testing.T) {
	t.Run("NO_COLOR disables color even when empty", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.False(t, HasColorSupport())
	})

	t.Run("dumb terminal disables color", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.False(t, HasColorSupport())
	})
}

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, "✓", StatusIcon(domain.EntryStatusCompleted))
	assert.Equal(t, "●", StatusIcon(domain.EntryStatusInProgress))
	assert.Equal(t, "○", StatusIcon(domain.EntryStatusPending))
}

func TestRenderSummaryIncludesCategories(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out := RenderSummary(sampleSummary())
	assert.Contains(t, out, "environmental")
	assert.Contains(t, out, "governance")
	assert.Contains(t, out, "1 completed")
	assert.Contains(t, out, "(5/8 files)")
	assert.Contains(t, out, "(2/5 fields)")
}
