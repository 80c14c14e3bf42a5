package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verdantiq/esgtrack/internal/domain"
	"github.com/verdantiq/esgtrack/internal/ledger"
)

const (
	barWidth      = 30
	maxTitleWidth = 48
)

// categoryOrder fixes the display order of the ESG axes in the summary
// breakdown. General tasks count toward the overall bars only.
//
//nolint:gochecknoglobals // Static ordering table
var categoryOrder = []domain.Category{
	domain.CategoryEnvironmental,
	domain.CategorySocial,
	domain.CategoryGovernance,
}

// RenderSummary renders the dashboard summary: evidence and data-entry
// progress bars, task status counts and the per-axis breakdown.
func RenderSummary(summary ledger.Summary) string {
	styles := NewOutputStyles()
	bar := NewProgressBar(barWidth)
	var b strings.Builder

	b.WriteString(styles.Title.Render("Compliance Progress"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %-10s %s %3d%%  %s\n",
		"Evidence",
		bar.Render(float64(summary.EvidenceProgress.Overall)/100),
		summary.EvidenceProgress.Overall,
		styles.Dim.Render(fmt.Sprintf("(%d/%d files)", summary.EvidenceProgress.Completed, summary.EvidenceProgress.Total)),
	))
	b.WriteString(fmt.Sprintf("  %-10s %s %3d%%  %s\n\n",
		"Data entry",
		bar.Render(float64(summary.DataProgress.Overall)/100),
		summary.DataProgress.Overall,
		styles.Dim.Render(fmt.Sprintf("(%d/%d fields)", summary.DataProgress.Completed, summary.DataProgress.Total)),
	))

	b.WriteString(fmt.Sprintf("  %s  %s  %s\n\n",
		styles.Success.Render(fmt.Sprintf("✓ %d completed", summary.TaskSummary.Completed)),
		styles.Info.Render(fmt.Sprintf("● %d in progress", summary.TaskSummary.InProgress)),
		styles.Dim.Render(fmt.Sprintf("○ %d pending", summary.TaskSummary.Pending)),
	))

	colors := CategoryColors()
	for _, cat := range categoryOrder {
		label := lipgloss.NewStyle().Foreground(colors[cat]).Render(padCategory(cat))
		b.WriteString(fmt.Sprintf("  %s evidence %3d%%  data %3d%%\n",
			label,
			summary.EvidenceProgress.Categories[cat],
			summary.DataProgress.Categories[cat],
		))
	}

	return b.String()
}

// RenderNextSteps renders the recommendation list.
func RenderNextSteps(steps []ledger.NextStep) string {
	styles := NewOutputStyles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Next Steps"))
	b.WriteString("\n\n")

	for i, step := range steps {
		if step.Celebratory {
			b.WriteString("  " + styles.Success.Render("🎉 "+step.Title) + "\n")
			b.WriteString("     " + styles.Dim.Render(step.Detail) + "\n")
			continue
		}
		title := runewidth.Truncate(step.Title, maxTitleWidth, "…")
		b.WriteString(fmt.Sprintf("  %d. %s", i+1, styles.Info.Render(title)))
		if step.TaskID != "" {
			b.WriteString(styles.Dim.Render(fmt.Sprintf("  [%s, %d%%]", step.TaskID, step.Progress)))
		}
		b.WriteString("\n     " + styles.Dim.Render(step.Detail) + "\n")
	}

	return b.String()
}

// RenderTaskList renders ledger entries as a compact table, most recently
// updated first.
func RenderTaskList(entries map[string]*domain.TaskEntry) string {
	styles := NewOutputStyles()
	statusColors := StatusColors()

	sorted := make([]*domain.TaskEntry, 0, len(entries))
	for _, entry := range entries {
		sorted = append(sorted, entry)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].LastUpdated.Equal(sorted[j].LastUpdated) {
			return sorted[i].LastUpdated.After(sorted[j].LastUpdated)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var b strings.Builder
	b.WriteString(styles.Title.Render("Tracked Tasks"))
	b.WriteString("\n\n")
	if len(sorted) == 0 {
		b.WriteString("  " + styles.Dim.Render("No tasks tracked yet. Run 'esgtrack sync' first.") + "\n")
		return b.String()
	}

	for _, entry := range sorted {
		statusStyle := lipgloss.NewStyle().Foreground(statusColors[entry.Status])
		title := runewidth.Truncate(entry.Title, maxTitleWidth, "…")
		b.WriteString(fmt.Sprintf("  %s %-*s %3d%%  %s\n",
			statusStyle.Render(StatusIcon(entry.Status)),
			maxTitleWidth, title,
			entry.OverallProgress,
			styles.Dim.Render(fmt.Sprintf("files %d/%d  %s", entry.Files.Uploaded, entry.Files.Required, entry.ID)),
		))
	}

	return b.String()
}

// RenderRequirements renders the derived requirements for one task.
func RenderRequirements(task *domain.Task, reqs domain.Requirements) string {
	styles := NewOutputStyles()
	var b strings.Builder

	b.WriteString(styles.Title.Render(runewidth.Truncate(task.Title, maxTitleWidth+16, "…")))
	b.WriteString("\n\n")

	b.WriteString(styles.Info.Render(fmt.Sprintf("Data Fields (%d required)", reqs.ExpectedDataFields)))
	b.WriteString("\n")
	for _, field := range reqs.DataFields {
		switch {
		case field.Type == domain.FieldTypeWarning:
			b.WriteString("  " + styles.Warning.Render("⚠ "+field.Message) + "\n")
		case field.Required:
			b.WriteString(fmt.Sprintf("  • %s%s  %s\n", field.Label, unitSuffix(field), styles.Dim.Render(field.Key)))
		default:
			b.WriteString("  " + styles.Dim.Render(fmt.Sprintf("◦ %s%s (optional)  %s", field.Label, unitSuffix(field), field.Key)) + "\n")
		}
		if field.Sublabel != "" {
			b.WriteString("    " + styles.Dim.Render(field.Sublabel) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Info.Render(fmt.Sprintf("Documents (%d required)", reqs.ExpectedFiles)))
	b.WriteString("\n")
	for _, doc := range reqs.Documents {
		marker := "•"
		line := fmt.Sprintf("%s %s  %s", marker, doc.Description, doc.FileTypes)
		if doc.Required {
			b.WriteString("  " + line + "  " + styles.Dim.Render(doc.Key) + "\n")
		} else {
			b.WriteString("  " + styles.Dim.Render("◦ "+doc.Description+" (optional)  "+doc.FileTypes+"  "+doc.Key) + "\n")
		}
	}

	return b.String()
}

// unitSuffix formats the unit hint for a data field label.
func unitSuffix(field domain.DataField) string {
	if field.Unit == "" {
		return ""
	}
	return " (" + field.Unit + ")"
}

// padCategory right-pads a category name to a fixed display column.
func padCategory(cat domain.Category) string {
	return fmt.Sprintf("%-13s", cat.String())
}
