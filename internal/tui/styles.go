// Package tui provides terminal output components for esgtrack.
//
// All colors use AdaptiveColor for light/dark terminal support. Status
// displays keep triple redundancy (icon + color + text) so state remains
// readable in NO_COLOR mode.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/verdantiq/esgtrack/internal/domain"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for active states and primary values.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for completed items.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for attention-required items.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failures.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Title:   lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns false when NO_COLOR is set (any value, including
// empty, per https://no-color.org/) or TERM=dumb.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// StatusColors returns the semantic colors for ledger entry statuses.
func StatusColors() map[domain.EntryStatus]lipgloss.AdaptiveColor {
	return map[domain.EntryStatus]lipgloss.AdaptiveColor{
		domain.EntryStatusPending:    ColorMuted,
		domain.EntryStatusInProgress: ColorPrimary,
		domain.EntryStatusCompleted:  ColorSuccess,
	}
}

// StatusIcon returns the icon for a ledger entry status.
func StatusIcon(status domain.EntryStatus) string {
	switch status {
	case domain.EntryStatusCompleted:
		return "✓"
	case domain.EntryStatusInProgress:
		return "●"
	default:
		return "○"
	}
}

// CategoryColors returns the semantic colors for ESG categories.
func CategoryColors() map[domain.Category]lipgloss.AdaptiveColor {
	return map[domain.Category]lipgloss.AdaptiveColor{
		domain.CategoryEnvironmental: ColorSuccess,
		domain.CategorySocial:        ColorPrimary,
		domain.CategoryGovernance:    ColorWarning,
		domain.CategoryGeneral:       ColorMuted,
	}
}
