package tui

import (
	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar wraps the charmbracelet/bubbles progress bar for static
// rendering. Uses a gradient fill with color support, solid fill otherwise.
type ProgressBar struct {
	bar   progress.Model
	width int
}

// NewProgressBar creates a progress bar of the given width.
func NewProgressBar(width int) *ProgressBar {
	var bar progress.Model
	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithScaledGradient("#0087AF", "#00D7FF"),
		)
	} else {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill("#808080"),
		)
	}
	return &ProgressBar{bar: bar, width: width}
}

// Render returns the bar for the given percentage (0.0-1.0).
// Uses ViewAs for static rendering, no animation.
func (pb *ProgressBar) Render(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return pb.bar.ViewAs(percent)
}

// Width returns the configured width.
func (pb *ProgressBar) Width() int {
	return pb.width
}
