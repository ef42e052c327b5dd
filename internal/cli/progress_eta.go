package cli

import (
	"time"

	"github.com/agbru/dupscan/internal/format"
)

// ProgressWithETA is a type alias for format.ProgressWithETA.
// It is kept here for backward compatibility within the CLI package.
type ProgressWithETA = format.ProgressWithETA

// ProgressState is a type alias for format.ProgressState.
type ProgressState = format.ProgressState

// NewProgressWithETA delegates to format.NewProgressWithETA.
func NewProgressWithETA(numScanners int) *ProgressWithETA {
	return format.NewProgressWithETA(numScanners)
}

// NewProgressState delegates to format.NewProgressState.
func NewProgressState(numScanners int) *ProgressState {
	return format.NewProgressState(numScanners)
}

// FormatETA delegates to format.FormatETA.
func FormatETA(eta time.Duration) string {
	return format.FormatETA(eta)
}

// FormatProgressBarWithETA delegates to format.FormatProgressBarWithETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return format.FormatProgressBarWithETA(progress, eta, width)
}
