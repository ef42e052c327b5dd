// This file implements aggregate progress tracking with ETA estimation for
// multi-scanner runs.

package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA bounds the displayed estimate: beyond a day the number carries no
// information the user can act on.
const maxETA = 24 * time.Hour

// ─────────────────────────────────────────────────────────────────────────────
// Progress State
// ─────────────────────────────────────────────────────────────────────────────

// ProgressState tracks the latest progress value reported by each scanner
// and derives the aggregate average.
type ProgressState struct {
	numScanners int
	progresses  []float64
}

// NewProgressState creates a progress state for the given number of scanners.
func NewProgressState(numScanners int) *ProgressState {
	if numScanners < 0 {
		numScanners = 0
	}
	return &ProgressState{
		numScanners: numScanners,
		progresses:  make([]float64, numScanners),
	}
}

// Update records the progress of one scanner, clamped to [0, 1].
// Out-of-range indices are ignored.
func (ps *ProgressState) Update(scannerIndex int, value float64) {
	if scannerIndex < 0 || scannerIndex >= len(ps.progresses) {
		return
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	ps.progresses[scannerIndex] = value
}

// CalculateAverage returns the mean progress across all scanners.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numScanners <= 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numScanners)
}

// ─────────────────────────────────────────────────────────────────────────────
// Progress With ETA
// ─────────────────────────────────────────────────────────────────────────────

// ProgressWithETA extends ProgressState with a completion estimate derived
// from the observed progress rate since the run started.
type ProgressWithETA struct {
	ProgressState *ProgressState

	numScanners  int
	progressRate float64 // fraction of total work per second
	startTime    time.Time
}

// NewProgressWithETA creates an ETA-aware progress tracker for the given
// number of scanners.
func NewProgressWithETA(numScanners int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numScanners),
		numScanners:   numScanners,
		startTime:     time.Now(),
	}
}

// Update records the progress of one scanner without recomputing the rate.
func (p *ProgressWithETA) Update(scannerIndex int, value float64) {
	p.ProgressState.Update(scannerIndex, value)
}

// CalculateAverage returns the mean progress across all scanners.
func (p *ProgressWithETA) CalculateAverage() float64 {
	return p.ProgressState.CalculateAverage()
}

// UpdateWithETA records one scanner's progress and refreshes the rate
// estimate.
//
// Parameters:
//   - scannerIndex: The reporting scanner.
//   - value: Its normalized progress in [0, 1].
//
// Returns:
//   - float64: The aggregate average progress after the update.
//   - time.Duration: The current ETA (0 while still calculating).
func (p *ProgressWithETA) UpdateWithETA(scannerIndex int, value float64) (float64, time.Duration) {
	p.ProgressState.Update(scannerIndex, value)
	avg := p.ProgressState.CalculateAverage()

	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated time to completion based on the current
// average progress and observed rate. Returns 0 when no rate has been
// established yet; the estimate is capped at 24 hours.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.ProgressState.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// ─────────────────────────────────────────────────────────────────────────────
// Rendering
// ─────────────────────────────────────────────────────────────────────────────

// FormatETA renders an ETA for display: "calculating..." until an estimate
// exists, then a compact h/m/s form ("45s", "2m30s", "1h15m").
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	hours := int(eta.Hours())
	minutes := int(eta.Minutes()) % 60
	seconds := int(eta.Seconds()) % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0 && seconds > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// ProgressBar renders a bar of the given length with progress clamped
// to [0, 1].
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	if length <= 0 {
		return ""
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders a progress bar, percentage, and ETA on
// one line for terminal display.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
