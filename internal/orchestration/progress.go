package orchestration

import (
	"time"

	"github.com/agbru/dupscan/internal/format"
	"github.com/agbru/dupscan/internal/progress"
)

// ProgressAggregator manages multi-scanner progress aggregation.
// It wraps format.ProgressWithETA and provides a higher-level API
// for consuming progress updates from a channel. Both CLI and TUI
// use this to avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state       *format.ProgressWithETA
	numScanners int
}

// NewProgressAggregator creates a new aggregator for the given number
// of scanners. Returns nil if numScanners <= 0.
func NewProgressAggregator(numScanners int) *ProgressAggregator {
	if numScanners <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:       format.NewProgressWithETA(numScanners),
		numScanners: numScanners,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// ScannerIndex is the index of the scanner that sent the update.
	ScannerIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all scanners.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.ScannerIndex, update.Value)
	return AggregatedProgress{
		ScannerIndex:    update.ScannerIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumScanners returns the number of scanners being tracked.
func (a *ProgressAggregator) NumScanners() int {
	return a.numScanners
}

// IsMultiScanner returns true if tracking more than one scanner.
func (a *ProgressAggregator) IsMultiScanner() bool {
	return a.numScanners > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numScanners <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
