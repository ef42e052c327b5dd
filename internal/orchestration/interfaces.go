//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/progress"
)

// ScanResult encapsulates the outcome of a single duplicate scan.
// It serves as the shared domain type between orchestration and presentation
// layers, facilitating comparison and reporting.
type ScanResult struct {
	// Name is the identifier of the strategy used (e.g., "chunked").
	Name string
	// Set is the aggregated duplicate set. It is nil if an error occurred.
	Set freq.Set
	// Duration is the time taken to complete the scan.
	Duration time.Duration
	// Err contains any error that occurred during the scan.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// InputLen is the length of the scanned sequence, for the summary line.
	InputLen int
	// Threshold is the duplicate threshold the scan ran with.
	Threshold int
	// Verbose enables per-strategy detail output.
	Verbose bool
	// Details enables performance detail output.
	Details bool
}

// ProgressReporter defines the interface for displaying scan progress.
// This interface decouples the orchestration layer from the presentation
// layer; business logic does not depend on UI concerns.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer focuses on coordinating
// the scans.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from scanners.
	//   - numScanners: The number of concurrent scanners being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numScanners int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numScanners int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numScanners int, out io.Writer) {
	f(wg, progressChan, numScanners, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting scan results.
// This interface decouples the orchestration layer from presentation
// concerns, allowing different output formats (CLI, TUI, JSON) without
// modifying the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []ScanResult, out io.Writer)

	// PresentResult displays the final scan result.
	PresentResult(result ScanResult, inputLen, threshold int, verbose, details bool, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles scan errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
