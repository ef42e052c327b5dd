package tui

import (
	"time"

	"github.com/agbru/dupscan/internal/metrics"
	"github.com/agbru/dupscan/internal/orchestration"
)

// Messages passed through the bubbletea event loop. Scan goroutines never
// touch the model directly; everything arrives as one of these.

// ProgressMsg carries a single aggregated progress update from a scanner.
type ProgressMsg struct {
	ScannerIndex    int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel has been closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-strategy results of a comparison run.
type ComparisonResultsMsg struct {
	Results []orchestration.ScanResult
}

// FinalResultMsg carries the elected scan result and its display options.
type FinalResultMsg struct {
	Result    orchestration.ScanResult
	InputLen  int
	Threshold int
	Verbose   bool
	Details   bool
}

// IndicatorsMsg carries derived performance figures for the metrics panel.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
}

// ErrorMsg carries a terminal scan error.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh (elapsed time, stat sampling).
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU/memory sample for the sparklines.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ScanCompleteMsg signals that the orchestration finished and carries the
// process exit code. Generation guards against messages from a scan that
// was cancelled by a restart.
type ScanCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the scan context was cancelled
// (timeout or signal).
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
