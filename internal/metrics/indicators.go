package metrics

import (
	"fmt"
	"time"

	"github.com/agbru/dupscan/internal/freq"
)

// Indicators holds derived performance figures for a duplicate scan,
// displayed in the TUI metrics panel and in verbose CLI output.
type Indicators struct {
	// SymbolsPerSecond is the sustained scan throughput.
	SymbolsPerSecond float64
	// SymbolsScanned is the number of symbols covered so far.
	SymbolsScanned int64
	// DuplicatesFound is the size of the reported duplicate set.
	DuplicatesFound int
	// AlphabetCoverage is the share of the generator alphabet reported as
	// duplicates, between 0 and 1.
	AlphabetCoverage float64
	// Live reports whether the figures come from a scan still in progress.
	Live bool
}

// Compute derives post-scan indicators from a completed scan.
//
// Parameters:
//   - set: The duplicate set the scan produced.
//   - inputLen: The number of symbols that were scanned.
//   - duration: The wall time the scan took.
//
// Returns:
//   - *Indicators: The derived figures, or nil if the scan produced no set.
func Compute(set freq.Set, inputLen int, duration time.Duration) *Indicators {
	if set == nil {
		return nil
	}

	var rate float64
	if secs := duration.Seconds(); secs > 0 {
		rate = float64(inputLen) / secs
	}

	return &Indicators{
		SymbolsPerSecond: rate,
		SymbolsScanned:   int64(inputLen),
		DuplicatesFound:  len(set),
		AlphabetCoverage: float64(len(set)) / float64(freq.GeneratorAlphabetSize),
	}
}

// ComputeLive derives indicators for a scan that is still running, based on
// the aggregated average progress across scanners.
//
// Parameters:
//   - inputLen: The total number of symbols being scanned.
//   - avgProgress: Aggregated progress between 0 and 1.
//   - elapsed: Time since the scan started.
//
// Returns:
//   - *Indicators: The live throughput estimate.
func ComputeLive(inputLen int, avgProgress float64, elapsed time.Duration) *Indicators {
	if avgProgress < 0 {
		avgProgress = 0
	}
	if avgProgress > 1 {
		avgProgress = 1
	}

	scanned := int64(avgProgress * float64(inputLen))
	var rate float64
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(scanned) / secs
	}

	return &Indicators{
		SymbolsPerSecond: rate,
		SymbolsScanned:   scanned,
		Live:             true,
	}
}

// FormatSymbolsPerSecond renders a throughput value with a scaled unit.
func FormatSymbolsPerSecond(rate float64) string {
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.2f Gsym/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.2f Msym/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1f Ksym/s", rate/1e3)
	default:
		return fmt.Sprintf("%.0f sym/s", rate)
	}
}
