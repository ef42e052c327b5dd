package orchestration

import (
	"strings"

	"github.com/agbru/dupscan/internal/freq"
)

// GetScannersToRun determines which scanners should be executed based on
// the strategy selection string. Returns scanners in registration-sorted
// order for consistent, reproducible behavior.
//
// The selection is either "all", a single strategy name, or a
// comma-separated list of names. Unknown names are skipped; validation
// happens at config parse time. The "auto" keyword must be resolved to a
// concrete name by the caller (see SelectStrategyName) before reaching
// this function.
//
// Parameters:
//   - selection: The strategy selection string.
//   - factory: The scanner factory to retrieve implementations from.
//
// Returns:
//   - []freq.Scanner: A slice of scanners to execute, nil if none resolve.
func GetScannersToRun(selection string, factory freq.ScannerFactory) []freq.Scanner {
	if selection == "all" {
		keys := factory.List() // List() returns sorted keys
		scanners := make([]freq.Scanner, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				scanners = append(scanners, s)
			}
		}
		return scanners
	}

	var scanners []freq.Scanner
	seen := make(map[string]bool)
	for _, token := range strings.Split(selection, ",") {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		if s, err := factory.Get(token); err == nil {
			scanners = append(scanners, s)
		}
	}
	return scanners
}

// SelectStrategyName picks the strategy for an "auto" run: sequential for
// inputs below the parallel threshold, chunked at or above it. A
// non-positive threshold falls back to the package default.
//
// Parameters:
//   - inputLen: The length of the sequence about to be scanned.
//   - parallelThreshold: The minimum length for parallel execution.
//
// Returns:
//   - string: The name of the selected strategy.
func SelectStrategyName(inputLen, parallelThreshold int) string {
	if parallelThreshold <= 0 {
		parallelThreshold = freq.DefaultParallelThreshold
	}
	if inputLen < parallelThreshold {
		return "sequential"
	}
	return "chunked"
}
