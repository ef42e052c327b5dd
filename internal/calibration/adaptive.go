// This file implements adaptive probe-list generation based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/dupscan/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Probe Size Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateProbeSizes generates the list of input lengths at which calibration
// races the sequential scanner against the chunked one. The crossover point
// found in this list becomes the recommended parallel threshold.
//
// The rationale:
// - Single-core: No probe sizes as parallelism has no benefit
// - 2-4 cores: Probe the upper range as goroutine overhead is relatively high
// - 8+ cores: Extend the probe range downward as the crossover moves lower
// - 16+ cores: Include small sizes for very fine-grained parallelism
func GenerateProbeSizes() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		// Single core: sequential always wins, nothing to probe
		return nil

	case numCPU <= 4:
		// Few cores: the crossover sits high
		return []int{32_768, 65_536, 131_072, 262_144, 524_288}

	case numCPU <= 8:
		// Medium core count: broader range
		return []int{16_384, 32_768, 65_536, 131_072, 262_144, 524_288}

	case numCPU <= 16:
		// Many cores: include lower sizes
		return []int{8_192, 16_384, 32_768, 65_536, 131_072, 262_144, 524_288}

	default:
		// High core count (16+): full range down to very small inputs
		return []int{4_096, 8_192, 16_384, 32_768, 65_536, 131_072, 262_144, 524_288}
	}
}

// GenerateQuickProbeSizes generates a smaller set of input lengths for
// quick auto-calibration at startup.
func GenerateQuickProbeSizes() []int {
	numCPU := runtime.NumCPU()

	if numCPU == 1 {
		return nil
	}

	// Reduced set for quick calibration
	switch {
	case numCPU <= 4:
		return []int{65_536, 131_072, 262_144}
	case numCPU <= 8:
		return []int{32_768, 65_536, 131_072, 262_144}
	default:
		return []int{16_384, 32_768, 65_536, 131_072, 262_144}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Worker Count Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateWorkerCounts generates the worker counts to probe at a fixed large
// input: powers of two up to the core count, plus the core count itself when
// it is not a power of two.
func GenerateWorkerCounts() []int {
	numCPU := runtime.NumCPU()

	counts := []int{1}
	for w := 2; w < numCPU; w *= 2 {
		counts = append(counts, w)
	}
	if numCPU > 1 {
		counts = append(counts, numCPU)
	}
	return counts
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Estimation (without benchmarking)
// Delegates to config.EstimateOptimalParallelThreshold; the canonical
// implementation lives there.
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalParallelThreshold delegates to config.EstimateOptimalParallelThreshold.
func EstimateOptimalParallelThreshold() int { return config.EstimateOptimalParallelThreshold() }
