package freq

// ─────────────────────────────────────────────────────────────────────────────
// Aggregation Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// These constants control chunking and strategy selection and are based on
// empirical benchmarks across various hardware configurations.

const (
	// DuplicateThreshold is the default minimum global occurrence count for
	// a symbol to be included in the duplicate set.
	DuplicateThreshold = 2

	// DefaultParallelThreshold is the default input length at which scans
	// switch from the sequential fast path to parallel chunked execution.
	// Below this threshold, the overhead of goroutine creation and the
	// merge step exceeds the benefit of extra cores.
	//
	// Empirically determined: 64K symbols is the crossover on most modern
	// multi-core CPUs for map-based counting workloads.
	DefaultParallelThreshold = 65_536

	// ProgressSlabSize is the number of symbols a worker processes between
	// cancellation checks and progress reports. Large enough that the
	// per-slab bookkeeping is invisible in profiles, small enough that
	// cancellation latency stays in the low milliseconds for rune scans.
	ProgressSlabSize = 1 << 20

	// MergeShardCount is the number of lock shards used by the sharded
	// strategy's global count map. Power of two so the shard index reduces
	// to a mask. 32 shards keep contention negligible up to the worker
	// counts of current consumer hardware.
	MergeShardCount = 32

	// CalibrationSize is the input length used by calibration probes.
	// Large enough to measure meaningful differences between strategies,
	// small enough to keep a full calibration run under a minute.
	CalibrationSize = 16 << 20

	// GeneratorAlphabetSize is the alphabet used by the cycling generator
	// ('a' through 'z').
	GeneratorAlphabetSize = 26
)
