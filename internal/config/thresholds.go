package config

import (
	"math"
	"runtime"
	"strings"
	"time"
)

// Parallel threshold resolution chain (highest priority first):
//   1. CLI flag (-parallel-threshold)
//   2. Environment variable (DUPSCAN_PARALLEL_THRESHOLD)
//   3. Adaptive hardware estimation (this file)
//   4. Static default in freq/constants.go

// ApplyAdaptiveThresholds adjusts the configuration thresholds based on
// hardware characteristics (CPU cores) when default values are detected.
// This provides automatic performance tuning without requiring explicit
// calibration.
//
// The function only modifies thresholds that are set to their zero default,
// preserving any user-specified overrides via command-line flags or
// environment variables.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of the
// input length at which parallel strategies start beating the sequential
// scan, without running benchmarks. This can be used as a fallback or as
// a starting point for calibration.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return math.MaxInt // Parallelism never wins on a single core
	case numCPU <= 2:
		return 262144 // High threshold - goroutine overhead is significant
	case numCPU <= 4:
		return 131072
	case numCPU <= 8:
		return 65536 // Default crossover on common desktop hardware
	case numCPU <= 16:
		return 49152
	default:
		return 32768 // High core count - aggressive parallelism
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Flagless Tunables
// ─────────────────────────────────────────────────────────────────────────────
//
// Operational knobs that have no dedicated CLI flag. They are read from the
// environment at use time; sensible defaults apply when unset.

// ServerScanLimit returns the maximum number of concurrently admitted scan
// requests for the HTTP server (DUPSCAN_SERVER_SCAN_LIMIT). Defaults to the
// CPU count; values below 1 fall back to the default.
func ServerScanLimit() int64 {
	limit := getEnvInt("SERVER_SCAN_LIMIT", runtime.NumCPU())
	if limit < 1 {
		limit = runtime.NumCPU()
	}
	return int64(limit)
}

// ServerShutdownGrace returns the graceful shutdown window for the HTTP
// server (DUPSCAN_SHUTDOWN_GRACE). Defaults to 5s.
func ServerShutdownGrace() time.Duration {
	grace := getEnvDuration("SHUTDOWN_GRACE", 5*time.Second)
	if grace <= 0 {
		grace = 5 * time.Second
	}
	return grace
}

// CORSAllowedOrigins returns the comma-separated CORS origin allowlist for
// the HTTP server (DUPSCAN_CORS_ORIGINS). Defaults to "*".
func CORSAllowedOrigins() []string {
	raw := getEnvString("CORS_ORIGINS", "*")
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

// DynamicThresholdEnabled reports whether the runtime parallel-threshold
// manager should adjust thresholds from observed scan timings
// (DUPSCAN_DYNAMIC_THRESHOLD). Defaults to true.
func DynamicThresholdEnabled() bool {
	return getEnvBool("DYNAMIC_THRESHOLD", true)
}
