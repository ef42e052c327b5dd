// This file implements dynamic parallel threshold adjustment across scans.

// Package threshold adjusts the sequential/parallel crossover point from
// observed scan timings. The static default is a reasonable guess; repeated
// scans (REPL, server) give enough signal to refine it per machine.
package threshold

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dynamic Threshold Configuration
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DynamicAdjustmentInterval is the number of scans between threshold checks.
	DynamicAdjustmentInterval = 5

	// MinMetricsForAdjustment is the minimum number of metrics needed before adjusting.
	MinMetricsForAdjustment = 3

	// MaxMetricsHistory is the maximum number of metrics to keep for analysis.
	MaxMetricsHistory = 20

	// ParallelSpeedupThreshold is the minimum speedup to favor parallel scans.
	ParallelSpeedupThreshold = 1.1

	// HysteresisMargin prevents oscillating between modes.
	// Threshold must change by at least this factor to trigger adjustment.
	HysteresisMargin = 0.15

	// minParallelThreshold is the floor for the adjusted threshold; below
	// this, goroutine dispatch dominates any conceivable counting work.
	minParallelThreshold = 1024

	// maxCapMultiplier bounds the raised threshold relative to the original.
	maxCapMultiplier = 4
)

// ScanMetric records timing data for one completed scan.
type ScanMetric struct {
	Length       int
	Duration     time.Duration
	UsedParallel bool
}

// DynamicThresholdConfig configures a DynamicThresholdManager.
type DynamicThresholdConfig struct {
	Enabled                  bool
	InitialParallelThreshold int
	AdjustmentInterval       int
}

// ThresholdStats is a snapshot of the manager state for reporting.
type ThresholdStats struct {
	CurrentParallel  int
	OriginalParallel int
	MetricsCollected int
	ScansProcessed   int
}

// DynamicThresholdManager adjusts the parallel threshold across scans based
// on observed performance metrics. Unlike a per-run tuner it is fed from
// wherever scans complete, concurrent server handlers included, so all
// methods are safe for concurrent use.
type DynamicThresholdManager struct {
	mu     sync.RWMutex
	logger zerolog.Logger

	// Current threshold (can be adjusted across scans)
	currentParallelThreshold int

	// Original threshold (for comparison and bounds)
	originalParallelThreshold int

	// Collected metrics - implemented as a Ring Buffer for O(1) ops
	metrics      [MaxMetricsHistory]ScanMetric
	metricsCount int // Total metrics collected (ever)
	metricsHead  int // Index of the next slot to write to

	// Adjustment state
	scanCount          int
	adjustmentInterval int
	lastAdjustment     time.Time
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructor and Configuration
// ─────────────────────────────────────────────────────────────────────────────

// NewDynamicThresholdManager creates a new manager with the given initial threshold.
func NewDynamicThresholdManager(parallelThreshold int) *DynamicThresholdManager {
	return &DynamicThresholdManager{
		logger:                    zerolog.Nop(),
		currentParallelThreshold:  parallelThreshold,
		originalParallelThreshold: parallelThreshold,
		adjustmentInterval:        DynamicAdjustmentInterval,
	}
}

// NewDynamicThresholdManagerFromConfig creates a manager from configuration.
// Returns nil when dynamic adjustment is disabled.
func NewDynamicThresholdManagerFromConfig(cfg DynamicThresholdConfig) *DynamicThresholdManager {
	if !cfg.Enabled {
		return nil
	}

	interval := cfg.AdjustmentInterval
	if interval <= 0 {
		interval = DynamicAdjustmentInterval
	}

	return &DynamicThresholdManager{
		logger:                    zerolog.Nop(),
		currentParallelThreshold:  cfg.InitialParallelThreshold,
		originalParallelThreshold: cfg.InitialParallelThreshold,
		adjustmentInterval:        interval,
	}
}

// SetLogger configures the logger for threshold adjustment events.
func (m *DynamicThresholdManager) SetLogger(l zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = l
}

// ─────────────────────────────────────────────────────────────────────────────
// Metric Recording
// ─────────────────────────────────────────────────────────────────────────────

// RecordScan records timing data for a completed scan.
func (m *DynamicThresholdManager) RecordScan(length int, duration time.Duration, usedParallel bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metrics[m.metricsHead] = ScanMetric{
		Length:       length,
		Duration:     duration,
		UsedParallel: usedParallel,
	}
	m.metricsHead = (m.metricsHead + 1) % MaxMetricsHistory
	m.metricsCount++
	m.scanCount++
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Access
// ─────────────────────────────────────────────────────────────────────────────

// GetParallelThreshold returns the current parallel threshold.
func (m *DynamicThresholdManager) GetParallelThreshold() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentParallelThreshold
}

// SetParallelThreshold overrides the threshold, e.g. from an environment
// variable or a calibration run. The override also becomes the new
// reference point for the adjustment bounds.
func (m *DynamicThresholdManager) SetParallelThreshold(threshold int) {
	if threshold <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentParallelThreshold = threshold
	m.originalParallelThreshold = threshold
}

// ─────────────────────────────────────────────────────────────────────────────
// Adjustment Logic
// ─────────────────────────────────────────────────────────────────────────────

// ShouldAdjust checks if the threshold should be adjusted based on collected
// metrics. Returns the new threshold and whether an adjustment was made.
func (m *DynamicThresholdManager) ShouldAdjust() (newParallel int, adjusted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if we should evaluate adjustments
	if m.scanCount%m.adjustmentInterval != 0 {
		return m.currentParallelThreshold, false
	}

	if m.metricsCount < MinMetricsForAdjustment {
		return m.currentParallelThreshold, false
	}

	newParallel = m.analyzeParallelThreshold()

	// Check if the change is significant enough (hysteresis)
	if !m.significantChange(m.currentParallelThreshold, newParallel) {
		return m.currentParallelThreshold, false
	}

	oldParallel := m.currentParallelThreshold
	m.currentParallelThreshold = newParallel
	m.lastAdjustment = time.Now()
	m.logger.Debug().
		Int("scans", m.scanCount).
		Int("parallel_old", oldParallel).
		Int("parallel_new", m.currentParallelThreshold).
		Msg("parallel threshold adjusted")
	return m.currentParallelThreshold, true
}

// getActiveMetrics returns a slice of valid metrics from the ring buffer.
// Order does not matter for averages, so a wrapped buffer is copied whole.
// Caller must hold the lock.
func (m *DynamicThresholdManager) getActiveMetrics() []ScanMetric {
	count := m.metricsCount
	if count > MaxMetricsHistory {
		count = MaxMetricsHistory
	}
	result := make([]ScanMetric, count)
	copy(result, m.metrics[:count])
	return result
}

// calculateSpeedupRatio returns the speedup ratio of baseline over optimized.
// Returns 0 if either average is non-positive.
func calculateSpeedupRatio(avgOptimized, avgBaseline float64) float64 {
	if avgOptimized <= 0 || avgBaseline <= 0 {
		return 0
	}
	return avgBaseline / avgOptimized
}

// analyzeParallelThreshold partitions recent metrics into parallel and
// sequential groups, compares their per-symbol cost, and returns an
// adjusted threshold. Caller must hold the lock.
func (m *DynamicThresholdManager) analyzeParallelThreshold() int {
	metrics := m.getActiveMetrics()
	if len(metrics) == 0 {
		return m.currentParallelThreshold
	}

	parallel := make([]ScanMetric, 0, len(metrics))
	sequential := make([]ScanMetric, 0, len(metrics))
	for _, metric := range metrics {
		if metric.UsedParallel {
			parallel = append(parallel, metric)
		} else {
			sequential = append(sequential, metric)
		}
	}
	if len(parallel) == 0 || len(sequential) == 0 {
		return m.currentParallelThreshold
	}

	ratio := calculateSpeedupRatio(avgTimePerSymbol(parallel), avgTimePerSymbol(sequential))
	if ratio == 0 {
		return m.currentParallelThreshold
	}

	if ratio > ParallelSpeedupThreshold {
		// Parallel scans are faster, lower the threshold
		newThreshold := m.currentParallelThreshold * 8 / 10
		if newThreshold < minParallelThreshold {
			newThreshold = minParallelThreshold
		}
		return newThreshold
	}
	if ratio < 1.0/ParallelSpeedupThreshold {
		// Parallel scans are slower, raise the threshold
		newThreshold := m.currentParallelThreshold * 12 / 10
		maxCap := m.originalParallelThreshold * maxCapMultiplier
		if newThreshold > maxCap {
			newThreshold = maxCap
		}
		return newThreshold
	}
	return m.currentParallelThreshold
}

// avgTimePerSymbol calculates average time per symbol across metrics.
func avgTimePerSymbol(metrics []ScanMetric) float64 {
	if len(metrics) == 0 {
		return 0
	}

	var totalTime time.Duration
	var totalSymbols int64
	for _, metric := range metrics {
		totalTime += metric.Duration
		totalSymbols += int64(metric.Length)
	}

	if totalSymbols == 0 {
		return 0
	}

	return float64(totalTime.Nanoseconds()) / float64(totalSymbols)
}

// significantChange checks if a threshold change is significant enough to apply.
func (m *DynamicThresholdManager) significantChange(oldVal, newVal int) bool {
	if oldVal == 0 {
		return newVal != 0
	}
	change := float64(newVal-oldVal) / float64(oldVal)
	if change < 0 {
		change = -change
	}
	return change > HysteresisMargin
}

// ─────────────────────────────────────────────────────────────────────────────
// Statistics and Reporting
// ─────────────────────────────────────────────────────────────────────────────

// GetStats returns current statistics about the manager.
func (m *DynamicThresholdManager) GetStats() ThresholdStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := m.metricsCount
	if count > MaxMetricsHistory {
		count = MaxMetricsHistory
	}

	return ThresholdStats{
		CurrentParallel:  m.currentParallelThreshold,
		OriginalParallel: m.originalParallelThreshold,
		MetricsCollected: count,
		ScansProcessed:   m.scanCount,
	}
}

// Reset clears all collected metrics and restores the original threshold.
func (m *DynamicThresholdManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentParallelThreshold = m.originalParallelThreshold
	m.metricsCount = 0
	m.metricsHead = 0
	m.scanCount = 0
}
