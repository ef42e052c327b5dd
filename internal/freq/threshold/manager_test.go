package threshold

import (
	"sync"
	"testing"
	"time"
)

// recordScans feeds count metrics with the given per-symbol cost profile.
func recordScans(m *DynamicThresholdManager, count int, usedParallel bool, perSymbol time.Duration) {
	for i := 0; i < count; i++ {
		length := 1000
		m.RecordScan(length, time.Duration(length)*perSymbol, usedParallel)
	}
}

func TestNewDynamicThresholdManager(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)
	if got := m.GetParallelThreshold(); got != 65536 {
		t.Errorf("GetParallelThreshold() = %d, want 65536", got)
	}

	stats := m.GetStats()
	if stats.OriginalParallel != 65536 {
		t.Errorf("OriginalParallel = %d, want 65536", stats.OriginalParallel)
	}
	if stats.MetricsCollected != 0 || stats.ScansProcessed != 0 {
		t.Errorf("fresh manager has non-zero stats: %+v", stats)
	}
}

func TestNewDynamicThresholdManagerFromConfig(t *testing.T) {
	t.Parallel()

	if m := NewDynamicThresholdManagerFromConfig(DynamicThresholdConfig{Enabled: false}); m != nil {
		t.Error("disabled config should return nil manager")
	}

	m := NewDynamicThresholdManagerFromConfig(DynamicThresholdConfig{
		Enabled:                  true,
		InitialParallelThreshold: 4096,
	})
	if m == nil {
		t.Fatal("enabled config returned nil manager")
	}
	if got := m.GetParallelThreshold(); got != 4096 {
		t.Errorf("GetParallelThreshold() = %d, want 4096", got)
	}
	if m.adjustmentInterval != DynamicAdjustmentInterval {
		t.Errorf("adjustmentInterval = %d, want default %d", m.adjustmentInterval, DynamicAdjustmentInterval)
	}
}

func TestShouldAdjustRequiresInterval(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)

	// 3 scans: enough metrics, but not at the adjustment interval.
	recordScans(m, 3, true, 100*time.Nanosecond)
	if _, adjusted := m.ShouldAdjust(); adjusted {
		t.Error("ShouldAdjust adjusted before reaching the interval")
	}
}

func TestShouldAdjustRequiresMinMetrics(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)
	m.adjustmentInterval = 1

	recordScans(m, 1, true, 100*time.Nanosecond)
	if _, adjusted := m.ShouldAdjust(); adjusted {
		t.Error("ShouldAdjust adjusted with too few metrics")
	}
}

func TestShouldAdjustLowersWhenParallelFaster(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)

	// Parallel scans 10x cheaper per symbol than sequential ones.
	recordScans(m, 3, true, 100*time.Nanosecond)
	recordScans(m, 2, false, 1000*time.Nanosecond)

	newThreshold, adjusted := m.ShouldAdjust()
	if !adjusted {
		t.Fatal("ShouldAdjust did not adjust despite clear parallel speedup")
	}
	want := 65536 * 8 / 10
	if newThreshold != want {
		t.Errorf("new threshold = %d, want %d", newThreshold, want)
	}
	if got := m.GetParallelThreshold(); got != want {
		t.Errorf("GetParallelThreshold() = %d, want %d", got, want)
	}
}

func TestShouldAdjustRaisesWhenParallelSlower(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)

	// Parallel scans 10x more expensive per symbol: dispatch overhead dominating.
	recordScans(m, 3, true, 1000*time.Nanosecond)
	recordScans(m, 2, false, 100*time.Nanosecond)

	newThreshold, adjusted := m.ShouldAdjust()
	if !adjusted {
		t.Fatal("ShouldAdjust did not adjust despite clear parallel slowdown")
	}
	want := 65536 * 12 / 10
	if newThreshold != want {
		t.Errorf("new threshold = %d, want %d", newThreshold, want)
	}
}

func TestShouldAdjustDeadband(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)

	// Identical per-symbol cost: ratio 1.0 sits inside the deadband.
	recordScans(m, 3, true, 100*time.Nanosecond)
	recordScans(m, 2, false, 100*time.Nanosecond)

	newThreshold, adjusted := m.ShouldAdjust()
	if adjusted {
		t.Error("ShouldAdjust adjusted inside the speedup deadband")
	}
	if newThreshold != 65536 {
		t.Errorf("threshold changed to %d inside deadband", newThreshold)
	}
}

func TestShouldAdjustFloorStopsLowering(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(minParallelThreshold)

	recordScans(m, 3, true, 100*time.Nanosecond)
	recordScans(m, 2, false, 1000*time.Nanosecond)

	// Analysis clamps to the floor, which equals the current value, so the
	// hysteresis check rejects the no-op change.
	if _, adjusted := m.ShouldAdjust(); adjusted {
		t.Error("ShouldAdjust adjusted below the floor")
	}
	if got := m.GetParallelThreshold(); got != minParallelThreshold {
		t.Errorf("threshold = %d, want floor %d", got, minParallelThreshold)
	}
}

func TestShouldAdjustCapStopsRaising(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)
	m.adjustmentInterval = 5

	// Drive the threshold upward repeatedly; it must never exceed 4x original.
	for round := 0; round < 20; round++ {
		recordScans(m, 3, true, 1000*time.Nanosecond)
		recordScans(m, 2, false, 100*time.Nanosecond)
		m.ShouldAdjust()
	}
	if got := m.GetParallelThreshold(); got > 65536*maxCapMultiplier {
		t.Errorf("threshold %d exceeds cap %d", got, 65536*maxCapMultiplier)
	}
}

func TestSetParallelThreshold(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)

	m.SetParallelThreshold(8192)
	if got := m.GetParallelThreshold(); got != 8192 {
		t.Errorf("GetParallelThreshold() after override = %d, want 8192", got)
	}
	stats := m.GetStats()
	if stats.OriginalParallel != 8192 {
		t.Errorf("override should rebase the original, got %d", stats.OriginalParallel)
	}

	// Non-positive overrides are ignored.
	m.SetParallelThreshold(0)
	m.SetParallelThreshold(-5)
	if got := m.GetParallelThreshold(); got != 8192 {
		t.Errorf("non-positive override changed threshold to %d", got)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)

	recordScans(m, 3, true, 100*time.Nanosecond)
	recordScans(m, 2, false, 1000*time.Nanosecond)
	if _, adjusted := m.ShouldAdjust(); !adjusted {
		t.Fatal("setup adjustment did not happen")
	}

	m.Reset()
	if got := m.GetParallelThreshold(); got != 65536 {
		t.Errorf("threshold after Reset = %d, want 65536", got)
	}
	stats := m.GetStats()
	if stats.MetricsCollected != 0 || stats.ScansProcessed != 0 {
		t.Errorf("stats not cleared by Reset: %+v", stats)
	}
}

func TestGetStatsCapsMetricsCount(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)

	recordScans(m, MaxMetricsHistory*3, true, 100*time.Nanosecond)
	stats := m.GetStats()
	if stats.MetricsCollected != MaxMetricsHistory {
		t.Errorf("MetricsCollected = %d, want capped at %d", stats.MetricsCollected, MaxMetricsHistory)
	}
	if stats.ScansProcessed != MaxMetricsHistory*3 {
		t.Errorf("ScansProcessed = %d, want %d", stats.ScansProcessed, MaxMetricsHistory*3)
	}
}

// TestConcurrentRecordAndAdjust exercises the manager from many goroutines
// the way the server and REPL do. Run with -race.
func TestConcurrentRecordAndAdjust(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(65536)

	const goroutines = 50
	const scansPerGoroutine = 40

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < scansPerGoroutine; i++ {
				m.RecordScan(1000, time.Millisecond, g%2 == 0)
				m.ShouldAdjust()
				m.GetParallelThreshold()
			}
		}(g)
	}
	wg.Wait()

	stats := m.GetStats()
	if stats.ScansProcessed != goroutines*scansPerGoroutine {
		t.Errorf("ScansProcessed = %d, want %d", stats.ScansProcessed, goroutines*scansPerGoroutine)
	}
	if got := m.GetParallelThreshold(); got < minParallelThreshold || got > 65536*maxCapMultiplier {
		t.Errorf("threshold %d escaped its bounds", got)
	}
}
