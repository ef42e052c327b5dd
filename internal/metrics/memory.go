package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryDelta is the change between two snapshots. Reported after large
// scans in verbose mode so the allocation cost of a strategy is visible.
type MemoryDelta struct {
	AllocatedBytes uint64        // bytes allocated during the interval
	GCRuns         uint32        // GC cycles completed during the interval
	GCPause        time.Duration // GC pause time accumulated during the interval
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// DeltaSince computes the change from an earlier snapshot to this one.
// MemStats counters are cumulative, so the subtraction is safe as long as
// before was taken first in the same process.
func (s MemorySnapshot) DeltaSince(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		AllocatedBytes: s.TotalAlloc - before.TotalAlloc,
		GCRuns:         s.NumGC - before.NumGC,
		GCPause:        time.Duration(s.PauseTotalNs - before.PauseTotalNs),
	}
}
