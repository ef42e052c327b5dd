// Package sysmon provides system-wide CPU and memory usage sampling for
// the dashboard sparklines.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error,
// so an unavailable platform degrades to a flat sparkline instead of failing.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Prime establishes the CPU delta baseline. The first cpu.Percent(0) call
// in a process reports zero; calling Prime before periodic sampling starts
// makes the first real sample meaningful.
func Prime() {
	_, _ = cpu.Percent(0, false)
}
