package tui

import (
	"strings"
	"testing"
	"time"
)

func TestChartModel_AddDataPoint(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddDataPoint(0.20, 0.20, 30*time.Second)
	chart.AddDataPoint(0.40, 0.45, 20*time.Second)
	chart.AddDataPoint(0.90, 0.85, 5*time.Second)

	if chart.averageProgress != 0.85 {
		t.Errorf("averageProgress = %f, want the last reported average 0.85", chart.averageProgress)
	}
	if got := chart.progressHistory.Last(); got != 85.0 {
		t.Errorf("progressHistory.Last() = %f, want 85.0", got)
	}
	if chart.eta != 5*time.Second {
		t.Errorf("eta = %v, want 5s", chart.eta)
	}
}

func TestChartModel_Reset(t *testing.T) {
	chart := NewChartModel()
	chart.AddDataPoint(0.5, 0.5, 10*time.Second)
	chart.UpdateSysStats(25.0, 60.0)
	chart.SetDone(2 * time.Second)

	chart.Reset()

	if chart.averageProgress != 0 {
		t.Errorf("averageProgress = %f after Reset, want 0", chart.averageProgress)
	}
	if chart.done {
		t.Error("done flag survived Reset")
	}
	if chart.progressHistory.Len() != 0 {
		t.Error("progress history not cleared by Reset")
	}
	if chart.cpuHistory.Len() != 0 || chart.memHistory.Len() != 0 {
		t.Error("sparkline histories not cleared by Reset")
	}
}

func TestChartModel_View_Running(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)
	chart.AddDataPoint(0.3, 0.3, 20*time.Second)

	view := chart.View()
	if !strings.Contains(view, "Progress Chart") {
		t.Error("view missing the panel title")
	}
	if !strings.Contains(view, "ETA:") {
		t.Error("view missing the ETA line while a scan is running")
	}
}

func TestChartModel_View_Done(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)
	chart.AddDataPoint(1.0, 1.0, 0)
	chart.SetDone(1500 * time.Millisecond)

	view := chart.View()
	if !strings.Contains(view, "Completed in") {
		t.Error("view missing the completion line after SetDone")
	}
	if strings.Contains(view, "ETA:") {
		t.Error("ETA line still shown after SetDone")
	}
}

func TestChartModel_RenderProgressBar(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)
	chart.AddDataPoint(0.42, 0.42, 10*time.Second)

	bar := chart.renderProgressBar()
	if !strings.Contains(bar, "█") || !strings.Contains(bar, "░") {
		t.Errorf("bar %q should mix filled and empty blocks at 42%%", bar)
	}
	if !strings.Contains(bar, "42.0%") {
		t.Errorf("bar %q missing the percentage", bar)
	}
}

func TestChartModel_RenderProgressBar_Bounds(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddDataPoint(0, 0, 0)
	if bar := chart.renderProgressBar(); strings.Contains(bar, "█") || !strings.Contains(bar, "0.0%") {
		t.Errorf("empty bar rendered wrong: %q", bar)
	}

	chart.AddDataPoint(1.0, 1.0, 0)
	if bar := chart.renderProgressBar(); strings.Contains(bar, "░") || !strings.Contains(bar, "100.0%") {
		t.Errorf("full bar rendered wrong: %q", bar)
	}
}

func TestChartModel_RenderProgressBar_TooNarrow(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(10, 5)

	if bar := chart.renderProgressBar(); bar != "" {
		t.Errorf("bar = %q for a 10-column panel, want empty", bar)
	}
}

func TestChartModel_View_HistoryLine(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(60, 16)

	for i := 1; i <= 20; i++ {
		chart.AddDataPoint(float64(i)/20, float64(i)/20, time.Second)
	}

	// A rising history must produce at least one non-empty braille cell.
	found := false
	for _, r := range chart.View() {
		if r > brailleBase && r <= brailleBase+0xFF {
			found = true
			break
		}
	}
	if !found {
		t.Error("view contains no braille chart cells for a populated history")
	}
}

func TestChartModel_UpdateSysStats(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	chart.UpdateSysStats(12.5, 40.0)
	chart.UpdateSysStats(37.5, 55.0)

	if chart.cpuHistory.Len() != 2 || chart.memHistory.Len() != 2 {
		t.Fatalf("history lengths = %d/%d, want 2/2",
			chart.cpuHistory.Len(), chart.memHistory.Len())
	}
	if chart.cpuHistory.Last() != 37.5 {
		t.Errorf("cpuHistory.Last() = %f, want 37.5", chart.cpuHistory.Last())
	}
	if chart.memHistory.Last() != 55.0 {
		t.Errorf("memHistory.Last() = %f, want 55.0", chart.memHistory.Last())
	}
}

func TestChartModel_View_SparklineVisibility(t *testing.T) {
	chart := NewChartModel()
	chart.UpdateSysStats(50.0, 75.0)

	chart.SetSize(50, 15)
	view := chart.View()
	if !strings.Contains(view, "CPU") || !strings.Contains(view, "MEM") {
		t.Error("sparkline labels missing from a 15-row panel")
	}

	chart.SetSize(50, 8)
	view = chart.View()
	if strings.Contains(view, "CPU") || strings.Contains(view, "MEM") {
		t.Error("sparklines should be dropped below 10 rows")
	}
}

func TestChartModel_SetSize_ResizesBuffers(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	samples := 50 - sparklineReserved
	if chart.cpuHistory.Cap() != samples || chart.memHistory.Cap() != samples {
		t.Errorf("sparkline caps = %d/%d, want %d",
			chart.cpuHistory.Cap(), chart.memHistory.Cap(), samples)
	}
	// Braille cells pack two samples per column.
	if chart.progressHistory.Cap() != samples*2 {
		t.Errorf("progress history cap = %d, want %d", chart.progressHistory.Cap(), samples*2)
	}
}
