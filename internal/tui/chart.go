package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/dupscan/internal/format"
)

// sparklineReserved is the horizontal space taken by the sparkline label
// and panel chrome; history buffers hold one sample per remaining column.
const sparklineReserved = 17

// ChartModel renders scan progress over time plus system load sparklines.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
	done            bool
	finalDuration   time.Duration
	width           int
	height          int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(1),
		cpuHistory:      NewRingBuffer(1),
		memHistory:      NewRingBuffer(1),
	}
}

// SetSize updates dimensions and resizes the history buffers so one sample
// maps to one chart column.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	samples := w - sparklineReserved
	if samples < 1 {
		samples = 1
	}
	c.progressHistory.Resize(samples * 2) // braille packs two samples per column
	c.cpuHistory.Resize(samples)
	c.memHistory.Resize(samples)
}

// AddDataPoint records a progress update.
func (c *ChartModel) AddDataPoint(value, average float64, eta time.Duration) {
	c.averageProgress = average
	c.eta = eta
	c.progressHistory.Push(average * 100)
}

// UpdateSysStats records a CPU/memory sample for the sparklines.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the chart with the final duration.
func (c *ChartModel) SetDone(duration time.Duration) {
	c.done = true
	c.finalDuration = duration
}

// Reset clears all recorded data.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.finalDuration = 0
	c.progressHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the overall progress as a block bar with a
// percentage. Returns "" when the panel is too narrow for a useful bar.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 14
	if barWidth < 10 {
		return ""
	}

	filled := int(c.averageProgress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf(" %s %5.1f%%", bar, c.averageProgress*100)
}

// renderHistory renders the progress history as a braille line chart.
func (c ChartModel) renderHistory(rows int) []string {
	if rows <= 0 {
		return nil
	}
	cols := c.width - 6
	if cols < 4 {
		return nil
	}
	lines := RenderBrailleChart(c.progressHistory.Slice(), cols, rows)
	for i, line := range lines {
		lines[i] = " " + chartBarStyle.Render(line)
	}
	return lines
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var rows []string

	title := metricLabelStyle.Render(" Progress Chart")
	rows = append(rows, title)

	if c.done {
		rows = append(rows, " "+statusDoneStyle.Render(
			fmt.Sprintf("Completed in %s", format.FormatExecutionDuration(c.finalDuration))))
	} else {
		rows = append(rows, fmt.Sprintf(" %s %s",
			metricLabelStyle.Render("ETA:"),
			metricValueStyle.Render(format.FormatETA(c.eta))))
	}

	if bar := c.renderProgressBar(); bar != "" {
		rows = append(rows, bar)
	}

	innerHeight := c.height - 2
	showSparklines := c.height >= 10

	sparkRows := 0
	if showSparklines {
		sparkRows = 2
	}
	historyRows := innerHeight - len(rows) - sparkRows - 1
	if historyRows > 0 && c.progressHistory.Len() > 0 {
		rows = append(rows, c.renderHistory(historyRows)...)
	}

	if showSparklines {
		rows = append(rows,
			fmt.Sprintf(" %s %s",
				metricLabelStyle.Render("CPU"),
				cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice()))),
			fmt.Sprintf(" %s %s",
				metricLabelStyle.Render("MEM"),
				memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice()))))
	}

	return panelStyle.
		Width(c.width - 2).
		Height(innerHeight).
		Render(strings.Join(rows, "\n"))
}
