package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/dupscan/internal/format"
)

// HeaderModel renders the top bar: title, version, input size, elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	inputLen  int
	width     int
}

// NewHeaderModel creates a header for a scan over inputLen symbols.
func NewHeaderModel(version string, inputLen int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		inputLen:  inputLen,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// elapsed returns the running duration, frozen once SetDone was called.
func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "DupScan Monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}

	segments := []string{titleStyle.Render(titleText)}
	if h.inputLen > 0 {
		segments = append(segments,
			versionStyle.Render(fmt.Sprintf("%s symbols", format.FormatCount(int64(h.inputLen)))))
	}
	segments = append(segments,
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.elapsed()))))

	row := strings.Join(segments, versionStyle.Render(" | "))

	innerWidth := h.width - 2
	if gap := innerWidth - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}

	return headerStyle.Width(h.width).Render(row)
}
