package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the status badge and key hints at the bottom of the
// dashboard.
type FooterModel struct {
	width  int
	paused bool
	done   bool
	failed bool
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the footer width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetPaused toggles the paused status badge.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// SetDone toggles the done status badge.
func (f *FooterModel) SetDone(done bool) {
	f.done = done
}

// SetError toggles the error status badge.
func (f *FooterModel) SetError(failed bool) {
	f.failed = failed
}

func (f FooterModel) statusBadge() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render(" ERROR ")
	case f.done:
		return statusDoneStyle.Render(" DONE ")
	case f.paused:
		return statusPausedStyle.Render(" PAUSED ")
	default:
		return statusRunningStyle.Render(" RUNNING ")
	}
}

// View renders the footer line.
func (f FooterModel) View() string {
	hints := []struct{ key, desc string }{
		{"q", "quit"},
		{"p", "pause"},
		{"r", "restart"},
		{"?", "help"},
		{"↑/↓", "scroll"},
	}

	var parts []string
	for _, h := range hints {
		parts = append(parts, footerKeyStyle.Render(h.key)+" "+footerDescStyle.Render(h.desc))
	}
	hintBar := strings.Join(parts, footerDescStyle.Render("  •  "))

	badge := f.statusBadge()
	gap := f.width - lipgloss.Width(badge) - lipgloss.Width(hintBar) - 2
	if gap < 1 {
		gap = 1
	}

	return " " + badge + strings.Repeat(" ", gap) + hintBar
}
