package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/dupscan/internal/ui"
)

// renderHelpOverlay renders the help overlay centered over the dashboard.
func (m Model) renderHelpOverlay() string {
	helpContent := m.buildHelpContent()

	overlayWidth := min(60, m.width-4)
	overlayHeight := min(20, m.height-4)

	theme := ui.GetCurrentTUITheme()
	overlayStyle := lipgloss.NewStyle().
		Width(overlayWidth).
		Height(overlayHeight).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 2).
		Align(lipgloss.Left)

	overlay := overlayStyle.Render(helpContent)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

// buildHelpContent builds the help overlay content.
func (m Model) buildHelpContent() string {
	var b strings.Builder

	b.WriteString(overlayTitleStyle.Render("DUPSCAN MONITOR - HELP"))
	b.WriteString("\n\n")

	b.WriteString(metricLabelStyle.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("Up/Down / k/j", "Scroll the event log"))
	b.WriteString(formatHelpLine("PgUp / PgDn", "Scroll the event log by page"))
	b.WriteString("\n")

	b.WriteString(metricLabelStyle.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("p / Space", "Pause or resume the display"))
	b.WriteString(formatHelpLine("r", "Restart the scan"))
	b.WriteString("\n")

	b.WriteString(metricLabelStyle.Render("Interface"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("? / F1", "Toggle this help"))
	b.WriteString(formatHelpLine("q / Esc / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(overlayDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(overlayDimStyle.Render("Press ? or Esc to close this help"))

	return b.String()
}

// formatHelpLine formats a help line with key and description.
func formatHelpLine(key, desc string) string {
	return fmt.Sprintf("  %s  %s\n",
		footerKeyStyle.Width(17).Render(key),
		footerDescStyle.Render(desc),
	)
}
