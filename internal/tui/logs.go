package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/dupscan/internal/config"
	"github.com/agbru/dupscan/internal/format"
	"github.com/agbru/dupscan/internal/orchestration"
)

// LogsModel is the scrolling activity panel: configuration, per-strategy
// progress, results and errors.
type LogsModel struct {
	strategyNames []string
	entries       []string
	// progressLines holds the latest progress line per scanner index,
	// rendered below the event log so it updates in place.
	progressLines map[int]string
	keymap        KeyMap
	offset        int // scroll offset from the bottom; 0 = follow tail
	width         int
	height        int
}

// NewLogsModel creates a logs panel for the given strategies.
func NewLogsModel(strategyNames []string) LogsModel {
	return LogsModel{
		strategyNames: strategyNames,
		progressLines: make(map[int]string),
		keymap:        DefaultKeyMap(),
	}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset clears all entries and progress lines.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.progressLines = make(map[int]string)
	l.offset = 0
}

// add appends a timestamped entry and keeps the view following the tail.
func (l *LogsModel) add(text string) {
	stamp := logTimeStyle.Render(time.Now().Format("15:04:05"))
	l.entries = append(l.entries, stamp+" "+text)
	l.offset = 0
}

// AddExecutionConfig logs the scan parameters at session start.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig, inputLen int) {
	l.add(fmt.Sprintf("Scanning %s symbols, duplicate threshold %d",
		format.FormatCount(int64(inputLen)), cfg.Threshold))
	l.add("Strategies: " + logStrategyStyle.Render(strings.Join(l.strategyNames, ", ")))
	l.add(fmt.Sprintf("Timeout: %s", cfg.Timeout))
}

// AddProgressEntry updates the in-place progress line for a scanner.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	name := fmt.Sprintf("#%d", msg.ScannerIndex)
	if msg.ScannerIndex >= 0 && msg.ScannerIndex < len(l.strategyNames) {
		name = l.strategyNames[msg.ScannerIndex]
	}
	l.progressLines[msg.ScannerIndex] = fmt.Sprintf(" %s %s %s",
		logStrategyStyle.Render(fmt.Sprintf("%-10s", name)),
		logProgressStyle.Render(fmt.Sprintf("%5.1f%%", msg.Value*100)),
		logTimeStyle.Render("ETA "+format.FormatETA(msg.ETA)))
}

// AddResults logs the per-strategy comparison outcome.
func (l *LogsModel) AddResults(results []orchestration.ScanResult) {
	for _, res := range results {
		if res.Err != nil {
			l.add(fmt.Sprintf("%s %s",
				logStrategyStyle.Render(res.Name),
				logErrorStyle.Render(fmt.Sprintf("failed: %v", res.Err))))
			continue
		}
		l.add(fmt.Sprintf("%s %s in %s",
			logStrategyStyle.Render(res.Name),
			logSuccessStyle.Render(fmt.Sprintf("found %d duplicates", len(res.Set))),
			format.FormatExecutionDuration(res.Duration)))
	}
}

// AddFinalResult logs the elected result with its duplicate set.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	if msg.Result.Set == nil {
		return
	}
	l.add(fmt.Sprintf("Symbols appearing at least %d times: %s",
		msg.Threshold,
		logSuccessStyle.Render(format.FormatSymbolSet(msg.Result.Set.Sorted()))))
	if msg.Verbose {
		for _, r := range msg.Result.Set.Sorted() {
			l.add(logSuccessStyle.Render(fmt.Sprintf("  %q (U+%04X)", r, r)))
		}
	}
	l.add(fmt.Sprintf("Scanned %s symbols in %s",
		format.FormatCount(int64(msg.InputLen)),
		format.FormatExecutionDuration(msg.Result.Duration)))
}

// AddError logs a terminal scan error.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render(fmt.Sprintf("Scan failed after %s: %v", msg.Duration, msg.Err)))
}

// Update handles scroll keys.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	page := l.height - 2
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.scrollBy(1)
	case key.Matches(msg, l.keymap.Down):
		l.scrollBy(-1)
	case key.Matches(msg, l.keymap.PageUp):
		l.scrollBy(page)
	case key.Matches(msg, l.keymap.PageDown):
		l.scrollBy(-page)
	}
}

// scrollBy moves the viewport, clamping to the available history.
func (l *LogsModel) scrollBy(delta int) {
	l.offset += delta
	if l.offset < 0 {
		l.offset = 0
	}
	if l.offset > len(l.entries)-1 {
		l.offset = len(l.entries) - 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// visibleEntries returns the slice of entries for a viewport of n lines,
// respecting the scroll offset.
func (l LogsModel) visibleEntries(n int) []string {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	end := len(l.entries) - l.offset
	if end < 1 {
		end = 1
	}
	if end > len(l.entries) {
		end = len(l.entries)
	}
	start := end - n
	if start < 0 {
		start = 0
	}
	return l.entries[start:end]
}

// renderToHeight renders the panel at exactly the given outer height.
func (l LogsModel) renderToHeight(height int) string {
	innerHeight := height - 2 // panel borders
	if innerHeight < 1 {
		innerHeight = 1
	}

	// Progress lines occupy the bottom of the panel, most recent state only.
	progressRows := make([]string, 0, len(l.progressLines))
	for i := 0; i < len(l.strategyNames); i++ {
		if line, ok := l.progressLines[i]; ok {
			progressRows = append(progressRows, line)
		}
	}

	eventRows := innerHeight - len(progressRows)
	if len(progressRows) > 0 {
		eventRows-- // separator line
	}

	var b strings.Builder
	for _, e := range l.visibleEntries(eventRows) {
		b.WriteString(e)
		b.WriteString("\n")
	}
	if len(progressRows) > 0 {
		b.WriteString(logTimeStyle.Render(strings.Repeat("─", max(l.width-4, 1))))
		b.WriteString("\n")
		b.WriteString(strings.Join(progressRows, "\n"))
	}

	return panelStyle.
		Width(l.width - 2).
		Height(innerHeight).
		Render(strings.TrimRight(b.String(), "\n"))
}
