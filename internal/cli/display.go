package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/dupscan/internal/format"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/progress"
	"github.com/agbru/dupscan/internal/ui"
)

// DefaultTerminalWidth is the assumed terminal width when the real width
// cannot be determined (pipes, CI environments, unsupported platforms).
const DefaultTerminalWidth = 80

// DisplayProgress consumes progress updates from the scanners and renders a
// consolidated spinner with a progress bar and ETA. It runs until the
// progress channel is closed and signals completion through the WaitGroup.
//
// Parameters:
//   - wg: WaitGroup signaled when the display loop exits.
//   - progressChan: Channel carrying per-scanner progress updates.
//   - numScanners: Number of scanners being tracked.
//   - out: The writer for the spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numScanners int, out io.Writer) {
	defer wg.Done()

	if numScanners <= 0 {
		// Nothing to display; drain the channel so senders never block.
		for range progressChan {
		}
		return
	}

	state := format.NewProgressWithETA(numScanners)
	barWidth := progressBarWidth()

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	render := func() {
		avg := state.CalculateAverage()
		s.UpdateSuffix(" " + format.FormatProgressBarWithETA(avg, state.GetETA(), barWidth))
	}
	render()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			state.Update(update.ScannerIndex, update.Value)
		case <-ticker.C:
			render()
		}
	}
}

// progressBarWidth sizes the progress bar to the terminal, leaving room for
// the spinner glyph, percentage, and ETA suffix.
func progressBarWidth() int {
	width := terminalWidth() - 40
	if width > ProgressBarWidth {
		return ProgressBarWidth
	}
	if width < 10 {
		return 10
	}
	return width
}

// DisplayScanResult displays the outcome of a duplicate scan: the headline
// set of duplicate symbols and the execution time of the scan.
//
// Parameters:
//   - set: The duplicate symbols found.
//   - inputLen: The number of symbols scanned.
//   - threshold: The minimum occurrences for a symbol to count as duplicate.
//   - duration: The scan duration.
//   - verbose: When true, adds a per-symbol breakdown with code points.
//   - details: When true, adds a detailed analysis block before the headline.
//   - out: The writer for standard output.
func DisplayScanResult(set freq.Set, inputLen, threshold int, duration time.Duration, verbose, details bool, out io.Writer) {
	symbols := set.Sorted()

	if details {
		fmt.Fprintf(out, "\n--- Detailed scan analysis ---\n")
		fmt.Fprintf(out, "Scan time: %s%s%s\n",
			ui.ColorYellow(), FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Symbols scanned: %s%s%s\n",
			ui.ColorCyan(), format.FormatCount(int64(inputLen)), ui.ColorReset())
		fmt.Fprintf(out, "Scan rate: %s%s%s\n",
			ui.ColorCyan(), format.FormatScanRate(int64(inputLen), duration), ui.ColorReset())
		fmt.Fprintf(out, "Duplicate symbols found: %s%d%s\n",
			ui.ColorCyan(), len(symbols), ui.ColorReset())
	}

	fmt.Fprintf(out, "Symbols appearing at least %d times: %s%s%s\n",
		threshold, ui.ColorGreen(), format.FormatSymbolSet(symbols), ui.ColorReset())

	if verbose {
		for _, r := range symbols {
			fmt.Fprintf(out, "  %s%q%s (U+%04X)\n", ui.ColorGreen(), r, ui.ColorReset(), r)
		}
	}

	fmt.Fprintf(out, "Execution time for %s symbols: %s%dms%s\n",
		format.FormatCount(int64(inputLen)), ui.ColorYellow(), duration.Milliseconds(), ui.ColorReset())
}
