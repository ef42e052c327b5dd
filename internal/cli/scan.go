package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/agbru/dupscan/internal/config"
	"github.com/agbru/dupscan/internal/format"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the input size, timeout, environment details, and scan
// tuning parameters.
//
// Parameters:
//   - cfg: The application configuration.
//   - inputLen: The number of symbols in the resolved input.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, inputLen int, out io.Writer) {
	workers := strconv.Itoa(cfg.Workers)
	if cfg.Workers == 0 {
		workers = "auto"
	}

	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Scanning %s%s symbols%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatCount(int64(inputLen)), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Scan tuning: Duplicates=%s%d%s occurrences, Parallel=%s%d%s symbols, Workers=%s%s%s.\n",
		ui.ColorCyan(), cfg.Threshold, ui.ColorReset(),
		ui.ColorCyan(), cfg.ParallelThreshold, ui.ColorReset(),
		ui.ColorCyan(), workers, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs
// comparison).
//
// Parameters:
//   - scanners: The slice of scanners that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(scanners []freq.Scanner, out io.Writer) {
	var modeDesc string
	if len(scanners) > 1 {
		modeDesc = "Parallel comparison of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single scan with the %s%s%s strategy",
			ui.ColorGreen(), scanners[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
