package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/dupscan/internal/cli"
	"github.com/agbru/dupscan/internal/config"
	"github.com/agbru/dupscan/internal/format"
	"github.com/agbru/dupscan/internal/ui"
)

// printCrossoverResults formats and prints the sequential-vs-chunked race table.
func printCrossoverResults(out io.Writer, results []crossoverResult, crossover int) {
	fmt.Fprintf(out, "\n--- Crossover Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sInput Size%s    │ %sSequential%s     │ %sChunked%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 15), strings.Repeat("─", 17), strings.Repeat("─", 20))
	for _, res := range results {
		sizeLabel := format.FormatCount(int64(res.Size))
		seqStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		chunkStr := seqStr
		if res.Err == nil {
			seqStr = probeDuration(res.Sequential)
			chunkStr = probeDuration(res.Chunked)
		}
		highlight := ""
		if res.Size == crossover && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Crossover)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-13s%s │ %s%14s%s │ %s%14s%s%s\n",
			ui.ColorCyan(), sizeLabel, ui.ColorReset(),
			ui.ColorYellow(), seqStr, ui.ColorReset(),
			ui.ColorYellow(), chunkStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printWorkerResults formats and prints the worker-count probe table.
func printWorkerResults(out io.Writer, results []workerResult, bestWorkers int) {
	fmt.Fprintf(out, "\n--- Worker Probe (%s symbols) ---\n", format.FormatCount(workerProbeSize))
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s      │ %sExecution Time%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = probeDuration(res.Duration)
		}
		highlight := ""
		if res.Workers == bestWorkers && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12d%s │ %s%s%s%s\n",
			ui.ColorCyan(), res.Workers, ui.ColorReset(),
			ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// probeDuration renders a probe timing, flooring sub-microsecond readings.
func probeDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return cli.FormatExecutionDuration(d)
}

// printRecommendation prints the calibration outcome and how to apply it.
// There is no profile file; the recommendation is carried by flag or
// environment variable.
func printRecommendation(out io.Writer, rec Recommendation, elapsed time.Duration) {
	fmt.Fprintf(out, "\n%sRecommendation%s (calibrated in %s):\n",
		ui.ColorBold(), ui.ColorReset(), cli.FormatExecutionDuration(elapsed))
	if rec.ParallelThreshold == 0 {
		fmt.Fprintf(out, "  Parallel scanning never beat sequential on this machine; keep the default selection.\n")
	} else {
		fmt.Fprintf(out, "  Parallel threshold: %s%d%s symbols\n", ui.ColorYellow(), rec.ParallelThreshold, ui.ColorReset())
	}
	if rec.Workers > 0 {
		fmt.Fprintf(out, "  Workers:            %s%d%s\n", ui.ColorYellow(), rec.Workers, ui.ColorReset())
	}
	if rec.ParallelThreshold > 0 {
		fmt.Fprintf(out, "\nApply with: %s-parallel-threshold %d -workers %d%s\n",
			ui.ColorCyan(), rec.ParallelThreshold, rec.Workers, ui.ColorReset())
		fmt.Fprintf(out, "        or: %s%sPARALLEL_THRESHOLD=%d %sWORKERS=%d%s\n",
			ui.ColorCyan(), config.EnvPrefix, rec.ParallelThreshold, config.EnvPrefix, rec.Workers, ui.ColorReset())
	}
}

// printCalibrationOutput prints the quick auto-calibration results.
//
// Parameters:
//   - cfg: The updated configuration with calibration results.
//   - out: The writer for output.
func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s: parallel threshold=%s%d%s symbols, workers=%s%d%s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), cfg.ParallelThreshold, ui.ColorReset(),
		ui.ColorYellow(), cfg.Workers, ui.ColorReset())
}
