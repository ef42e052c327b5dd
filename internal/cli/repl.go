// Package cli provides the presentation layer of the application: scan
// result display, progress rendering, shell completion, and the interactive
// REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/dupscan/internal/format"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/progress"
	"github.com/agbru/dupscan/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultStrategy is the strategy used for scans until changed.
	DefaultStrategy string
	// Timeout is the maximum duration for each scan.
	Timeout time.Duration
	// Workers is the worker count for parallel strategies (0 = all cores).
	Workers int
	// Threshold is the minimum occurrences for a duplicate.
	Threshold int
	// SlabSize is the progress reporting granularity in symbols.
	SlabSize int
	// Details enables the detailed analysis block after each scan.
	Details bool
}

// REPL represents an interactive duplicate scanner session.
type REPL struct {
	config          REPLConfig
	registry        map[string]freq.Scanner
	currentStrategy string
	in              io.Reader
	out             io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: Map of available scanners.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry map[string]freq.Scanner, config REPLConfig) *REPL {
	currentStrategy := config.DefaultStrategy
	if _, ok := registry[currentStrategy]; !ok {
		// "auto", "all" and unknown names fall back to the first scanner
		for name := range registry {
			currentStrategy = name
			break
		}
	}

	return &REPL{
		config:          config,
		registry:        registry,
		currentStrategy: currentStrategy,
		in:              os.Stdin,
		out:             os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"dupscan> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s      %s🔍 Duplicate Scanner - Interactive Mode%s            %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sscan <text>%s      - Scan text with the current strategy\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbench <n>%s        - Scan n generated cycling-alphabet symbols\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstrategy <name>%s  - Change strategy (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getStrategyList())
	fmt.Fprintf(r.out, "  %sworkers <n>%s      - Set the worker count (0 = all cores)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sthreshold <n>%s    - Set the duplicate threshold\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scompare <text>%s   - Compare all strategies on the same text\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s             - List available strategies\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdetails%s          - Toggle detailed scan analysis\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getStrategyList returns a comma-separated list of available strategies.
func (r *REPL) getStrategyList() string {
	strategies := make([]string, 0, len(r.registry))
	for name := range r.registry {
		strategies = append(strategies, name)
	}
	return strings.Join(strategies, ", ")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "scan", "s":
		r.cmdScan(args)
	case "bench", "b":
		r.cmdBench(args)
	case "strategy", "strategies", "strat":
		r.cmdStrategy(args)
	case "workers", "w":
		r.cmdWorkers(args)
	case "threshold", "t":
		r.cmdThreshold(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "list", "ls":
		r.cmdList()
	case "details", "d":
		r.cmdDetails()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// A bare number runs a quick benchmark scan
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.scan(freq.CyclingAlphabet(int(n)))
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdScan handles the "scan" command.
func (r *REPL) cmdScan(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: scan <text>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	// Arguments are joined without separators, matching the CLI driver.
	r.scan([]rune(strings.Join(args, "")))
}

// cmdBench handles the "bench" command.
func (r *REPL) cmdBench(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: bench <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	// Repeated bench runs in one session recycle the same slab.
	seq := freq.AcquireRunes(int(n))
	defer freq.ReleaseRunes(seq)
	freq.CyclingAlphabetInto(seq)

	r.scan(seq)
}

// scan performs a duplicate scan with the current strategy.
func (r *REPL) scan(seq []rune) {
	scanner, ok := r.registry[r.currentStrategy]
	if !ok {
		fmt.Fprintf(r.out, "%sStrategy not found: %s%s\n", ui.ColorRed(), r.currentStrategy, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Scanning %s%s symbols%s with %s%s%s...\n",
		ui.ColorMagenta(), format.FormatCount(int64(len(seq))), ui.ColorReset(),
		ui.ColorCyan(), scanner.Name(), ui.ColorReset())

	opts := freq.Options{
		Workers:   r.config.Workers,
		Threshold: r.config.Threshold,
		SlabSize:  r.config.SlabSize,
	}

	// Create a progress channel
	progressChan := make(chan progress.ProgressUpdate, 10)

	// Use DisplayProgress to show a spinner and progress bar
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	set, err := scanner.Scan(ctx, seq, progressChan, 0, opts)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	// Format duration
	durationStr := FormatExecutionDuration(duration)

	// Display result
	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:       %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
	fmt.Fprintf(r.out, "  Symbols:    %s%s%s\n", ui.ColorCyan(), format.FormatCount(int64(len(seq))), ui.ColorReset())
	fmt.Fprintf(r.out, "  Duplicates: %s%d%s\n", ui.ColorCyan(), len(set), ui.ColorReset())
	fmt.Fprintf(r.out, "  Set = %s%s%s\n", ui.ColorGreen(), format.FormatSymbolSet(set.Sorted()), ui.ColorReset())

	if r.config.Details {
		fmt.Fprintf(r.out, "  Rate:       %s%s%s\n",
			ui.ColorCyan(), format.FormatScanRate(int64(len(seq)), duration), ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdStrategy handles the "strategy" command.
func (r *REPL) cmdStrategy(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: strategy <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", r.getStrategyList())
		return
	}

	name := strings.ToLower(args[0])
	if _, ok := r.registry[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", r.getStrategyList())
		return
	}

	r.currentStrategy = name
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), r.registry[name].Name(), ui.ColorReset())
}

// cmdWorkers handles the "workers" command.
func (r *REPL) cmdWorkers(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: workers <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	r.config.Workers = n
	desc := strconv.Itoa(n)
	if n == 0 {
		desc = "auto"
	}
	fmt.Fprintf(r.out, "Workers set to: %s%s%s\n", ui.ColorGreen(), desc, ui.ColorReset())
}

// cmdThreshold handles the "threshold" command.
func (r *REPL) cmdThreshold(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: threshold <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintf(r.out, "%sInvalid value: %s (must be >= 1)%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	r.config.Threshold = n
	fmt.Fprintf(r.out, "Duplicate threshold set to: %s%d%s\n", ui.ColorGreen(), n, ui.ColorReset())
}

// cmdCompare handles the "compare" command.
func (r *REPL) cmdCompare(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: compare <text>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	seq := []rune(strings.Join(args, ""))

	fmt.Fprintf(r.out, "\n%sComparison for %s symbols:%s\n", ui.ColorBold(), format.FormatCount(int64(len(seq))), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	opts := freq.Options{
		Workers:   r.config.Workers,
		Threshold: r.config.Threshold,
		SlabSize:  r.config.SlabSize,
	}

	var firstSet freq.Set
	haveFirst := false

	for name, scanner := range r.registry {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)

		// Create a progress channel for this scan
		progressChan := make(chan progress.ProgressUpdate, 10)
		go func() {
			for range progressChan {
				// Discard progress updates
			}
		}()

		start := time.Now()
		set, err := scanner.Scan(ctx, seq, progressChan, 0, opts)
		duration := time.Since(start)
		close(progressChan)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(),
				ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		durationStr := FormatExecutionDuration(duration)

		if !haveFirst {
			firstSet = set
			haveFirst = true
		}

		// Check consistency
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if !set.Equal(firstSet) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}

		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), durationStr, ui.ColorReset(),
			status,
			format.FormatSymbolSet(set.Sorted()))
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable strategies:%s\n", ui.ColorBold(), ui.ColorReset())
	for name, scanner := range r.registry {
		marker := "  "
		if name == r.currentStrategy {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), scanner.Name())
	}
	fmt.Fprintln(r.out)
}

// cmdDetails toggles the detailed analysis output.
func (r *REPL) cmdDetails() {
	r.config.Details = !r.config.Details
	status := "disabled"
	if r.config.Details {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Detailed analysis: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	workers := strconv.Itoa(r.config.Workers)
	if r.config.Workers == 0 {
		workers = "auto"
	}

	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy:   %s%s%s\n", ui.ColorCyan(), r.currentStrategy, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Workers:    %s%s%s\n", ui.ColorCyan(), workers, ui.ColorReset())
	fmt.Fprintf(r.out, "  Threshold:  %s%d%s occurrences\n", ui.ColorCyan(), r.config.Threshold, ui.ColorReset())
	detailStatus := "no"
	if r.config.Details {
		detailStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Details:    %s%s%s\n", ui.ColorCyan(), detailStatus, ui.ColorReset())
	fmt.Fprintln(r.out)
}
