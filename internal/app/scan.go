package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agbru/dupscan/internal/cli"
	"github.com/agbru/dupscan/internal/config"
	apperrors "github.com/agbru/dupscan/internal/errors"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/freq/memory"
	"github.com/agbru/dupscan/internal/metrics"
	"github.com/agbru/dupscan/internal/orchestration"
	"github.com/agbru/dupscan/internal/ui"
)

// runScan orchestrates the execution of the CLI scan command.
func (a *Application) runScan(ctx context.Context, out io.Writer) int {
	seq, code := a.resolveInput()
	if code != apperrors.ExitSuccess {
		return code
	}

	// Relax GC pressure while a large input is being scanned
	gc := memory.NewGCController(a.Config.GCMode, len(seq))
	gc.Begin()
	defer gc.End()

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Resolve the strategies against the input length
	scannersToRun := a.scannersToRun(len(seq))
	if len(scannersToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "No scan strategy matches %q.\n", a.Config.Strategies)
		return apperrors.ExitErrorConfig
	}

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, len(seq), out)
		cli.PrintExecutionMode(scannersToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	// Execute scans
	opts := freq.Options{
		Workers:   a.Config.Workers,
		Threshold: a.Config.Threshold,
		SlabSize:  a.Config.SlabSize,
	}
	results := orchestration.ExecuteScans(ctx, scannersToRun, seq, opts, progressReporter, progressOut)

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.Output,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}

	exitCode := a.presentResults(results, len(seq), outputCfg, out)

	if a.Config.Verbose && !a.Config.Quiet {
		after := collector.Snapshot()
		delta := after.DeltaSince(before)
		cli.DisplayMemoryStats(after.HeapAlloc, delta.AllocatedBytes, delta.GCRuns, uint64(delta.GCPause), out)
	}

	return exitCode
}

// resolveInput determines the sequence to scan. Priority: -input, -file,
// -bench, positional arguments, then the built-in default.
func (a *Application) resolveInput() ([]rune, int) {
	cfg := a.Config
	switch {
	case cfg.Input != "":
		return []rune(cfg.Input), apperrors.ExitSuccess
	case cfg.InputFile != "":
		data, err := os.ReadFile(cfg.InputFile)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error reading input file: %v\n", err)
			return nil, apperrors.ExitErrorConfig
		}
		// Editors append a trailing newline; it is not part of the text.
		return []rune(strings.TrimSpace(string(data))), apperrors.ExitSuccess
	case cfg.Bench > 0:
		return freq.CyclingAlphabet(int(cfg.Bench)), apperrors.ExitSuccess
	case len(cfg.Args) > 0:
		return []rune(strings.Join(cfg.Args, "")), apperrors.ExitSuccess
	}
	return []rune(config.DefaultInput), apperrors.ExitSuccess
}

// scannersToRun resolves the -strategies specifier. "auto" picks one
// strategy from the input length and the parallel threshold; anything else
// resolves through the factory.
func (a *Application) scannersToRun(inputLen int) []freq.Scanner {
	selection := a.Config.Strategies
	if selection == "" || selection == "auto" {
		selection = orchestration.SelectStrategyName(inputLen, a.Config.ParallelThreshold)
	}
	return orchestration.GetScannersToRun(selection, a.Factory)
}

// presentResults routes between the single-result display and the
// multi-strategy comparison analysis.
func (a *Application) presentResults(results []orchestration.ScanResult, inputLen int, outputCfg cli.OutputConfig, out io.Writer) int {
	if len(results) == 1 {
		return a.presentSingleResult(results[0], inputLen, outputCfg, out)
	}
	return a.analyzeComparison(results, inputLen, outputCfg, out)
}

// presentSingleResult displays one scan outcome and saves it if requested.
func (a *Application) presentSingleResult(res orchestration.ScanResult, inputLen int, outputCfg cli.OutputConfig, out io.Writer) int {
	if res.Err != nil {
		return apperrors.HandleScanError(res.Err, res.Duration, out, cli.CLIColorProvider{})
	}
	if err := cli.DisplayResultWithConfig(out, res.Set, inputLen, a.Config.Threshold, res.Duration, res.Name, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// analyzeComparison presents the comparison table, validates consistency
// across strategies and reports the fastest result.
func (a *Application) analyzeComparison(results []orchestration.ScanResult, inputLen int, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for the comparison case
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Set)
		if err := a.saveResultIfNeeded(bestResult, inputLen, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		InputLen:  inputLen,
		Threshold: a.Config.Threshold,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, inputLen, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// findBestResult returns the fastest successful result, or nil if every
// strategy failed.
func findBestResult(results []orchestration.ScanResult) *orchestration.ScanResult {
	var bestResult *orchestration.ScanResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.ScanResult, inputLen int, outputCfg cli.OutputConfig) error {
	if outputCfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Set, inputLen, a.Config.Threshold, res.Duration, res.Name, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
