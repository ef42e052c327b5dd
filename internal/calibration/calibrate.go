// This file implements the calibration runner. It races the sequential
// scanner against the chunked one at increasing input sizes to locate the
// parallel crossover, then probes worker counts at a fixed large input.

// Package calibration measures where parallel scanning starts paying off on
// the current machine and recommends a parallel threshold and worker count.
package calibration

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/agbru/dupscan/internal/config"
	apperrors "github.com/agbru/dupscan/internal/errors"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/freq/memory"
	"github.com/agbru/dupscan/internal/progress"
	"github.com/agbru/dupscan/internal/ui"
)

const (
	// workerProbeSize is the input length used for the worker-count probe.
	// Large enough for stable timings, small enough to keep -calibrate fast.
	workerProbeSize = 1 << 22

	// quickWorkerProbeSize is the reduced probe length used by AutoCalibrate
	// so startup calibration stays under a second.
	quickWorkerProbeSize = 1 << 21

	// probeRounds is the number of timed runs per probe; the fastest wins.
	probeRounds = 3

	// quickProbeRounds is the reduced round count used by AutoCalibrate.
	quickProbeRounds = 1

	// calibrationSeed makes probe inputs reproducible across runs.
	calibrationSeed = 1
)

// crossoverResult records one sequential-vs-chunked race at a probe size.
type crossoverResult struct {
	Size       int
	Sequential time.Duration
	Chunked    time.Duration
	Err        error
}

// workerResult records one worker-count probe at the fixed probe size.
type workerResult struct {
	Workers  int
	Duration time.Duration
	Err      error
}

// Recommendation is the outcome of a calibration run.
type Recommendation struct {
	// ParallelThreshold is the smallest probed input length from which the
	// chunked scanner stayed faster than the sequential one. Zero means
	// parallelism never held the lead.
	ParallelThreshold int
	// Workers is the fastest worker count at the probe size.
	Workers int
}

// RunCalibration benchmarks the registered strategies and prints the optimal
// configuration for this machine. It is the entry point for the -calibrate
// mode.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - out: The writer for calibration output.
//   - scanners: The registered scanners; sequential and chunked must be
//     among them.
//   - progressReporter: The progress display fed while probes run.
//   - colors: Colors for error reporting.
//
// Returns:
//   - int: The application exit code.
func RunCalibration(
	ctx context.Context,
	out io.Writer,
	scanners []freq.Scanner,
	progressReporter func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numScanners int, out io.Writer),
	colors apperrors.ColorProvider,
) int {
	sequential, chunked, err := pickPair(scanners)
	if err != nil {
		fmt.Fprintf(out, "%sCalibration error:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		return apperrors.ExitErrorConfig
	}

	sizes := GenerateProbeSizes()
	if len(sizes) == 0 {
		fmt.Fprintln(out, "Single-core machine: the sequential scanner always wins, nothing to calibrate.")
		return apperrors.ExitSuccess
	}
	workerCounts := GenerateWorkerCounts()

	fmt.Fprintf(out, "%sCalibrating%s: racing sequential vs chunked at %d input sizes, probing %d worker counts.\n",
		ui.ColorBold(), ui.ColorReset(), len(sizes), len(workerCounts))

	start := time.Now()

	progressChan := make(chan progress.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go progressReporter(&wg, progressChan, 1, out)

	total := 2*len(sizes) + len(workerCounts)
	done := 0
	tick := func() {
		done++
		// Never let a slow terminal stall a timed probe
		select {
		case progressChan <- progress.ProgressUpdate{ScannerIndex: 0, Value: float64(done) / float64(total)}:
		default:
		}
	}

	crossResults, crossover := findCrossover(ctx, sequential, chunked, sizes, probeRounds, tick)
	workResults, bestWorkers := probeWorkers(ctx, chunked, workerCounts, workerProbeSize, probeRounds, tick)

	close(progressChan)
	wg.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperrors.HandleScanError(ctxErr, time.Since(start), out, colors)
	}

	printCrossoverResults(out, crossResults, crossover)
	printWorkerResults(out, workResults, bestWorkers)
	printRecommendation(out, Recommendation{ParallelThreshold: crossover, Workers: bestWorkers}, time.Since(start))
	return apperrors.ExitSuccess
}

// AutoCalibrate runs a reduced calibration and returns a configuration with
// the measured parallel threshold and worker count filled in. Values the
// user set explicitly are preserved. The boolean reports whether anything
// was applied.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, scanners []freq.Scanner) (config.AppConfig, bool) {
	if cfg.ParallelThreshold != 0 && cfg.Workers != 0 {
		return cfg, false
	}

	sequential, chunked, err := pickPair(scanners)
	if err != nil {
		return cfg, false
	}
	sizes := GenerateQuickProbeSizes()
	if len(sizes) == 0 {
		return cfg, false
	}

	noTick := func() {}
	updated := cfg
	applied := false

	if cfg.ParallelThreshold == 0 {
		if _, crossover := findCrossover(ctx, sequential, chunked, sizes, quickProbeRounds, noTick); crossover > 0 {
			updated.ParallelThreshold = crossover
			applied = true
		}
	}
	if cfg.Workers == 0 {
		if _, best := probeWorkers(ctx, chunked, GenerateWorkerCounts(), quickWorkerProbeSize, quickProbeRounds, noTick); best > 0 {
			updated.Workers = best
			applied = true
		}
	}

	if ctx.Err() != nil || !applied {
		return cfg, false
	}

	printCalibrationOutput(updated, out)
	return updated, true
}

// pickPair resolves the sequential and chunked scanners from the registered
// set. Calibration races exactly these two; the sharded scanner shares the
// chunked crossover behavior.
func pickPair(scanners []freq.Scanner) (sequential, chunked freq.Scanner, err error) {
	for _, s := range scanners {
		switch s.Name() {
		case "sequential":
			sequential = s
		case "chunked":
			chunked = s
		}
	}
	if sequential == nil || chunked == nil {
		return nil, nil, apperrors.NewConfigError("calibration requires the sequential and chunked strategies")
	}
	return sequential, chunked, nil
}

// findCrossover races the two scanners at each probe size and returns the
// per-size results plus the crossover: the smallest probed size from which
// the chunked scanner stayed faster through the end of the list, or zero
// when it never held the lead.
func findCrossover(ctx context.Context, sequential, chunked freq.Scanner, sizes []int, rounds int, tick func()) ([]crossoverResult, int) {
	maxSize := 0
	for _, size := range sizes {
		if size > maxSize {
			maxSize = size
		}
	}
	// One block backs every probe input; Reset reclaims it between sizes.
	arena := memory.NewScanArena(maxSize)

	results := make([]crossoverResult, 0, len(sizes))
	for _, size := range sizes {
		arena.Reset()
		seq := arena.Alloc(size)
		freq.RandomRunesInto(seq, freq.GeneratorAlphabetSize, calibrationSeed)
		res := crossoverResult{Size: size}
		res.Sequential, res.Err = measure(ctx, sequential, seq, freq.Options{}, rounds)
		tick()
		if res.Err == nil {
			res.Chunked, res.Err = measure(ctx, chunked, seq, freq.Options{}, rounds)
		}
		tick()
		results = append(results, res)
		if res.Err != nil {
			break
		}
	}
	return results, crossoverFrom(results)
}

// crossoverFrom scans the results from the largest size down while chunked
// keeps winning and returns the smallest size of that winning suffix.
func crossoverFrom(results []crossoverResult) int {
	crossover := 0
	for i := len(results) - 1; i >= 0; i-- {
		res := results[i]
		if res.Err != nil || res.Chunked >= res.Sequential {
			break
		}
		crossover = res.Size
	}
	return crossover
}

// probeWorkers times the chunked scanner at the probe size for each worker
// count and returns the per-count results plus the fastest count, or zero
// when every probe failed.
func probeWorkers(ctx context.Context, chunked freq.Scanner, counts []int, probeSize, rounds int, tick func()) ([]workerResult, int) {
	seq := freq.RandomRunes(probeSize, freq.GeneratorAlphabetSize, calibrationSeed)
	results := make([]workerResult, 0, len(counts))
	best := 0
	bestTime := time.Duration(math.MaxInt64)
	for _, workers := range counts {
		res := workerResult{Workers: workers}
		res.Duration, res.Err = measure(ctx, chunked, seq, freq.Options{Workers: workers}, rounds)
		tick()
		results = append(results, res)
		if res.Err != nil {
			break
		}
		if res.Duration < bestTime {
			bestTime = res.Duration
			best = workers
		}
	}
	return results, best
}

// measure times rounds runs of scanner over seq and returns the fastest.
func measure(ctx context.Context, scanner freq.Scanner, seq []rune, opts freq.Options, rounds int) (time.Duration, error) {
	best := time.Duration(math.MaxInt64)
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		start := time.Now()
		if _, err := scanner.Scan(ctx, seq, nil, 0, opts); err != nil {
			return 0, err
		}
		if d := time.Since(start); d < best {
			best = d
		}
	}
	return best, nil
}
