package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/dupscan/internal/errors"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/progress"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking scan
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// Spans are no-ops unless the embedding process installs a tracing SDK.
var tracer = otel.Tracer("dupscan/orchestration")

// ExecuteScans orchestrates the concurrent execution of one or more
// duplicate scans over the same input sequence.
//
// It manages the lifecycle of scan goroutines, collects their results, and
// coordinates the display of progress updates. This function is the core of
// the application's concurrency model.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - scanners: A slice of scanners to execute.
//   - seq: The input sequence every scanner processes.
//   - opts: The scan options (workers, threshold, slab size).
//   - progressReporter: The progress reporter for displaying updates (use
//     NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []ScanResult: A slice containing the result of each scan.
func ExecuteScans(ctx context.Context, scanners []freq.Scanner, seq []rune, opts freq.Options, progressReporter ProgressReporter, out io.Writer) []ScanResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]ScanResult, len(scanners))
	progressChan := make(chan progress.ProgressUpdate, len(scanners)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(scanners), out)

	for i, s := range scanners {
		idx, scanner := i, s
		g.Go(func() error {
			scanCtx, span := tracer.Start(ctx, "orchestration.scan",
				trace.WithAttributes(
					attribute.String("scan.strategy", scanner.Name()),
					attribute.Int("scan.input_length", len(seq)),
				))
			startTime := time.Now()
			set, err := scanner.Scan(scanCtx, seq, progressChan, idx, opts)
			if err != nil {
				span.RecordError(err)
			} else {
				span.SetAttributes(attribute.Int("scan.duplicates", len(set)))
			}
			span.End()
			results[idx] = ScanResult{
				Name: scanner.Name(), Set: set, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple strategies
// and generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful scans, and displays a comparative table. It handles the logic
// for determining global success or failure based on the individual
// outcomes.
//
// Parameters:
//   - results: The slice of scan results to analyze.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The error handler used when every strategy failed.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []ScanResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *ScanResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	// Present the comparison table
	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the scan.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && !res.Set.Equal(firstValidResult.Set) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the strategies.")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValidResult, opts.InputLen, opts.Threshold, opts.Verbose, opts.Details, out)
	return apperrors.ExitSuccess
}
