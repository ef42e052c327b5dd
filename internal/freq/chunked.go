package freq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	apperrors "github.com/agbru/dupscan/internal/errors"
	"github.com/agbru/dupscan/internal/parallel"
	"github.com/agbru/dupscan/internal/progress"
)

// ChunkedScanner is the default parallel aggregator. The input is
// partitioned into contiguous chunks, one worker counts each chunk into its
// own local map, and after the join barrier the local maps are merged
// single-threaded. No concurrent map primitives are involved: the only
// cross-goroutine handoff is each worker publishing its finished local map
// into a slot it alone owns.
//
// Lifecycle of one scan:
//
//	Partition → dispatch one worker per span → workers count locally →
//	barrier (every task reported) → single-threaded merge → filter → Done
//
// A failing task never produces a partial result: the scanner waits for the
// remaining tasks, then surfaces one consolidated TaskExecutionError.
type ChunkedScanner struct{}

// Name implements Scanner.
func (ChunkedScanner) Name() string { return "chunked" }

// Scan implements Scanner.
func (ChunkedScanner) Scan(ctx context.Context, seq []rune, progressChan chan<- progress.ProgressUpdate, idx int, opts Options) (Set, error) {
	opts = opts.normalized()
	reporter := newScanReporter(progressChan, idx)

	spans, err := Partition(len(seq), opts.Workers)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		reporter.Done()
		return Set{}, nil
	}

	locals, err := scanSpans(ctx, seq, spans, opts.SlabSize, reporter)
	if err != nil {
		return nil, err
	}

	global := acquireCounts()
	defer releaseCounts(global)
	for _, local := range locals {
		MergeCounts(global, local)
		releaseCounts(local)
	}

	reporter.Done()
	return DuplicatesFrom(global, opts.Threshold), nil
}

// scanSpans dispatches one counting task per span and blocks until every
// task has reported success or failure (the collection barrier). On success
// it returns one local count map per span, in span order. On failure all
// completed local maps are released and a single error is returned:
// the caller's context error if the scan was canceled, otherwise a
// consolidated TaskExecutionError carrying the first cause.
func scanSpans(ctx context.Context, seq []rune, spans []Span, slabSize int, reporter *progress.Reporter) ([]map[rune]int, error) {
	locals := make([]map[rune]int, len(spans))
	total := int64(len(seq))

	var (
		wg        sync.WaitGroup
		collector parallel.ErrorCollector
		tally     parallel.OutcomeTally
		processed atomic.Int64
	)

	wg.Add(len(spans))
	for i, sp := range spans {
		go func(slot int, sp Span) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					collector.SetError(fmt.Errorf("chunk [%d, %d): panic: %v", sp.Start, sp.End, r))
					tally.Failure()
				}
			}()

			local, err := countChunk(ctx, seq, sp, slabSize, &processed, total, reporter)
			if err != nil {
				collector.SetError(err)
				tally.Failure()
				return
			}
			locals[slot] = local
			tally.Success()
		}(i, sp)
	}

	// Collection barrier: the only blocking wait in the whole aggregation.
	wg.Wait()

	if err := collector.Err(); err != nil {
		for _, local := range locals {
			releaseCounts(local)
		}
		if apperrors.IsContextError(err) {
			return nil, err
		}
		return nil, apperrors.TaskExecutionError{
			Completed: tally.Completed(),
			Total:     len(spans),
			Cause:     err,
		}
	}
	return locals, nil
}

// countChunk counts one span slab by slab, checking cancellation and
// reporting shared progress between slabs. The returned map is pooled; the
// caller releases it after merging.
func countChunk(ctx context.Context, seq []rune, sp Span, slabSize int, processed *atomic.Int64, total int64, reporter *progress.Reporter) (map[rune]int, error) {
	if err := sp.Validate(len(seq)); err != nil {
		return nil, err
	}

	counts := acquireCounts()
	for start := sp.Start; start < sp.End; start += slabSize {
		if err := ctx.Err(); err != nil {
			releaseCounts(counts)
			return nil, err
		}
		end := start + slabSize
		if end > sp.End {
			end = sp.End
		}
		countSpanInto(counts, seq, Span{Start: start, End: end})
		reporter.ReportCount(processed.Add(int64(end-start)), total)
	}
	return counts, nil
}
