package freq

import "context"

// AggregateDuplicates returns the set of symbols occurring at least twice
// in seq. It is the package's primary entry point and runs the chunked
// strategy with workers bounded by available parallelism and by the input
// length (never below 1). An empty input yields an empty set.
//
// The call blocks until every dispatched chunk task has completed; the only
// early exit is cancellation of ctx, checked at slab boundaries. Callers
// needing a timeout wrap ctx with context.WithTimeout.
//
// Parameters:
//   - ctx: Controls cancellation of the aggregation.
//   - seq: The input sequence. Read-only for the duration of the call.
//   - workers: Desired worker count; 0 or negative selects DefaultWorkers.
//
// Returns:
//   - Set: The complete duplicate set. Never partial.
//   - error: A context error on cancellation, an InvalidRangeError for a
//     partitioning bug, or a consolidated TaskExecutionError if a chunk
//     task failed.
func AggregateDuplicates(ctx context.Context, seq []rune, workers int) (Set, error) {
	return ChunkedScanner{}.Scan(ctx, seq, nil, 0, Options{Workers: workers})
}

// AggregateDuplicatesString is AggregateDuplicates over a string's runes.
func AggregateDuplicatesString(ctx context.Context, s string, workers int) (Set, error) {
	return AggregateDuplicates(ctx, []rune(s), workers)
}
