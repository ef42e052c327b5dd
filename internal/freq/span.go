package freq

import (
	"runtime"

	apperrors "github.com/agbru/dupscan/internal/errors"
)

// Span is a half-open [Start, End) index range into an input sequence.
// The spans produced by Partition are disjoint and their union covers the
// whole input exactly once.
type Span struct {
	Start int
	End   int
}

// Len returns the number of symbols covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Validate checks the span against the partition contract
// 0 <= Start <= End <= n.
//
// Parameters:
//   - n: The length of the input sequence the span indexes into.
//
// Returns:
//   - error: An InvalidRangeError if the contract is violated, nil otherwise.
func (s Span) Validate(n int) error {
	if s.Start < 0 || s.Start > s.End || s.End > n {
		return apperrors.InvalidRangeError{Start: s.Start, End: s.End, Length: n}
	}
	return nil
}

// DefaultWorkers returns the worker budget used when the caller does not
// specify one: the number of CPUs usable by the current process.
func DefaultWorkers() int { return runtime.GOMAXPROCS(0) }

// Partition splits [0, n) into consecutive, non-overlapping spans for
// parallel counting. The number of chunks is max(1, min(workers, n)), so
// there are never more chunks than symbols; the chunk size is ceil(n/chunks)
// and the final span absorbs the remainder. A non-positive workers value
// selects DefaultWorkers.
//
// Every emitted span is validated before it can reach a worker; a violation
// indicates a partitioning bug and aborts the aggregation.
//
// Parameters:
//   - n: The input sequence length.
//   - workers: The desired worker count (0 or negative for automatic).
//
// Returns:
//   - []Span: The chunk descriptors covering [0, n) exactly once. Empty
//     input yields no spans.
//   - error: An InvalidRangeError if a produced span violates the contract.
func Partition(n, workers int) ([]Span, error) {
	if n <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	chunks := workers
	if chunks > n {
		chunks = n
	}
	if chunks < 1 {
		chunks = 1
	}
	chunkSize := (n + chunks - 1) / chunks

	spans := make([]Span, 0, chunks)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		// Empty chunks are never dispatched.
		if start >= end {
			continue
		}
		sp := Span{Start: start, End: end}
		if err := sp.Validate(n); err != nil {
			return nil, err
		}
		spans = append(spans, sp)
	}
	return spans, nil
}
