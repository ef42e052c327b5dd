package freq

import (
	"context"

	"github.com/agbru/dupscan/internal/progress"
)

// SequentialScanner is the trusted single-pass reference: one goroutine,
// one count map, O(N) time and O(K) space for K distinct symbols. It is the
// correctness oracle for the parallel strategies and the fast path below
// the parallel threshold.
type SequentialScanner struct{}

// Name implements Scanner.
func (SequentialScanner) Name() string { return "sequential" }

// Scan implements Scanner.
func (SequentialScanner) Scan(ctx context.Context, seq []rune, progressChan chan<- progress.ProgressUpdate, idx int, opts Options) (Set, error) {
	opts = opts.normalized()
	reporter := newScanReporter(progressChan, idx)

	counts := acquireCounts()
	defer releaseCounts(counts)

	n := len(seq)
	for start := 0; start < n; start += opts.SlabSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + opts.SlabSize
		if end > n {
			end = n
		}
		countSpanInto(counts, seq, Span{Start: start, End: end})
		reporter.ReportCount(int64(end), int64(n))
	}

	reporter.Done()
	return DuplicatesFrom(counts, opts.Threshold), nil
}
