package freq

import (
	"context"

	"github.com/agbru/dupscan/internal/progress"
)

// Options tunes a single scan. The zero value selects the package defaults.
type Options struct {
	// Workers is the desired worker count for parallel strategies.
	// Non-positive selects DefaultWorkers.
	Workers int
	// Threshold is the minimum global count for a symbol to be reported.
	// Non-positive selects DuplicateThreshold.
	Threshold int
	// SlabSize is the number of symbols processed between cancellation
	// checks and progress reports. Non-positive selects ProgressSlabSize.
	SlabSize int
}

// normalized returns a copy of o with defaults applied.
func (o Options) normalized() Options {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers()
	}
	if o.Threshold <= 0 {
		o.Threshold = DuplicateThreshold
	}
	if o.SlabSize <= 0 {
		o.SlabSize = ProgressSlabSize
	}
	return o
}

// Scanner is implemented by every duplicate-scan strategy.
//
// Scan aggregates the duplicate set for seq. Progress updates are sent to
// progressChan (which may be nil) tagged with the scanner index; sends never
// block. Cancellation is honored at slab boundaries: a canceled context
// aborts the scan and returns the context's error. On success the returned
// set is complete; there are no partial results.
type Scanner interface {
	Name() string
	Scan(ctx context.Context, seq []rune, progressChan chan<- progress.ProgressUpdate, idx int, opts Options) (Set, error)
}

// newScanReporter wires a rate-limited reporter onto progressChan for the
// scanner at idx. A nil channel still yields a usable reporter whose
// notifications go nowhere.
func newScanReporter(progressChan chan<- progress.ProgressUpdate, idx int) *progress.Reporter {
	if progressChan == nil {
		return progress.NewReporter(nil)
	}
	subject := progress.NewProgressSubject()
	subject.Register(progress.NewChannelObserver(progressChan))
	return progress.NewReporter(subject.Freeze(idx))
}
