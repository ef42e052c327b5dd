package progress

import "sync"

// MinReportDelta is the smallest progress change worth notifying. Updates
// below this granularity are coalesced so that tight scan loops do not
// flood observers.
const MinReportDelta = 0.01

// TotalSlabs returns the number of reporting steps for an input of n symbols
// processed in slabs of slabSize. Used to pre-size progress expectations.
func TotalSlabs(n, slabSize int) int {
	if n <= 0 || slabSize <= 0 {
		return 0
	}
	return (n + slabSize - 1) / slabSize
}

// Reporter rate-limits progress notifications for one scanner. Workers call
// ReportCount with running totals; the reporter quantizes to MinReportDelta
// steps and always delivers the terminal 1.0. Safe for concurrent use, so
// the parallel strategies can share one reporter across workers.
type Reporter struct {
	mu       sync.Mutex
	callback ProgressCallback
	lastSent float64
}

// NewReporter creates a reporter delivering through the given callback,
// typically a ProgressSubject.Freeze snapshot. A nil callback yields a
// reporter whose notifications go nowhere.
func NewReporter(callback ProgressCallback) *Reporter {
	return &Reporter{callback: callback, lastSent: -1}
}

// ReportCount publishes processed/total if it advances the last notified
// value by at least MinReportDelta.
func (r *Reporter) ReportCount(processed, total int64) {
	if total <= 0 {
		return
	}
	value := float64(processed) / float64(total)
	if value > 1 {
		value = 1
	}
	r.report(value)
}

// Done publishes the terminal progress value.
func (r *Reporter) Done() {
	r.report(1)
}

func (r *Reporter) report(value float64) {
	r.mu.Lock()
	if value < 1 && value-r.lastSent < MinReportDelta {
		r.mu.Unlock()
		return
	}
	if value == r.lastSent {
		r.mu.Unlock()
		return
	}
	r.lastSent = value
	r.mu.Unlock()

	if r.callback != nil {
		r.callback(value)
	}
}
