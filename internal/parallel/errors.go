// Package parallel provides small synchronization helpers shared by the
// concurrent scan strategies.
package parallel

import (
	"sync"
	"sync/atomic"
)

// ErrorCollector retains the first non-nil error it is given. It is safe for
// concurrent use and its zero value is ready to use. Workers report failures
// through SetError without coordinating; the owner reads the outcome once
// with Err after the join barrier.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is the first non-nil error seen. Later errors
// are dropped: the consolidated failure reported to callers carries exactly
// one cause.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first recorded error, or nil if none was set.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// OutcomeTally counts task completions and failures. Zero value ready;
// safe for concurrent use. It feeds the completed/total figures of a
// consolidated task failure after every dispatched task has reported.
type OutcomeTally struct {
	completed atomic.Int64
	failed    atomic.Int64
}

// Success records one successfully completed task.
func (t *OutcomeTally) Success() { t.completed.Add(1) }

// Failure records one failed task.
func (t *OutcomeTally) Failure() { t.failed.Add(1) }

// Completed returns the number of tasks that finished successfully.
func (t *OutcomeTally) Completed() int { return int(t.completed.Load()) }

// Failed returns the number of tasks that failed.
func (t *OutcomeTally) Failed() int { return int(t.failed.Load()) }

// Total returns the number of tasks that reported either way.
func (t *OutcomeTally) Total() int { return t.Completed() + t.Failed() }
