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

// ShardedScanner keeps a live global count map during the scan, sharded by
// symbol hash so that merges touching different shards never block each
// other and merges of the same symbol serialize per shard. It exists to
// cross-validate the chunked strategy and to measure the cost of concurrent
// map maintenance against merge-after-barrier.
type ShardedScanner struct{}

// Name implements Scanner.
func (ShardedScanner) Name() string { return "sharded" }

// Scan implements Scanner.
func (ShardedScanner) Scan(ctx context.Context, seq []rune, progressChan chan<- progress.ProgressUpdate, idx int, opts Options) (Set, error) {
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

	var (
		global    shardedCounts
		wg        sync.WaitGroup
		collector parallel.ErrorCollector
		tally     parallel.OutcomeTally
		processed atomic.Int64
	)
	global.init()
	total := int64(len(seq))

	wg.Add(len(spans))
	for _, sp := range spans {
		go func(sp Span) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					collector.SetError(fmt.Errorf("chunk [%d, %d): panic: %v", sp.Start, sp.End, r))
					tally.Failure()
				}
			}()

			if err := mergeChunkSharded(ctx, seq, sp, opts.SlabSize, &global, &processed, total, reporter); err != nil {
				collector.SetError(err)
				tally.Failure()
				return
			}
			tally.Success()
		}(sp)
	}

	wg.Wait()

	if err := collector.Err(); err != nil {
		if apperrors.IsContextError(err) {
			return nil, err
		}
		return nil, apperrors.TaskExecutionError{
			Completed: tally.Completed(),
			Total:     len(spans),
			Cause:     err,
		}
	}

	reporter.Done()
	// All merge tasks joined: the shards are stable and may be read
	// without locks.
	return global.duplicates(opts.Threshold), nil
}

// mergeChunkSharded counts one span slab by slab into a scratch map and
// folds each slab into the sharded global map, so per-key serialization is
// exercised throughout the scan rather than once at the end.
func mergeChunkSharded(ctx context.Context, seq []rune, sp Span, slabSize int, global *shardedCounts, processed *atomic.Int64, total int64, reporter *progress.Reporter) error {
	if err := sp.Validate(len(seq)); err != nil {
		return err
	}

	scratch := acquireCounts()
	defer releaseCounts(scratch)

	for start := sp.Start; start < sp.End; start += slabSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + slabSize
		if end > sp.End {
			end = sp.End
		}
		clear(scratch)
		countSpanInto(scratch, seq, Span{Start: start, End: end})
		global.merge(scratch)
		reporter.ReportCount(processed.Add(int64(end-start)), total)
	}
	return nil
}

// shardedCounts is a global count map split across MergeShardCount
// mutex-guarded shards. The shard for a symbol is a pure function of the
// symbol, so the same key always serializes on the same lock and disjoint
// keys mostly do not contend.
type shardedCounts struct {
	shards [MergeShardCount]countShard
}

type countShard struct {
	mu     sync.Mutex
	counts map[rune]int
}

func (sc *shardedCounts) init() {
	for i := range sc.shards {
		sc.shards[i].counts = make(map[rune]int)
	}
}

func shardIndex(r rune) int {
	return int(uint32(r) & (MergeShardCount - 1))
}

// merge adds every entry of local into the sharded map, taking each shard
// lock at most once per call.
func (sc *shardedCounts) merge(local map[rune]int) {
	// Group keys by shard first so each lock is held for one batch.
	var batches [MergeShardCount][]rune
	for r := range local {
		i := shardIndex(r)
		batches[i] = append(batches[i], r)
	}
	for i, keys := range batches {
		if len(keys) == 0 {
			continue
		}
		sh := &sc.shards[i]
		sh.mu.Lock()
		for _, r := range keys {
			sh.counts[r] += local[r]
		}
		sh.mu.Unlock()
	}
}

// duplicates filters the stabilized shards. Callers must guarantee all
// merges have joined.
func (sc *shardedCounts) duplicates(threshold int) Set {
	dup := make(Set)
	for i := range sc.shards {
		for r, c := range sc.shards[i].counts {
			if c >= threshold {
				dup[r] = struct{}{}
			}
		}
	}
	return dup
}
