// This file provides memory pooling for scan buffers to reduce GC pressure
// in loops that scan many inputs (REPL, server, calibration, benchmarks).

package freq

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Count Map Pool
// ─────────────────────────────────────────────────────────────────────────────

// countMapPool recycles local count maps. Maps are cleared on acquire, not
// on release, so a released map costs nothing until it is needed again.
var countMapPool = sync.Pool{
	New: func() any { return make(map[rune]int, 64) },
}

// acquireCounts gets a cleared count map from the pool.
//
// The returned map should be released using releaseCounts, preferably with defer:
//
//	counts := acquireCounts()
//	defer releaseCounts(counts)
func acquireCounts() map[rune]int {
	m := countMapPool.Get().(map[rune]int)
	clear(m)
	return m
}

// releaseCounts returns a count map to the pool. Safe to call with nil.
func releaseCounts(m map[rune]int) {
	if m == nil {
		return
	}
	countMapPool.Put(m)
}

// ─────────────────────────────────────────────────────────────────────────────
// Rune Buffer Pools
// ─────────────────────────────────────────────────────────────────────────────

// runePools pools []rune buffers by size class for callers that repeatedly
// materialize inputs of similar sizes (server request bodies, calibration
// probes). Size classes are powers of 4 from 256 to 16M runes; larger
// requests are allocated directly.
var runePools = [...]sync.Pool{
	{New: func() any { return make([]rune, 256) }},
	{New: func() any { return make([]rune, 1024) }},
	{New: func() any { return make([]rune, 4096) }},
	{New: func() any { return make([]rune, 16384) }},
	{New: func() any { return make([]rune, 65536) }},
	{New: func() any { return make([]rune, 262144) }},
	{New: func() any { return make([]rune, 1048576) }},  // 1M runes = 4MB
	{New: func() any { return make([]rune, 4194304) }},  // 4M runes = 16MB
	{New: func() any { return make([]rune, 16777216) }}, // 16M runes = 64MB
}

// runePoolSizes defines the size classes for rune buffer pools.
var runePoolSizes = [...]int{256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304, 16777216}

// runePoolIndex returns the pool index for a given size, or -1 if the size
// is too large for pooling.
//
// Uses O(1) bitwise computation instead of linear search: the sizes are
// powers of 4 starting at 4^4 = 256, so index i corresponds to size 4^(i+4)
// and bits.Len maps directly to the index.
func runePoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > runePoolSizes[len(runePoolSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 7) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// AcquireRunes gets a rune buffer of exactly the given length from the
// pool. The contents are unspecified; callers overwrite the buffer before
// use. Buffers beyond the largest size class are allocated directly.
//
// The returned buffer should be released using ReleaseRunes, preferably
// with defer:
//
//	buf := AcquireRunes(n)
//	defer ReleaseRunes(buf)
func AcquireRunes(size int) []rune {
	if size <= 0 {
		return nil
	}
	idx := runePoolIndex(size)
	if idx < 0 {
		return make([]rune, size)
	}
	buf := runePools[idx].Get().([]rune)
	return buf[:size]
}

// ReleaseRunes returns a buffer obtained from AcquireRunes to its pool.
// Buffers whose capacity does not match a size class were directly
// allocated and are left to the GC. Safe to call with nil.
func ReleaseRunes(buf []rune) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := runePoolIndex(c)
	if idx >= 0 && runePoolSizes[idx] == c {
		runePools[idx].Put(buf[:c])
	}
}
