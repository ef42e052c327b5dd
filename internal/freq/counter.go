package freq

// CountSpan counts symbol occurrences within seq[sp.Start:sp.End].
// It is the chunk counter at the bottom of every strategy: pure, reads only
// its assigned sub-range, writes only the map it returns.
//
// Parameters:
//   - seq: The full input sequence. Never mutated.
//   - sp: The sub-range to count.
//
// Returns:
//   - map[rune]int: Exact occurrence counts for the symbols appearing in
//     the sub-range, and nothing else.
//   - error: An InvalidRangeError if sp does not satisfy the partition
//     contract for len(seq).
func CountSpan(seq []rune, sp Span) (map[rune]int, error) {
	if err := sp.Validate(len(seq)); err != nil {
		return nil, err
	}
	counts := make(map[rune]int, countsHint(sp.Len()))
	countSpanInto(counts, seq, sp)
	return counts, nil
}

// countSpanInto accumulates counts for seq[sp.Start:sp.End] into counts.
// The span must already be validated.
func countSpanInto(counts map[rune]int, seq []rune, sp Span) {
	for _, r := range seq[sp.Start:sp.End] {
		counts[r]++
	}
}

// countsHint sizes a fresh count map for a sub-range of the given length.
// Distinct-symbol counts saturate quickly for realistic alphabets, so the
// hint is capped well below the range length.
func countsHint(n int) int {
	const maxHint = 256
	if n < maxHint {
		return n
	}
	return maxHint
}
