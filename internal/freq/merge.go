package freq

// MergeCounts folds src into dst with per-symbol integer addition. The merge
// is commutative and associative, so the order in which local maps are
// folded never affects the global tally.
func MergeCounts(dst, src map[rune]int) {
	for r, c := range src {
		dst[r] += c
	}
}

// DuplicatesFrom scans a stabilized global count map once and collects every
// symbol whose count is at least threshold. Callers must ensure no
// concurrent mutation of counts; all strategies run this strictly after
// their join barrier.
func DuplicatesFrom(counts map[rune]int, threshold int) Set {
	dup := make(Set)
	for r, c := range counts {
		if c >= threshold {
			dup[r] = struct{}{}
		}
	}
	return dup
}
