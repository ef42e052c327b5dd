package freq

import "sort"

// Set is an unordered collection of symbols. It is the final output of an
// aggregation: the symbols whose global count reached the duplicate
// threshold. No iteration order is guaranteed; renderers needing a stable
// order use Sorted.
type Set map[rune]struct{}

// NewSet builds a set from the given symbols.
func NewSet(symbols ...rune) Set {
	s := make(Set, len(symbols))
	for _, r := range symbols {
		s[r] = struct{}{}
	}
	return s
}

// Contains reports whether r is in the set.
func (s Set) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Equal reports whether both sets hold exactly the same symbols.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if _, ok := other[r]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the symbols in ascending order. Presentation helper only;
// the set itself carries no ordering contract.
func (s Set) Sorted() []rune {
	out := make([]rune, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
