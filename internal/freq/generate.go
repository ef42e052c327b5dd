// This file provides deterministic input generators for benchmarks,
// calibration probes, and large-input tests.

package freq

import "math/rand"

// CyclingAlphabet returns a sequence of n lowercase letters cycling
// through 'a'..'z'. For n >= 2*GeneratorAlphabetSize every letter
// appears at least twice, so the duplicate set is the full alphabet.
//
// Parameters:
//   - n: number of symbols to generate
//
// Returns:
//   - []rune: the generated sequence, nil when n <= 0
func CyclingAlphabet(n int) []rune {
	if n <= 0 {
		return nil
	}
	seq := make([]rune, n)
	CyclingAlphabetInto(seq)
	return seq
}

// CyclingAlphabetInto fills buf with the cycling alphabet pattern.
// Useful with AcquireRunes to avoid allocating huge benchmark inputs
// on every run.
func CyclingAlphabetInto(buf []rune) {
	for i := range buf {
		buf[i] = rune('a' + i%GeneratorAlphabetSize)
	}
}

// RandomRunes returns n symbols drawn uniformly from an alphabet of the
// given size starting at 'a', using a deterministic source so failures
// are reproducible from the seed alone.
//
// Parameters:
//   - n: number of symbols to generate
//   - alphabetSize: number of distinct symbols, clamped to at least 1
//   - seed: PRNG seed
//
// Returns:
//   - []rune: the generated sequence, nil when n <= 0
func RandomRunes(n, alphabetSize int, seed int64) []rune {
	if n <= 0 {
		return nil
	}
	seq := make([]rune, n)
	RandomRunesInto(seq, alphabetSize, seed)
	return seq
}

// RandomRunesInto fills buf like RandomRunes without allocating, so
// calibration can draw its probe inputs from a reused arena block.
func RandomRunesInto(buf []rune, alphabetSize int, seed int64) {
	if alphabetSize < 1 {
		alphabetSize = 1
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range buf {
		buf[i] = rune('a' + rng.Intn(alphabetSize))
	}
}
