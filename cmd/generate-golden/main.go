// Command generate-golden regenerates the golden duplicate-set fixtures
// under internal/freq/testdata. The expected sets come from a naive
// single-pass counter with none of the slab, worker or pooling machinery
// of the real scanners, so the fixtures stay trustworthy when a strategy
// changes.
//
// Usage:
//
//	go run ./cmd/generate-golden [-out internal/freq/testdata/golden_scans.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GoldenCase is one fixture: an input, a threshold and the expected
// duplicate set.
type GoldenCase struct {
	Name       string   `json:"name"`
	Input      string   `json:"input"`
	Threshold  int      `json:"threshold"`
	Duplicates []string `json:"duplicates"`
}

func main() {
	outPath := flag.String("out", filepath.Join("internal", "freq", "testdata", "golden_scans.json"),
		"fixture file to write")
	flag.Parse()

	cases := buildCases()
	for i := range cases {
		cases[i].Duplicates = countDuplicates([]rune(cases[i].Input), cases[i].Threshold)
	}

	if err := writeFixtures(*outPath, cases); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d golden cases to %s\n", len(cases), *outPath)
}

// buildCases returns the fixture inputs. Inputs are embedded literally so a
// fixture never depends on a generator staying stable.
func buildCases() []GoldenCase {
	return []GoldenCase{
		{Name: "default input", Input: "caiopa", Threshold: 2},
		{Name: "four duplicates", Input: "helloworldtest", Threshold: 2},
		{Name: "empty input", Input: "", Threshold: 2},
		{Name: "single symbol", Input: "z", Threshold: 2},
		{Name: "all identical", Input: "aaaa", Threshold: 2},
		{Name: "threshold three", Input: "caiopaa", Threshold: 3},
		{Name: "mississippi", Input: "mississippi", Threshold: 2},
		{Name: "unicode text", Input: "héllo wörld héllo", Threshold: 2},
		{Name: "cycling alphabet partial", Input: cyclingAlphabet(30), Threshold: 2},
		{Name: "cycling alphabet full", Input: cyclingAlphabet(52), Threshold: 2},
		{Name: "random corpus small", Input: randomCorpus(64, 8, 1), Threshold: 2},
		{Name: "random corpus sparse", Input: randomCorpus(40, 26, 7), Threshold: 2},
	}
}

// cyclingAlphabet mirrors the benchmark input shape: lowercase letters
// repeating in order.
func cyclingAlphabet(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	return b.String()
}

// randomCorpus derives a deterministic pseudo-random corpus from seed. The
// LCG lives here on purpose: fixtures must not chase the library's
// generator.
func randomCorpus(n, alphabetSize int, seed uint64) string {
	state := seed
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		state = state*6364136223846793005 + 1442695040888963407
		b.WriteByte(byte('a' + int((state>>33)%uint64(alphabetSize))))
	}
	return b.String()
}

// countDuplicates is the oracle: one map, one pass, report the symbols at
// or above the threshold, sorted for stable fixtures.
func countDuplicates(seq []rune, threshold int) []string {
	counts := make(map[rune]int, len(seq))
	for _, r := range seq {
		counts[r]++
	}

	duplicates := make([]rune, 0, len(counts))
	for r, c := range counts {
		if c >= threshold {
			duplicates = append(duplicates, r)
		}
	}
	sort.Slice(duplicates, func(i, j int) bool { return duplicates[i] < duplicates[j] })

	out := make([]string, len(duplicates))
	for i, r := range duplicates {
		out[i] = string(r)
	}
	return out
}

// writeFixtures writes the cases as indented JSON.
func writeFixtures(path string, cases []GoldenCase) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
