package freq

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// goldenCase mirrors the fixture schema written by cmd/generate-golden.
type goldenCase struct {
	Name       string   `json:"name"`
	Input      string   `json:"input"`
	Threshold  int      `json:"threshold"`
	Duplicates []string `json:"duplicates"`
}

// TestScanners_GoldenFixtures runs every registered strategy against the
// committed fixtures. The expected sets come from an independent naive
// counter (cmd/generate-golden), so agreement here means the slab and
// worker machinery did not change the semantics.
func TestScanners_GoldenFixtures(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "golden_scans.json"))
	if err != nil {
		t.Fatalf("reading fixtures: %v", err)
	}
	var cases []goldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("fixture file contains no cases")
	}

	for _, scanner := range GlobalFactory().GetAll() {
		scanner := scanner
		t.Run(scanner.Name(), func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				symbols := make([]rune, 0, len(tc.Duplicates))
				for _, s := range tc.Duplicates {
					symbols = append(symbols, []rune(s)[0])
				}
				want := NewSet(symbols...)

				got, err := scanner.Scan(context.Background(), []rune(tc.Input), nil, 0, Options{Threshold: tc.Threshold})
				if err != nil {
					t.Fatalf("%s: %v", tc.Name, err)
				}
				if !got.Equal(want) {
					t.Errorf("%s: got %v, want %v", tc.Name, got.Sorted(), tc.Duplicates)
				}
			}
		})
	}
}
