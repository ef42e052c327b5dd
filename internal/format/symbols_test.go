package format

import (
	"testing"
	"time"
)

func TestFormatSymbolSet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		symbols  []rune
		expected string
	}{
		{"empty", nil, "{}"},
		{"single", []rune{'a'}, "{'a'}"},
		{"several", []rune{'e', 'l', 'o', 't'}, "{'e', 'l', 'o', 't'}"},
		{"digit_and_punctuation", []rune{'1', '!'}, "{'1', '!'}"},
		{"unicode", []rune{'é', '日'}, "{'é', '日'}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatSymbolSet(tt.symbols); got != tt.expected {
				t.Errorf("FormatSymbolSet(%q) = %q, want %q", string(tt.symbols), got, tt.expected)
			}
		})
	}
}

func TestFormatSymbolPreview(t *testing.T) {
	t.Parallel()

	if got := FormatSymbolPreview([]rune("caiopa"), 16); got != "caiopa" {
		t.Errorf("short input preview = %q, want unmodified", got)
	}

	long := make([]rune, 2000)
	for i := range long {
		long[i] = 'x'
	}
	got := FormatSymbolPreview(long, 10)
	want := "xxxxxxxxxx... (2,000 symbols)"
	if got != want {
		t.Errorf("long input preview = %q, want %q", got, want)
	}

	// Non-positive maxLen falls back to a sane default.
	if got := FormatSymbolPreview(long, 0); !contains(got, "symbols)") {
		t.Errorf("default preview = %q, want elided form", got)
	}
}

func TestFormatScanRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		symbols  int64
		d        time.Duration
		expected string
	}{
		{"zero_symbols", 0, time.Second, "-"},
		{"zero_duration", 1000, 0, "-"},
		{"plain", 500, time.Second, "500 symbols/s"},
		{"kilo", 2500, time.Second, "2.5 K symbols/s"},
		{"mega", 1_500_000, time.Second, "1.5 M symbols/s"},
		{"giga", 2_000_000_000, time.Second, "2.0 G symbols/s"},
		{"sub_second", 1_000_000, 100 * time.Millisecond, "10.0 M symbols/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatScanRate(tt.symbols, tt.d); got != tt.expected {
				t.Errorf("FormatScanRate(%d, %v) = %q, want %q", tt.symbols, tt.d, got, tt.expected)
			}
		})
	}
}
