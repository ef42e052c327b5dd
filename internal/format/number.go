package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumberString inserts comma thousand separators into a decimal
// number string. A leading sign is preserved. The input is assumed to be a
// plain integer representation; anything shorter than four digits passes
// through unchanged.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}

	sign := ""
	digits := s
	if digits[0] == '-' || digits[0] == '+' {
		sign = digits[:1]
		digits = digits[1:]
	}
	if len(digits) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(digits)/3)
	b.WriteString(sign)

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCount renders an integer with thousand separators, e.g. the symbol
// totals of a benchmark report: 1000000000 becomes "1,000,000,000".
func FormatCount(n int64) string {
	return FormatNumberString(strconv.FormatInt(n, 10))
}

// FormatBytes renders a byte count with a binary magnitude suffix.
//
// Parameters:
//   - b: The byte count.
//
// Returns:
//   - string: A human-readable size, e.g. "512 B" or "5.0 KB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
