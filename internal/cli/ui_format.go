// Number formatting utilities for CLI output.

package cli

import "github.com/agbru/dupscan/internal/format"

// FormatNumberString delegates to format.FormatNumberString.
func FormatNumberString(s string) string {
	return format.FormatNumberString(s)
}

// FormatCount delegates to format.FormatCount.
func FormatCount(n int64) string {
	return format.FormatCount(n)
}
