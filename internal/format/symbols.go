package format

import (
	"fmt"
	"strings"
)

// FormatSymbolSet renders symbols as a braced, quoted list: {'a', 'e'}.
// The caller supplies the display order; an empty slice renders as {}.
func FormatSymbolSet(symbols []rune) string {
	if len(symbols) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, r := range symbols {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", r)
	}
	b.WriteByte('}')
	return b.String()
}

// FormatSymbolPreview renders the first runes of a sequence for log and
// table display, eliding the rest: "caiopa" stays whole, a megabyte input
// becomes "helloworld... (1,000,000 symbols)".
func FormatSymbolPreview(seq []rune, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 16
	}
	if len(seq) <= maxLen {
		return string(seq)
	}
	return fmt.Sprintf("%s... (%s symbols)",
		string(seq[:maxLen]), FormatNumberString(fmt.Sprintf("%d", len(seq))))
}
