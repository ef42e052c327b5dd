package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d\u00b5s", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatScanRate formats a throughput in symbols per second with a decimal
// magnitude suffix, e.g. "1.5 G symbols/s". Non-positive durations or
// counts render as "-".
func FormatScanRate(symbols int64, d time.Duration) string {
	if symbols <= 0 || d <= 0 {
		return "-"
	}
	rate := float64(symbols) / d.Seconds()
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.1f G symbols/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.1f M symbols/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1f K symbols/s", rate/1e3)
	default:
		return fmt.Sprintf("%.0f symbols/s", rate)
	}
}
