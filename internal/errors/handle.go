// This file implements terminal error reporting for the presentation
// layers. CLI and TUI share it so both surfaces describe failures the
// same way.

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI color sequences for error display.
// A nil provider disables coloring entirely.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleScanError reports a terminal scan error to out and maps it to the
// process exit code. Cancellation and timeout get dedicated messages with a
// hint where one exists; everything else is reported generically.
//
// Parameters:
//   - err: The error that ended the scan. nil reports success.
//   - duration: How long the scan ran before failing.
//   - out: The writer for the user-facing message.
//   - colors: The color provider, or nil for plain output.
//
// Returns:
//   - int: The exit code for the error (see ExitCodeFor).
func HandleScanError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	var red, yellow, reset string
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "\n%sThe scan timed out after %s.%s\n", red, duration, reset)
		fmt.Fprintf(out, "%sIncrease -timeout or reduce the input size.%s\n", yellow, reset)
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "\n%sThe scan was canceled after %s.%s\n", red, duration, reset)
	default:
		fmt.Fprintf(out, "\n%sError during the scan: %v%s\n", red, err, reset)
	}

	return ExitCodeFor(err)
}
