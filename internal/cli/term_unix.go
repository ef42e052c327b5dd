//go:build unix

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminalWidth returns the column count of the controlling terminal.
// Falls back to DefaultTerminalWidth when stdout is not a terminal or the
// ioctl fails.
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return DefaultTerminalWidth
	}
	return int(ws.Col)
}
