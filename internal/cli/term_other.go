//go:build !unix

package cli

// terminalWidth returns DefaultTerminalWidth on platforms without the
// TIOCGWINSZ ioctl.
func terminalWidth() int {
	return DefaultTerminalWidth
}
