package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version string. Release builds override it
// with -ldflags "-X github.com/agbru/dupscan/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the raw argument list requests version
// output. It runs before flag parsing so -version works even when the rest
// of the command line would not parse.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-version" || arg == "--version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "dupscan %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
