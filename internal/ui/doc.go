// Package ui provides theme and color support for the application's user
// interface. It defines color schemes and exposes ANSI escape code accessors
// for consistent styling across the CLI, REPL, and calibration output.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between scan logic and presentation.
package ui
