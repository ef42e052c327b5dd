// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayScanResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/dupscan/internal/format"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything except the duplicate set.
	Quiet bool
	// Verbose adds a per-symbol breakdown to the displayed result.
	Verbose bool
	// Details adds a detailed analysis block to the displayed result.
	Details bool
}

// WriteResultToFile writes a scan result to a file.
//
// Parameters:
//   - set: The duplicate symbols found.
//   - inputLen: The number of symbols scanned.
//   - threshold: The duplicate threshold used.
//   - duration: The scan duration.
//   - strategy: The strategy name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(set freq.Set, inputLen, threshold int, duration time.Duration, strategy string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Duplicate Scan Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Strategy: %s\n", strategy)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Symbols scanned: %d\n", inputLen)
	fmt.Fprintf(file, "# Threshold: %d\n", threshold)
	fmt.Fprintf(file, "# Duplicates found: %d\n", len(set))
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "Symbols appearing at least %d times:\n%s\n",
		threshold, format.FormatSymbolSet(set.Sorted()))

	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line duplicate set suitable for scripting.
//
// Parameters:
//   - set: The duplicate symbols found.
//
// Returns:
//   - string: The formatted set, e.g. {'a'}.
func FormatQuietResult(set freq.Set) string {
	return format.FormatSymbolSet(set.Sorted())
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - set: The duplicate symbols found.
func DisplayQuietResult(out io.Writer, set freq.Set) {
	fmt.Fprintln(out, FormatQuietResult(set))
}

// DisplayResultWithConfig displays a result with the given output
// configuration. This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - set: The duplicate symbols found.
//   - inputLen: The number of symbols scanned.
//   - threshold: The duplicate threshold used.
//   - duration: The scan duration.
//   - strategy: The strategy name.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, set freq.Set, inputLen, threshold int, duration time.Duration, strategy string, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, set)
	} else {
		DisplayScanResult(set, inputLen, threshold, duration, config.Verbose, config.Details, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(set, inputLen, threshold, duration, strategy, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
