// This file contains the application configuration, flag parsing and
// validation. Resolution priority is CLI flags > environment variables >
// defaults; applyEnvOverrides in env.go implements the middle layer.

package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/dupscan/internal/errors"
)

// EnvPrefix is the prefix for all environment variables recognized by the
// application (e.g., DUPSCAN_WORKERS).
const EnvPrefix = "DUPSCAN_"

// DefaultInput is the sequence scanned when no input source is given.
// A default run therefore reports {'a'}.
const DefaultInput = "caiopa"

// DefaultTimeout is the maximum execution time applied when -timeout is not
// specified. Large enough for the billion-symbol benchmark on slow hardware.
const DefaultTimeout = 5 * time.Minute

// DefaultDuplicateThreshold is the minimum number of occurrences for a
// symbol to be reported as a duplicate.
const DefaultDuplicateThreshold = 2

// AppConfig holds the complete runtime configuration of the application.
// The zero value is not usable directly; obtain instances via ParseConfig.
type AppConfig struct {
	// Input is a literal text to scan, from -input.
	Input string
	// InputFile is a path to read the input text from, from -file.
	InputFile string
	// Bench is the length of a generated cycling-alphabet input, from -bench.
	// Zero means benchmark input generation is disabled.
	Bench uint64
	// Workers is the worker count for parallel strategies. Zero selects one
	// worker per available core.
	Workers int
	// Strategies selects the scan strategies to run: "auto", "all", or a
	// comma-separated list of strategy names.
	Strategies string
	// Threshold is the minimum global occurrence count for a symbol to be
	// reported as a duplicate.
	Threshold int
	// ParallelThreshold is the input length at which "auto" switches from the
	// sequential strategy to a parallel one. Zero selects the adaptive
	// hardware estimate.
	ParallelThreshold int
	// SlabSize is the number of symbols processed between cancellation
	// checks and progress reports. Zero selects the package default.
	SlabSize int
	// Timeout is the maximum total execution time.
	Timeout time.Duration
	// GCMode controls garbage collection during large scans:
	// "auto", "aggressive" or "disabled".
	GCMode string
	// Serve is the HTTP listen address for server mode. Empty disables it.
	Serve string
	// Output is a path to additionally write the scan result to.
	Output string
	// Verbose enables detailed output.
	Verbose bool
	// Details adds a detailed scan analysis block to the result output.
	Details bool
	// Quiet reduces output to the bare result, for scripting.
	Quiet bool
	// TUI launches the interactive dashboard.
	TUI bool
	// REPL launches the interactive read-eval-print loop.
	REPL bool
	// Calibrate runs the calibration mode and exits.
	Calibrate bool
	// AutoCalibrate runs a quick calibration before the scan to tune the
	// parallel threshold and worker count for this machine.
	AutoCalibrate bool
	// Completion names the shell to generate a completion script for.
	Completion string
	// ShowVersion prints version information and exits.
	ShowVersion bool
	// Args holds the positional arguments; they are joined into one input
	// string when no other input source is configured.
	Args []string
}

// HasExplicitInput reports whether any input source flag was provided.
// Positional arguments are not counted; the caller decides how to fold
// them in.
func (c AppConfig) HasExplicitInput() bool {
	return c.Input != "" || c.InputFile != "" || c.Bench > 0
}

// ParseConfig parses command-line arguments and environment variables into
// an AppConfig.
//
// Parameters:
//   - programName: The name used in usage output (argv[0]).
//   - args: The command-line arguments, excluding the program name.
//   - errWriter: The writer for flag-parsing error and usage output.
//   - availableStrategies: The registered strategy names, for -strategies
//     validation and usage text.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp if -h was requested, a ValidationError for
//     invalid values, or a parse error.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	registerFlags(fs, &cfg)
	fs.Usage = func() { printUsage(fs, programName, availableStrategies, errWriter) }

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Args = fs.Args()

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableStrategies); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// registerFlags declares all CLI flags on the flag set, binding them to cfg.
// Aliased flags (short and long form) share a destination; the last one
// parsed wins, which matches stdlib flag semantics.
func registerFlags(fs *flag.FlagSet, cfg *AppConfig) {
	// Input sources
	fs.StringVar(&cfg.Input, "input", "", "text to scan for duplicate symbols")
	fs.StringVar(&cfg.InputFile, "file", "", "file to read the input text from")
	fs.Uint64Var(&cfg.Bench, "bench", 0, "scan a generated cycling-alphabet input of `N` symbols")

	// Scan tuning
	fs.IntVar(&cfg.Workers, "workers", 0, "worker count for parallel strategies (0 = all cores)")
	fs.StringVar(&cfg.Strategies, "strategies", "auto", "strategies to run: auto, all, or a comma-separated list")
	fs.IntVar(&cfg.Threshold, "threshold", DefaultDuplicateThreshold, "minimum occurrences for a symbol to count as duplicate")
	fs.IntVar(&cfg.ParallelThreshold, "parallel-threshold", 0, "input length at which auto selection goes parallel (0 = adaptive)")
	fs.IntVar(&cfg.SlabSize, "slab-size", 0, "symbols per cancellation/progress slab (0 = default)")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "maximum execution time")
	fs.StringVar(&cfg.GCMode, "gc", "auto", "garbage collection mode during scans: auto, aggressive, disabled")

	// Modes
	fs.StringVar(&cfg.Serve, "serve", "", "run the HTTP scan server on `addr` (e.g., :8080)")
	fs.BoolVar(&cfg.TUI, "tui", false, "launch the interactive dashboard")
	fs.BoolVar(&cfg.REPL, "repl", false, "launch the interactive REPL")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "benchmark strategies and report the optimal configuration")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "run a quick calibration before scanning")
	fs.StringVar(&cfg.Completion, "completion", "", "generate a completion script for `shell` (bash, zsh, fish, powershell)")

	// Output control
	fs.StringVar(&cfg.Output, "o", "", "write the scan result to `file`")
	fs.StringVar(&cfg.Output, "output", "", "write the scan result to `file` (alias for -o)")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose output (alias for -v)")
	fs.BoolVar(&cfg.Details, "details", false, "show a detailed scan analysis block")
	fs.BoolVar(&cfg.Quiet, "q", false, "quiet output for scripts")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "quiet output for scripts (alias for -q)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version information and exit")
}

// printUsage writes the usage message with a short synopsis, the flag list
// and the recognized environment variables.
func printUsage(fs *flag.FlagSet, programName string, availableStrategies []string, out io.Writer) {
	fmt.Fprintf(out, "Usage: %s [options] [text ...]\n\n", programName)
	fmt.Fprintf(out, "Scans the input for symbols that appear at least %d times.\n", DefaultDuplicateThreshold)
	fmt.Fprintf(out, "Positional arguments are joined into a single input string.\n\n")
	fmt.Fprintf(out, "Options:\n")
	fs.PrintDefaults()
	if len(availableStrategies) > 0 {
		fmt.Fprintf(out, "\nStrategies: %s (plus \"auto\" and \"all\")\n", strings.Join(availableStrategies, ", "))
	}
	fmt.Fprintf(out, "\nEnvironment variables (prefix %s) override defaults for flags\n", EnvPrefix)
	fmt.Fprintf(out, "not given on the command line, e.g. %sWORKERS, %sTIMEOUT.\n", EnvPrefix, EnvPrefix)
}

// validCompletionShells are the accepted values for -completion.
var validCompletionShells = map[string]bool{
	"bash": true, "zsh": true, "fish": true, "powershell": true, "ps": true,
}

// validGCModes are the accepted values for -gc.
var validGCModes = map[string]bool{
	"auto": true, "aggressive": true, "disabled": true,
}

// Validate checks the configuration for invalid or conflicting values.
//
// Parameters:
//   - availableStrategies: The registered strategy names. An empty list
//     skips strategy-name membership checks.
//
// Returns:
//   - error: A ValidationError describing the first problem found, or nil.
func (c AppConfig) Validate(availableStrategies []string) error {
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be >= 0, got %d", c.Workers)}
	}
	if c.Threshold < 1 {
		return apperrors.ValidationError{Field: "threshold", Message: fmt.Sprintf("must be >= 1, got %d", c.Threshold)}
	}
	if c.ParallelThreshold < 0 {
		return apperrors.ValidationError{Field: "parallel-threshold", Message: fmt.Sprintf("must be >= 0, got %d", c.ParallelThreshold)}
	}
	if c.SlabSize < 0 {
		return apperrors.ValidationError{Field: "slab-size", Message: fmt.Sprintf("must be >= 0, got %d", c.SlabSize)}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: fmt.Sprintf("must be positive, got %s", c.Timeout)}
	}
	if !validGCModes[c.GCMode] {
		return apperrors.ValidationError{Field: "gc", Message: fmt.Sprintf("unknown mode %q (accepted values: auto, aggressive, disabled)", c.GCMode)}
	}
	if c.Completion != "" && !validCompletionShells[c.Completion] {
		return apperrors.ValidationError{Field: "completion", Message: fmt.Sprintf("unsupported shell %q (accepted values: bash, zsh, fish, powershell)", c.Completion)}
	}

	sources := 0
	if c.Input != "" {
		sources++
	}
	if c.InputFile != "" {
		sources++
	}
	if c.Bench > 0 {
		sources++
	}
	if sources > 1 {
		return apperrors.ValidationError{Field: "input", Message: "at most one of -input, -file and -bench may be given"}
	}

	if err := validateStrategies(c.Strategies, availableStrategies); err != nil {
		return err
	}
	return nil
}

// validateStrategies checks that every token in selection names a known
// strategy or one of the keywords "auto" and "all".
func validateStrategies(selection string, available []string) error {
	if selection == "" {
		return apperrors.ValidationError{Field: "strategies", Message: "must not be empty"}
	}
	for _, token := range strings.Split(selection, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return apperrors.ValidationError{Field: "strategies", Message: fmt.Sprintf("empty strategy name in %q", selection)}
		}
		if token == "auto" || token == "all" {
			continue
		}
		if len(available) == 0 {
			continue
		}
		known := false
		for _, name := range available {
			if token == name {
				known = true
				break
			}
		}
		if !known {
			return apperrors.ValidationError{Field: "strategies", Message: fmt.Sprintf("unknown strategy %q (accepted values: %s, auto, all)", token, strings.Join(available, ", "))}
		}
	}
	return nil
}
