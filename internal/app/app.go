package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/dupscan/internal/calibration"
	"github.com/agbru/dupscan/internal/cli"
	"github.com/agbru/dupscan/internal/config"
	apperrors "github.com/agbru/dupscan/internal/errors"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/logging"
	"github.com/agbru/dupscan/internal/server"
	"github.com/agbru/dupscan/internal/tui"
	"github.com/agbru/dupscan/internal/ui"
	"github.com/rs/zerolog"
)

// Application represents the dupscan application instance.
type Application struct {
	Config    config.AppConfig
	Factory   freq.ScannerFactory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom ScannerFactory for the application.
func WithFactory(f freq.ScannerFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = freq.NewDefaultFactory()
	}

	availableStrategies := app.Factory.List()

	programName := "dupscan"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableStrategies)
	if err != nil {
		return nil, err
	}

	app.Config = config.ApplyAdaptiveThresholds(cfg)
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logLevel(a.Config))
	ui.InitTheme(false)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	a.Config = a.runAutoCalibrationIfEnabled(ctx, out)

	if a.Config.Serve != "" {
		return a.runServe(ctx)
	}
	if a.Config.REPL {
		return a.runREPL(out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}

	return a.runScan(ctx, out)
}

// logLevel maps the output flags to the global zerolog level.
func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Quiet:
		return zerolog.ErrorLevel
	case cfg.Verbose:
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	availableStrategies := a.Factory.List()
	if err := cli.GenerateCompletion(out, a.Config.Completion, availableStrategies); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	return calibration.RunCalibration(ctx, out, a.Factory.GetAll(), cli.DisplayProgress, cli.CLIColorProvider{})
}

// runAutoCalibrationIfEnabled runs auto-calibration if enabled.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) config.AppConfig {
	if a.Config.AutoCalibrate {
		if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out, a.Factory.GetAll()); ok {
			return updated
		}
	}
	return a.Config
}

// runServe starts the HTTP scan server and blocks until shutdown.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "server")
	if err := server.NewServer(a.Config, a.Factory, logger).Run(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer) int {
	registry := make(map[string]freq.Scanner)
	for _, name := range a.Factory.List() {
		if s, err := a.Factory.Get(name); err == nil {
			registry[name] = s
		}
	}

	defaultStrategy := a.Config.Strategies
	if _, err := a.Factory.Get(defaultStrategy); err != nil {
		// "auto" and "all" are scan-mode specifiers; the REPL needs one
		// concrete strategy to start with.
		defaultStrategy = "sequential"
	}

	repl := cli.NewREPL(registry, cli.REPLConfig{
		DefaultStrategy: defaultStrategy,
		Timeout:         a.Config.Timeout,
		Workers:         a.Config.Workers,
		Threshold:       a.Config.Threshold,
		SlabSize:        a.Config.SlabSize,
		Details:         a.Config.Details,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	seq, code := a.resolveInput()
	if code != apperrors.ExitSuccess {
		return code
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	scannersToRun := a.scannersToRun(len(seq))
	return tui.Run(ctx, scannersToRun, seq, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
