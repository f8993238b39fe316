package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/fibseq/internal/cli"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/ui"
)

// Application represents the fibseq application instance.
type Application struct {
	Config    config.AppConfig
	Factory   *fibonacci.Factory
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Collector
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom generator factory for the application.
func WithFactory(f *fibonacci.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}

	programName := "fibseq"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code. Values are written to out; diagnostics go to the
// application's ErrWriter.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor, a.Config.Theme)
	a.setupLogger()
	if a.Config.Metrics {
		a.Metrics = metrics.NewCollector(true)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	mode := a.mode()
	a.Logger.Info("run started", logging.String("mode", mode), logging.String("algorithm", a.Config.Algo))
	start := time.Now()

	var code int
	switch mode {
	case "index":
		code = a.runIndex(ctx, out)
	case "comparison":
		code = a.runCompare(ctx, out)
	default:
		code = a.runSequence(ctx, out)
	}

	if a.Metrics != nil {
		if err := a.Metrics.WriteText(a.ErrWriter); err != nil {
			a.Logger.Error("writing metrics", err)
		}
	}
	a.Logger.Info("run finished",
		logging.String("mode", mode),
		logging.Int("exit_code", code),
		logging.String("duration", time.Since(start).String()),
	)
	return code
}

// setupLogger builds the logger unless one was injected. Only warnings and
// errors are logged by default so stderr stays quiet on success; --verbose
// adds the run lifecycle (info) and details (debug), --quiet disables it.
func (a *Application) setupLogger() {
	if a.Logger != nil {
		return
	}
	a.Logger = newLogger(a.Config, a.ErrWriter)
}

func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	level := zerolog.WarnLevel
	switch {
	case cfg.Quiet:
		level = zerolog.Disabled
	case cfg.Verbose:
		level = zerolog.DebugLevel
	}
	if cfg.LogFormat == config.LogFormatJSON {
		return logging.NewLogger(w, "fibseq", level)
	}
	return logging.NewConsoleLogger(w, "fibseq", level, cfg.NoColor || ui.GetCurrentTheme().Name == "none")
}

// diag returns the writer for informational diagnostics.
func (a *Application) diag() io.Writer {
	if a.Config.Quiet {
		return io.Discard
	}
	return a.ErrWriter
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
