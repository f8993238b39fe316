// Package config parses command-line flags and environment variables into
// the application configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/ui"
)

// EnvPrefix is prepended to every environment variable read by the application.
const EnvPrefix = "FIBSEQ_"

// AlgoAll selects every registered strategy for a comparison run.
const AlgoAll = "all"

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// DefaultTimeout bounds a whole run.
const DefaultTimeout = 5 * time.Minute

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the exclusive upper bound of the emitted sequence.
	N int64
	// BoundSet reports whether N was given explicitly; otherwise the
	// strategy's default bound applies.
	BoundSet bool
	// Index selects single-index mode when IndexSet is true.
	Index int64
	// IndexSet reports whether --index was given.
	IndexSet bool
	// Algo is the strategy name, or "all" for a comparison run.
	Algo string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Quiet suppresses informational diagnostics; errors are still reported.
	Quiet bool
	// Verbose enables debug logging and the run summary.
	Verbose bool
	// Progress shows a spinner with a progress bar on stderr.
	Progress bool
	// Metrics prints the collected metrics on stderr after the run.
	Metrics bool
	// NoColor disables colored output.
	NoColor bool
	// Theme names the color theme; empty selects the default.
	Theme string
	// LogFormat selects human-readable console logs or JSON lines.
	LogFormat string
	// Completion names the shell to generate a completion script for.
	Completion string
	// EnvFile is an optional dotenv file loaded before environment overrides.
	EnvFile string
}

// Validate checks the configuration for semantic errors.
//
// Parameters:
//   - availableAlgos: The registered strategy names.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.N < 0 {
		return apperrors.NewConfigError("the sequence bound -n must be non-negative, got %d", c.N)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("the timeout must be positive, got %s", c.Timeout)
	}
	if c.Algo != AlgoAll && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm %q; available: %s, %s",
			c.Algo, strings.Join(availableAlgos, ", "), AlgoAll)
	}
	if c.Theme != "" && !slices.Contains(ui.ThemeNames(), c.Theme) {
		return apperrors.NewConfigError("unrecognized theme %q; available: %s",
			c.Theme, strings.Join(ui.ThemeNames(), ", "))
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return apperrors.NewConfigError("unrecognized log format %q; available: %s, %s",
			c.LogFormat, LogFormatConsole, LogFormatJSON)
	}
	if c.IndexSet && c.Algo == AlgoAll {
		return apperrors.NewConfigError("--index cannot be combined with --algo %s", AlgoAll)
	}
	return nil
}

// ParseConfig parses the command-line arguments, applies environment
// overrides and validates the result.
//
// Priority: CLI flags > environment variables (including a dotenv file) > defaults.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments without the program name.
//   - errorWriter: The writer for usage and parse errors.
//   - availableAlgos: The registered strategy names.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Prints F(0)..F(N-1), one value per line.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.Int64Var(&config.N, "n", 0, "Number of sequence values to print (default: per-algorithm bound).")
	fs.Int64Var(&config.Index, "index", 0, "Print only F(index).")
	fs.Int64Var(&config.Index, "i", 0, "Print only F(index) (shorthand).")
	fs.StringVar(&config.Algo, "algo", "memo", fmt.Sprintf("Algorithm to use: %s or %s.", strings.Join(availableAlgos, ", "), AlgoAll))
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress informational output on stderr; errors are still reported.")
	fs.BoolVar(&config.Quiet, "q", false, "Suppress informational output (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logs and the run summary.")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logs (shorthand).")
	fs.BoolVar(&config.Progress, "progress", false, "Show a progress indicator on stderr.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print collected metrics on stderr after the run.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Theme, "theme", "", fmt.Sprintf("Color theme: %s.", strings.Join(ui.ThemeNames(), ", ")))
	fs.StringVar(&config.LogFormat, "log-format", LogFormatConsole, "Log format on stderr: console or json.")
	fs.StringVar(&config.Completion, "completion", "", "Generate a completion script (bash, zsh, fish).")
	fs.StringVar(&config.EnvFile, "env-file", "", "Load FIBSEQ_ variables from a dotenv file.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, reportError(errorWriter, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}
	config.BoundSet = isFlagSet(fs, "n")
	config.IndexSet = isFlagSetAny(fs, "index", "i")

	if !isFlagSet(fs, "env-file") {
		config.EnvFile = getEnvString("ENV_FILE", "")
	}
	if config.EnvFile != "" {
		if err := godotenv.Load(config.EnvFile); err != nil {
			return AppConfig{}, reportError(errorWriter, apperrors.NewConfigError("loading env file %q: %v", config.EnvFile, err))
		}
	}
	if err := applyEnvOverrides(&config, fs); err != nil {
		return AppConfig{}, reportError(errorWriter, err)
	}

	if err := config.Validate(availableAlgos); err != nil {
		return AppConfig{}, reportError(errorWriter, err)
	}
	return config, nil
}

// reportError writes err to w and returns it. Parse errors from the flag
// package are already reported by the FlagSet itself.
func reportError(w io.Writer, err error) error {
	fmt.Fprintln(w, "Error:", err)
	return err
}
