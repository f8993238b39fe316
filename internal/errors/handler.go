package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing error reports.
// It keeps this package free of a dependency on the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code it should produce.
// A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidIndex):
		return ExitErrorInvalidIndex
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError reports err on out and returns the matching exit code.
//
// Parameters:
//   - err: The error produced by the run (nil means success).
//   - duration: How long the run took before failing; zero hides it.
//   - out: The writer for the report, normally stderr.
//   - colors: The color provider for the report.
//
// Returns:
//   - int: The exit code for the process.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	msg := err.Error()
	if duration > 0 {
		msg = fmt.Sprintf("%s (after %s)", msg, duration)
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sTimeout: %s%s\n", colors.Yellow(), msg, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sCanceled: %s%s\n", colors.Yellow(), msg, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %s%s\n", colors.Red(), msg, colors.Reset())
	}
	return code
}
