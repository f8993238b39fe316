package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", ConfigError{Message: "unknown algorithm"}, "unknown algorithm"},
		{"config formatted", NewConfigError("invalid value %q for -n", "ten"), `invalid value "ten" for -n`},
		{"invalid index", InvalidIndexError{Index: -3}, "invalid index -3: fibonacci index must be non-negative"},
		{"calculation", CalculationError{Cause: errors.New("cache corrupted")}, "cache corrupted"},
		{"timeout", TimeoutError{Operation: "sequence", Limit: 2 * time.Second}, `operation "sequence" timed out after 2s`},
		{"recursion limit", RecursionLimitError{Index: 5000000, Cached: -1, Limit: 1 << 20}, "index 5000000 needs a recursion depth of 5000001, over the limit of 1048576; use the iterative strategy for large indices"},
		{"validation", ValidationError{Field: "bound", Message: "must be >= 0"}, `validation error for "bound": must be >= 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvalidIndexMatchesSentinel(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("compute: %w", InvalidIndexError{Index: -1})
	if !errors.Is(err, ErrInvalidIndex) {
		t.Fatal("wrapped InvalidIndexError should match ErrInvalidIndex")
	}
	var idxErr InvalidIndexError
	if !errors.As(err, &idxErr) || idxErr.Index != -1 {
		t.Errorf("errors.As gave %+v", idxErr)
	}
}

func TestCalculationErrorUnwrap(t *testing.T) {
	t.Parallel()
	err := CalculationError{Cause: context.Canceled}
	if !errors.Is(err, context.Canceled) {
		t.Error("CalculationError should unwrap to its cause")
	}
	var cfg ConfigError
	if errors.As(NewConfigError("x"), &cfg); cfg.Message != "x" {
		t.Errorf("errors.As ConfigError = %+v", cfg)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	base := InvalidIndexError{Index: -7}
	err := WrapError(base, "index mode %s", "memo")
	if !strings.HasPrefix(err.Error(), "index mode memo: ") {
		t.Errorf("message = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidIndex) {
		t.Error("wrapped error should keep the chain")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("plain"), false},
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{WrapError(context.DeadlineExceeded, "sequence"), true},
		{TimeoutError{Operation: "sequence", Limit: time.Second}, true},
		{InvalidIndexError{Index: -1}, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitErrorGeneric},
		{"invalid index", InvalidIndexError{Index: -1}, ExitErrorInvalidIndex},
		{"wrapped invalid index", WrapError(InvalidIndexError{Index: -2}, "run"), ExitErrorInvalidIndex},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"timeout error", TimeoutError{Operation: "sequence", Limit: time.Second}, ExitErrorTimeout},
		{"canceled", CalculationError{Cause: context.Canceled}, ExitErrorCanceled},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"recursion limit", RecursionLimitError{Index: 1 << 30, Cached: -1, Limit: 1 << 20}, ExitErrorGeneric},
		{"wrapped config", fmt.Errorf("parse: %w", ConfigError{Message: "x"}), ExitErrorConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

type plainColors struct{}

func (plainColors) Red() string    { return "<r>" }
func (plainColors) Yellow() string { return "<y>" }
func (plainColors) Reset() string  { return "</>" }

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		duration time.Duration
		wantCode int
		wantOut  string
	}{
		{"nil", nil, 0, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, time.Second, ExitErrorTimeout,
			"<y>Timeout: context deadline exceeded (after 1s)</>\n"},
		{"named timeout", TimeoutError{Operation: "index", Limit: 50 * time.Millisecond}, 0, ExitErrorTimeout,
			"<y>Timeout: operation \"index\" timed out after 50ms</>\n"},
		{"canceled", context.Canceled, 0, ExitErrorCanceled, "<y>Canceled: context canceled</>\n"},
		{"invalid index", InvalidIndexError{Index: -1}, 0, ExitErrorInvalidIndex,
			"<r>Error: invalid index -1: fibonacci index must be non-negative</>\n"},
		{"generic with duration", errors.New("boom"), 250 * time.Millisecond, ExitErrorGeneric,
			"<r>Error: boom (after 250ms)</>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if code := HandleCalculationError(tt.err, tt.duration, &buf, plainColors{}); code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if buf.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", buf.String(), tt.wantOut)
			}
		})
	}
}
