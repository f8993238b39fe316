package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/fibseq/internal/progress"
)

// CalculationResult encapsulates the outcome of one generator's run.
// It serves as the shared domain type between orchestration and presentation layers.
type CalculationResult struct {
	// Name is the strategy name of the generator (e.g., "memo").
	Name string
	// Values holds F(0)..F(bound-1). It is nil if an error occurred.
	Values []*big.Int
	// Duration is the time taken to produce the sequence.
	Duration time.Duration
	// Err contains any error that occurred during generation.
	Err error
}

// Last returns the final value of the sequence, or nil when it is empty.
func (r CalculationResult) Last() *big.Int {
	if len(r.Values) == 0 {
		return nil
	}
	return r.Values[len(r.Values)-1]
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Bound   int64
	Verbose bool
}

// ProgressReporter defines the interface for displaying generation progress.
// This interface decouples the orchestration layer from the presentation layer.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer focuses on coordinating
// the runs.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from generators.
	//   - numGenerators: The number of generators being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numGenerators int, out io.Writer)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting comparison results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays details about the retained result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles generation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
