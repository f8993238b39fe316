package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/progress"
	"github.com/agbru/fibseq/internal/sequence"
)

const tracerName = "github.com/agbru/fibseq/internal/orchestration"

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of dropping updates when
// the UI is slow to consume them.
const ProgressBufferMultiplier = 5

// progressSteps is the number of progress notifications sent per generator.
const progressSteps = 100

// ExecuteComparison runs every generator over F(0)..F(bound-1), one at a time.
//
// Generators never run concurrently: each one owns its cache and the group
// is limited to a single goroutine. A failing generator does not stop the
// others; its error is recorded in its result.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - generators: The generators to execute.
//   - bound: The exclusive upper index of the sequence.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []CalculationResult: One result per generator, in input order.
func ExecuteComparison(ctx context.Context, generators []fibonacci.Generator, bound int64, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "orchestration.Compare", trace.WithAttributes(
		attribute.Int("fibseq.generators", len(generators)),
		attribute.Int64("fibseq.bound", bound),
	))
	defer span.End()

	var g errgroup.Group
	g.SetLimit(1)
	results := make([]CalculationResult, len(generators))
	progressChan := make(chan progress.ProgressUpdate, len(generators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(generators), out)

	for i, gen := range generators {
		g.Go(func() error {
			startTime := time.Now()
			values, err := collectWithProgress(ctx, gen, bound, progress.ChannelCallback(progressChan, i))
			if err != nil {
				err = apperrors.CalculationError{Cause: err}
			}
			results[i] = CalculationResult{
				Name: gen.Name(), Values: values, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// collectWithProgress evaluates the sequence eagerly, reporting the
// completed fraction as it goes.
func collectWithProgress(ctx context.Context, gen fibonacci.Generator, bound int64, report progress.ProgressCallback) ([]*big.Int, error) {
	step := max(bound/progressSteps, 1)
	var values []*big.Int
	if bound > 0 {
		values = make([]*big.Int, 0, bound)
	}
	report(0)
	for v, err := range sequence.Values(ctx, gen, bound) {
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if n := int64(len(values)); n%step == 0 {
			report(progress.Fraction(n, bound))
		}
	}
	report(1)
	return values, nil
}

// SortResults orders results with successes first, then by duration.
func SortResults(results []CalculationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
}

// equalSequences reports whether a and b hold the same values in order.
func equalSequences(a, b []*big.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// AnalyzeComparisonResults processes the results from multiple generators and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful runs, and displays a comparative table. The retained result is
// the fastest successful one.
//
// Parameters:
//   - results: The slice of results to analyze (sorted in place).
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The handler mapping the first error to an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - *CalculationResult: The retained result, or nil on failure or mismatch.
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) (*CalculationResult, int) {
	SortResults(results)

	var firstValidResult *CalculationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could generate the sequence.\n")
		return nil, errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !equalSequences(res.Values, firstValidResult.Values) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the sequences of the algorithms.\n")
			return nil, apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValidResult, opts, out)
	return firstValidResult, apperrors.ExitSuccess
}
