package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/agbru/fibseq/internal/cli"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/sysmon"
)

// runSequence emits F(0)..F(N-1) with the selected generator.
func (a *Application) runSequence(ctx context.Context, out io.Writer) int {
	gen, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		return a.fail(err, 0)
	}
	bound := orchestration.ResolveBound(a.Config, a.Factory)
	a.Logger.Debug("starting sequence",
		logging.String("algorithm", gen.Name()),
		logging.Int64("bound", bound),
	)

	memory := metrics.NewMemoryCollector()
	before := memory.Snapshot()

	driver := &sequence.Driver{Generator: gen, Bound: bound, Out: out, Logger: a.Logger}
	stopProgress := func() {}
	if a.Config.Progress && !a.Config.Quiet {
		driver.Progress, stopProgress = cli.ProgressCallback(a.ErrWriter)
	}
	summary, err := driver.Run(ctx)
	stopProgress()

	a.observe(gen, summary.Count, summary.Duration, err)
	if err != nil {
		msg := "sequence failed"
		if apperrors.IsContextError(err) {
			msg = "sequence interrupted"
		}
		a.Logger.Debug(msg, logging.Int64("emitted", summary.Count), logging.Err(err))
		return a.fail(err, summary.Duration)
	}

	if a.Config.Verbose && !a.Config.Quiet {
		diag := a.diag()
		cli.DisplaySummary(summary, diag)
		cli.DisplayMemoryStats(memory.Snapshot().Delta(before), diag)
		cli.DisplaySystemStats(sysmon.Sample(ctx), diag)
	}
	return apperrors.ExitSuccess
}

// runIndex emits the single value F(index).
func (a *Application) runIndex(ctx context.Context, out io.Writer) int {
	gen, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		return a.fail(err, 0)
	}
	a.Logger.Debug("computing single index",
		logging.String("algorithm", gen.Name()),
		logging.Int64("index", a.Config.Index),
	)

	start := time.Now()
	value, err := computeWithContext(ctx, gen, a.Config.Index)
	duration := time.Since(start)

	var emitted int64
	if err == nil {
		emitted = 1
	}
	a.observe(gen, emitted, duration, err)
	if err != nil {
		return a.fail(err, duration)
	}
	if err := cli.WriteValue(out, value); err != nil {
		return a.fail(apperrors.WrapError(err, "writing F(%d)", a.Config.Index), duration)
	}
	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayResult(value, a.Config.Index, duration, false, a.diag())
	}
	return apperrors.ExitSuccess
}

// computeWithContext runs gen.Compute(n) in its own goroutine so that a
// deadline or signal ends the wait even when the computation is slow.
func computeWithContext(ctx context.Context, gen fibonacci.Generator, n int64) (*big.Int, error) {
	type result struct {
		value *big.Int
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := gen.Compute(n)
		done <- result{v, err}
	}()
	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// runCompare runs every strategy over the same bound, checks that the
// sequences agree, and emits the values of the fastest one.
func (a *Application) runCompare(ctx context.Context, out io.Writer) int {
	gens := orchestration.GetGeneratorsToRun(a.Config.Algo, a.Factory)
	bound := orchestration.ResolveBound(a.Config, a.Factory)
	a.Logger.Debug("starting comparison",
		logging.Int("generators", len(gens)),
		logging.Int64("bound", bound),
	)

	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	if a.Config.Progress && !a.Config.Quiet {
		reporter = cli.CLIProgressReporter{}
	}
	results := orchestration.ExecuteComparison(ctx, gens, bound, reporter, a.ErrWriter)
	for i, res := range results {
		a.observe(gens[i], int64(len(res.Values)), res.Duration, res.Err)
	}

	presenter := cli.CLIResultPresenter{}
	opts := orchestration.PresentationOptions{Bound: bound, Verbose: a.Config.Verbose}
	best, code := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, a.diag())
	if code != apperrors.ExitSuccess {
		if a.Config.Quiet {
			fmt.Fprintf(a.ErrWriter, "Error: comparison failed (exit code %d)\n", code)
		}
		return code
	}
	if err := sequence.WriteValues(out, best.Values); err != nil {
		return a.fail(apperrors.WrapError(err, "writing %s values", best.Name), 0)
	}
	return apperrors.ExitSuccess
}

// observe records a finished run in the metrics collector, if any.
func (a *Application) observe(gen fibonacci.Generator, emitted int64, duration time.Duration, err error) {
	if a.Metrics == nil {
		return
	}
	a.Metrics.ObserveRun(metrics.RunStats{
		Algorithm: gen.Name(),
		Emitted:   emitted,
		Duration:  duration,
		Err:       err,
	})
	if m, ok := gen.(*fibonacci.Memoized); ok {
		stats := m.Stats()
		a.Metrics.ObserveCache(gen.Name(), metrics.CacheStats{
			Calls:   stats.Calls,
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			Entries: m.Cache().Len(),
		})
	}
}

// fail reports err on the error writer and returns its exit code. A
// deadline is reported against the configured --timeout.
func (a *Application) fail(err error, duration time.Duration) int {
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: a.mode(), Limit: a.Config.Timeout}
	}
	return cli.CLIResultPresenter{}.HandleError(err, duration, a.ErrWriter)
}

// mode names the operation selected by the configuration.
func (a *Application) mode() string {
	switch {
	case a.Config.IndexSet:
		return "index"
	case a.Config.Algo == config.AlgoAll:
		return "comparison"
	default:
		return "sequence"
	}
}
