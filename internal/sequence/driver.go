// Package sequence drives a fibonacci.Generator over the indices 0..N-1
// and emits the values in index order, one decimal value per line.
package sequence

import (
	"bufio"
	"context"
	"io"
	"iter"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/progress"
)

const tracerName = "github.com/agbru/fibseq/internal/sequence"

// progressSteps is the number of progress notifications sent over a run.
const progressSteps = 100

const maxPresizedBound = 1 << 20

// checkBound rejects a negative sequence bound.
func checkBound(bound int64) error {
	if bound < 0 {
		return apperrors.ValidationError{Field: "bound", Message: "must be non-negative"}
	}
	return nil
}

// Values returns the lazy sequence F(0), F(1), ..., F(bound-1).
// Iteration stops after the first error, which is yielded with a nil value.
// Context cancellation is checked before each index.
func Values(ctx context.Context, gen fibonacci.Generator, bound int64) iter.Seq2[*big.Int, error] {
	return func(yield func(*big.Int, error) bool) {
		if err := checkBound(bound); err != nil {
			yield(nil, err)
			return
		}
		for i := int64(0); i < bound; i++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			v, err := gen.Compute(i)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Collect evaluates the whole sequence eagerly.
func Collect(ctx context.Context, gen fibonacci.Generator, bound int64) ([]*big.Int, error) {
	var out []*big.Int
	if bound > 0 {
		out = make([]*big.Int, 0, bound)
	}
	for v, err := range Values(ctx, gen, bound) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteValues writes each value in decimal on its own line.
func WriteValues(w io.Writer, values []*big.Int) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, v := range values {
		buf = append(v.Append(buf[:0], 10), '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Summary describes a completed run.
type Summary struct {
	// Algorithm is the generator's strategy name.
	Algorithm string
	// Count is the number of values emitted.
	Count int64
	// Duration is the wall time of the run.
	Duration time.Duration
	// MaxDigits is the number of decimal digits of the last value.
	MaxDigits int
}

// Driver emits a sequence produced by a Generator.
type Driver struct {
	// Generator produces the values.
	Generator fibonacci.Generator
	// Bound is the exclusive upper index.
	Bound int64
	// Out receives one line per value.
	Out io.Writer
	// Progress, if set, receives the completed fraction.
	Progress progress.ProgressCallback
	// Logger, if set, receives debug entries.
	Logger logging.Logger
}

// Run emits F(0)..F(Bound-1) to Out. On failure, the values already emitted
// are flushed and the error is returned unchanged.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	summary := Summary{Algorithm: d.Generator.Name()}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "sequence.Run", trace.WithAttributes(
		attribute.String("fibseq.algorithm", summary.Algorithm),
		attribute.Int64("fibseq.bound", d.Bound),
	))
	defer span.End()

	start := time.Now()
	err := d.emit(ctx, &summary)
	summary.Duration = time.Since(start)

	span.SetAttributes(attribute.Int64("fibseq.emitted", summary.Count))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return summary, err
	}
	if d.Logger != nil {
		d.Logger.Debug("sequence emitted",
			logging.String("algorithm", summary.Algorithm),
			logging.Int64("count", summary.Count),
			logging.Int("max_digits", summary.MaxDigits),
		)
	}
	return summary, nil
}

func (d *Driver) emit(ctx context.Context, summary *Summary) error {
	bw := bufio.NewWriter(d.Out)
	step := d.Bound / progressSteps
	if step == 0 {
		step = 1
	}
	d.report(0)

	// Room for the widest value (log10(2) ≈ 0.30103 digits per bit), capped
	// so a huge bound does not allocate up front.
	buf := make([]byte, 0, min(fibonacci.EstimateBits(min(d.Bound, maxPresizedBound))*30103/100000+2, 1<<16))
	for v, err := range Values(ctx, d.Generator, d.Bound) {
		if err != nil {
			if flushErr := bw.Flush(); flushErr != nil {
				return flushErr
			}
			return err
		}
		buf = append(v.Append(buf[:0], 10), '\n')
		if _, werr := bw.Write(buf); werr != nil {
			return werr
		}
		summary.Count++
		summary.MaxDigits = len(buf) - 1
		if summary.Count%step == 0 {
			d.report(progress.Fraction(summary.Count, d.Bound))
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	d.report(1)
	return nil
}

func (d *Driver) report(value float64) {
	if d.Progress != nil {
		d.Progress(value)
	}
}
