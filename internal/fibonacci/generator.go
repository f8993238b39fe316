//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks

package fibonacci

import (
	"math"
	"math/big"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// Generator computes the Fibonacci value at a given index.
type Generator interface {
	// Name returns the strategy name (e.g. "memo").
	Name() string
	// Compute returns F(n). It fails with apperrors.InvalidIndexError
	// when n is negative.
	Compute(n int64) (*big.Int, error)
}

// checkIndex rejects indices outside the recurrence's domain.
func checkIndex(n int64) error {
	if n < 0 {
		return apperrors.InvalidIndexError{Index: n}
	}
	return nil
}

// EstimateBits returns an approximation of the bit length of F(n).
func EstimateBits(n int64) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(float64(n) * FibonacciGrowthFactor))
}
