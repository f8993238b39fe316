package fibonacci

import "math/big"

// Naive evaluates the recurrence directly, with two recursive calls per step
// and no memoization. It holds no state.
type Naive struct{}

// NewNaive returns a naive generator.
func NewNaive() *Naive { return &Naive{} }

// Name returns the strategy name.
func (*Naive) Name() string { return NameNaive }

// Compute returns F(n).
func (*Naive) Compute(n int64) (*big.Int, error) {
	if err := checkIndex(n); err != nil {
		return nil, err
	}
	return naiveFib(n), nil
}

func naiveFib(n int64) *big.Int {
	if n < 2 {
		return big.NewInt(n)
	}
	r := naiveFib(n - 1)
	return r.Add(r, naiveFib(n-2))
}
