package fibonacci

import "math/big"

// Iterative computes F(n) bottom-up with two running values. It produces the
// same values as the recursive strategies without any recursion depth.
type Iterative struct{}

// NewIterative returns an iterative generator.
func NewIterative() *Iterative { return &Iterative{} }

// Name returns the strategy name.
func (*Iterative) Name() string { return NameIterative }

// Compute returns F(n).
func (*Iterative) Compute(n int64) (*big.Int, error) {
	if err := checkIndex(n); err != nil {
		return nil, err
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for i := int64(0); i < n; i++ {
		// (a, b) = (b, a+b) reusing both buffers
		a.Add(a, b)
		a, b = b, a
	}
	return a, nil
}
