package fibonacci

import (
	"math/big"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// MemoStats counts the work performed by a Memoized generator.
type MemoStats struct {
	// Calls is the number of entries into the recursive step, hits included.
	Calls uint64
	// Hits is the number of lookups answered by the cache.
	Hits uint64
	// Misses is the number of values computed and inserted into the cache.
	Misses uint64
}

// Memoized evaluates the recursive definition over an explicit cache:
// every index is looked up before it is computed and inserted right after.
// The cache is unbounded and lives as long as the generator.
type Memoized struct {
	cache *Cache
	stats MemoStats
}

// MemoOption configures a Memoized generator.
type MemoOption func(*Memoized)

// WithCache makes the generator use c instead of a private cache.
func WithCache(c *Cache) MemoOption {
	return func(m *Memoized) {
		if c != nil {
			m.cache = c
		}
	}
}

// NewMemoized returns a memoized generator with an empty cache unless one
// is supplied with WithCache.
func NewMemoized(opts ...MemoOption) *Memoized {
	m := &Memoized{cache: NewCache()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the strategy name.
func (*Memoized) Name() string { return NameMemo }

// Compute returns F(n), reusing any value already in the cache. An index
// more than MaxRecursionDepth past the cached prefix is refused with
// apperrors.RecursionLimitError; computing the indices in order avoids it.
func (m *Memoized) Compute(n int64) (*big.Int, error) {
	if err := checkIndex(n); err != nil {
		return nil, err
	}
	if n-m.cache.Prefix() > MaxRecursionDepth {
		return nil, apperrors.RecursionLimitError{Index: n, Cached: m.cache.Prefix(), Limit: MaxRecursionDepth}
	}
	return new(big.Int).Set(m.fib(n)), nil
}

// Stats returns the counters accumulated since construction.
func (m *Memoized) Stats() MemoStats { return m.stats }

// Cache returns the cache owned by the generator.
func (m *Memoized) Cache() *Cache { return m.cache }

func (m *Memoized) fib(n int64) *big.Int {
	m.stats.Calls++
	if v, ok := m.cache.get(n); ok {
		m.stats.Hits++
		return v
	}
	var v *big.Int
	if n < 2 {
		v = big.NewInt(n)
	} else {
		v = new(big.Int).Add(m.fib(n-1), m.fib(n-2))
	}
	m.cache.put(n, v)
	m.stats.Misses++
	return v
}
