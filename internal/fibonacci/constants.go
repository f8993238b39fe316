package fibonacci

// Default sequence bounds per strategy. The naive strategy is exponential,
// so its bound stays two orders of magnitude below the linear ones.
const (
	// DefaultNaiveBound is the default number of values emitted by the
	// naive strategy.
	DefaultNaiveBound = 40

	// DefaultMemoBound is the default number of values emitted by the
	// memoized strategy.
	DefaultMemoBound = 3000

	// DefaultIterativeBound is the default number of values emitted by the
	// iterative strategy.
	DefaultIterativeBound = 3000
)

// MaxRecursionDepth caps how far past the cached prefix the memoized
// strategy may recurse. Deeper requests would exhaust the goroutine stack.
const MaxRecursionDepth = 1 << 20

// Strategy names as exposed on the command line.
const (
	NameNaive     = "naive"
	NameMemo      = "memo"
	NameIterative = "iterative"
)

// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
// Used to estimate the bit length of F(n).
const FibonacciGrowthFactor = 0.69424
