package orchestration

import (
	"github.com/agbru/fibseq/internal/config"
	"github.com/agbru/fibseq/internal/fibonacci"
)

// GetGeneratorsToRun determines which generators should be executed for the
// selected algorithm. Returns fresh generators in alphabetically sorted order
// for consistent, reproducible behavior.
//
// Parameters:
//   - algo: The algorithm name, or "all".
//   - factory: The factory to retrieve implementations from.
//
// Returns:
//   - []fibonacci.Generator: The generators to execute; nil for an unknown name.
func GetGeneratorsToRun(algo string, factory *fibonacci.Factory) []fibonacci.Generator {
	if algo == config.AlgoAll {
		return factory.GetAll()
	}
	if !factory.Has(algo) {
		return nil
	}
	gen, err := factory.Get(algo)
	if err != nil {
		return nil
	}
	return []fibonacci.Generator{gen}
}

// ResolveBound returns the sequence bound for a run: the explicit bound when
// one was given, otherwise the strategy's default bound, or the smallest
// default bound of all strategies for a comparison.
func ResolveBound(cfg config.AppConfig, factory *fibonacci.Factory) int64 {
	if cfg.BoundSet {
		return cfg.N
	}
	if cfg.Algo == config.AlgoAll {
		return factory.MinDefaultBound()
	}
	return factory.DefaultBound(cfg.Algo)
}
