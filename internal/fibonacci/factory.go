package fibonacci

import (
	"fmt"
	"sort"
)

// Constructor builds a fresh Generator.
type Constructor func() Generator

// registration pairs a constructor with the strategy's default bound.
type registration struct {
	build Constructor
	bound int64
}

// Factory creates generators by strategy name. Each call to Get returns a
// new instance, so stateful strategies never share a cache between runs.
type Factory struct {
	entries map[string]registration
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{entries: make(map[string]registration)}
}

// NewDefaultFactory returns a factory with the naive, memo and iterative
// strategies registered.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	f.Register(NameNaive, DefaultNaiveBound, func() Generator { return NewNaive() })
	f.Register(NameMemo, DefaultMemoBound, func() Generator { return NewMemoized() })
	f.Register(NameIterative, DefaultIterativeBound, func() Generator { return NewIterative() })
	return f
}

// Register adds or replaces a strategy.
func (f *Factory) Register(name string, defaultBound int64, build Constructor) {
	f.entries[name] = registration{build: build, bound: defaultBound}
}

// List returns the registered strategy names in sorted order.
func (f *Factory) List() []string {
	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (f *Factory) Has(name string) bool {
	_, ok := f.entries[name]
	return ok
}

// Get returns a new generator for name.
func (f *Factory) Get(name string) (Generator, error) {
	r, ok := f.entries[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q", name)
	}
	return r.build(), nil
}

// GetAll returns one new generator per registered strategy, in List order.
func (f *Factory) GetAll() []Generator {
	names := f.List()
	gens := make([]Generator, 0, len(names))
	for _, name := range names {
		gens = append(gens, f.entries[name].build())
	}
	return gens
}

// DefaultBound returns the default sequence bound for name, or 0 when the
// strategy is unknown.
func (f *Factory) DefaultBound(name string) int64 {
	return f.entries[name].bound
}

// MinDefaultBound returns the smallest default bound across all strategies.
func (f *Factory) MinDefaultBound() int64 {
	var lowest int64
	for _, r := range f.entries {
		if lowest == 0 || r.bound < lowest {
			lowest = r.bound
		}
	}
	return lowest
}
