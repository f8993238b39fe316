package fibonacci

import (
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// allGenerators returns a fresh instance of every strategy.
func allGenerators() []Generator {
	return []Generator{NewNaive(), NewMemoized(), NewIterative()}
}

func TestGenerators_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{3, "2"},
		{10, "55"},
		{20, "6765"},
		{25, "75025"},
	}

	for _, gen := range allGenerators() {
		gen := gen
		t.Run(gen.Name(), func(t *testing.T) {
			t.Parallel()
			for _, tt := range tests {
				got, err := gen.Compute(tt.n)
				if err != nil {
					t.Fatalf("Compute(%d) returned error: %v", tt.n, err)
				}
				if got.String() != tt.expected {
					t.Errorf("Compute(%d) = %s, want %s", tt.n, got, tt.expected)
				}
			}
		})
	}
}

func TestGenerators_LargeValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n        int64
		expected string
	}{
		{92, "7540113804746346429"},
		{93, "12200160415121876738"},
		{94, "19740274219868223167"},
		{100, "354224848179261915075"},
	}

	for _, gen := range []Generator{NewMemoized(), NewIterative()} {
		for _, tt := range tests {
			got, err := gen.Compute(tt.n)
			if err != nil {
				t.Fatalf("%s: Compute(%d) returned error: %v", gen.Name(), tt.n, err)
			}
			if got.String() != tt.expected {
				t.Errorf("%s: Compute(%d) = %s, want %s", gen.Name(), tt.n, got, tt.expected)
			}
		}
	}
}

func TestGenerators_NegativeIndex(t *testing.T) {
	t.Parallel()
	for _, gen := range allGenerators() {
		for _, n := range []int64{-1, -2, -1 << 62} {
			got, err := gen.Compute(n)
			if got != nil {
				t.Errorf("%s: Compute(%d) returned value %s, want nil", gen.Name(), n, got)
			}
			if !errors.Is(err, apperrors.ErrInvalidIndex) {
				t.Errorf("%s: Compute(%d) error = %v, want ErrInvalidIndex", gen.Name(), n, err)
			}
			var idxErr apperrors.InvalidIndexError
			if !errors.As(err, &idxErr) || idxErr.Index != n {
				t.Errorf("%s: Compute(%d) error should carry the index, got %+v", gen.Name(), n, idxErr)
			}
		}
	}
}

func TestGenerators_AgreeOnCommonRange(t *testing.T) {
	t.Parallel()
	naive, memo, iter := NewNaive(), NewMemoized(), NewIterative()
	for n := int64(0); n <= 30; n++ {
		a, _ := naive.Compute(n)
		b, _ := memo.Compute(n)
		c, _ := iter.Compute(n)
		if a.Cmp(b) != 0 || a.Cmp(c) != 0 {
			t.Errorf("F(%d) disagrees: naive=%s memo=%s iterative=%s", n, a, b, c)
		}
	}
}

func TestGenerators_Recurrence(t *testing.T) {
	t.Parallel()
	for _, gen := range allGenerators() {
		for n := int64(2); n <= 25; n++ {
			fn, _ := gen.Compute(n)
			f1, _ := gen.Compute(n - 1)
			f2, _ := gen.Compute(n - 2)
			if sum := new(big.Int).Add(f1, f2); sum.Cmp(fn) != 0 {
				t.Errorf("%s: F(%d)=%s but F(%d)+F(%d)=%s", gen.Name(), n, fn, n-1, n-2, sum)
			}
		}
	}
}

func TestMemoized_SecondCallIsCacheHit(t *testing.T) {
	t.Parallel()
	m := NewMemoized()

	first, err := m.Compute(30)
	if err != nil {
		t.Fatalf("Compute(30) returned error: %v", err)
	}
	before := m.Stats()
	if before.Misses != 31 {
		t.Errorf("first Compute(30) should fill 31 entries, got %d misses", before.Misses)
	}

	second, err := m.Compute(30)
	if err != nil {
		t.Fatalf("second Compute(30) returned error: %v", err)
	}
	after := m.Stats()

	if first.Cmp(second) != 0 {
		t.Errorf("repeated Compute(30) returned %s then %s", first, second)
	}
	if after.Misses != before.Misses {
		t.Errorf("second call computed %d new values, want 0", after.Misses-before.Misses)
	}
	if after.Calls-before.Calls != 1 || after.Hits-before.Hits != 1 {
		t.Errorf("second call should be a single cache hit, got calls=%d hits=%d",
			after.Calls-before.Calls, after.Hits-before.Hits)
	}
}

func TestMemoized_LinearWork(t *testing.T) {
	t.Parallel()
	m := NewMemoized()
	if _, err := m.Compute(1000); err != nil {
		t.Fatalf("Compute(1000) returned error: %v", err)
	}
	s := m.Stats()
	if s.Misses != 1001 {
		t.Errorf("Misses = %d, want 1001", s.Misses)
	}
	// Every index above 1 issues two lookups, one of which is a hit.
	if s.Calls > 2*1001 {
		t.Errorf("Calls = %d, expected linear work", s.Calls)
	}
	if m.Cache().Len() != 1001 {
		t.Errorf("cache size = %d, want 1001", m.Cache().Len())
	}
}

func TestMemoized_Idempotence(t *testing.T) {
	t.Parallel()
	m := NewMemoized()
	if _, err := m.Compute(50); err != nil {
		t.Fatalf("Compute(50) returned error: %v", err)
	}
	recorded, ok := m.Cache().Lookup(50)
	if !ok {
		t.Fatal("F(50) should be cached")
	}

	for i := 0; i < 5; i++ {
		v, _ := m.Compute(50)
		// Mutating a returned value must not leak into the cache.
		v.SetInt64(-1)
	}

	again, _ := m.Cache().Lookup(50)
	if again.Cmp(recorded) != 0 {
		t.Errorf("cached F(50) changed from %s to %s", recorded, again)
	}
	if recorded.String() != "12586269025" {
		t.Errorf("cached F(50) = %s, want 12586269025", recorded)
	}
}

func TestMemoized_NegativeIndexLeavesCacheUntouched(t *testing.T) {
	t.Parallel()
	m := NewMemoized()
	if _, err := m.Compute(-1); err == nil {
		t.Fatal("Compute(-1) should fail")
	}
	if m.Cache().Len() != 0 || m.Stats() != (MemoStats{}) {
		t.Errorf("failed call should not touch state, cache=%d stats=%+v", m.Cache().Len(), m.Stats())
	}
}

func TestMemoized_WithCache(t *testing.T) {
	t.Parallel()
	shared := NewCache()
	shared.Store(10, big.NewInt(55))

	m := NewMemoized(WithCache(shared))
	v, err := m.Compute(10)
	if err != nil {
		t.Fatalf("Compute(10) returned error: %v", err)
	}
	if v.Int64() != 55 {
		t.Errorf("Compute(10) = %s, want 55", v)
	}
	if s := m.Stats(); s.Misses != 0 || s.Hits != 1 {
		t.Errorf("preloaded index should be a hit, got %+v", s)
	}

	if _, err := m.Compute(12); err != nil {
		t.Fatalf("Compute(12) returned error: %v", err)
	}
	if _, ok := shared.Lookup(12); !ok {
		t.Error("injected cache should receive new entries")
	}
}

func TestMemoized_RecursionLimit(t *testing.T) {
	t.Parallel()
	m := NewMemoized()
	n := int64(MaxRecursionDepth + 1)
	v, err := m.Compute(n)
	var limitErr apperrors.RecursionLimitError
	if v != nil || !errors.As(err, &limitErr) {
		t.Fatalf("Compute(%d) = %v, %v; want RecursionLimitError", n, v, err)
	}
	if limitErr.Index != n || limitErr.Limit != MaxRecursionDepth {
		t.Errorf("error = %+v", limitErr)
	}
	if m.Cache().Len() != 0 {
		t.Errorf("refused call cached %d entries", m.Cache().Len())
	}

	// The depth is measured from the cached prefix.
	if _, err := m.Compute(20); err != nil {
		t.Fatalf("Compute(20) returned error: %v", err)
	}
	_, err = m.Compute(20 + MaxRecursionDepth + 1)
	if !errors.As(err, &limitErr) || limitErr.Cached != 20 {
		t.Errorf("error after filling 0..20 = %v, want Cached 20", err)
	}
}

func TestCache_Prefix(t *testing.T) {
	t.Parallel()
	c := NewCache()
	if c.Prefix() != -1 {
		t.Fatalf("empty Prefix() = %d, want -1", c.Prefix())
	}
	steps := []struct {
		store int64
		want  int64
	}{
		{1, -1},
		{3, -1},
		{0, 1},
		{2, 3},
		{5, 3},
		{4, 5},
	}
	for _, s := range steps {
		c.Store(s.store, big.NewInt(s.store))
		if got := c.Prefix(); got != s.want {
			t.Errorf("after Store(%d) Prefix() = %d, want %d", s.store, got, s.want)
		}
	}
}

func TestCache_StoreNeverOverwrites(t *testing.T) {
	t.Parallel()
	c := NewCache()
	if !c.Store(5, big.NewInt(5)) {
		t.Fatal("first Store should insert")
	}
	if c.Store(5, big.NewInt(99)) {
		t.Error("second Store should be rejected")
	}
	v, ok := c.Lookup(5)
	if !ok || v.Int64() != 5 {
		t.Errorf("Lookup(5) = %v, %v; want 5, true", v, ok)
	}
	if _, ok := c.Lookup(6); ok {
		t.Error("Lookup of a missing index should report false")
	}
}

func TestFactory(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	names := f.List()
	want := []string{NameIterative, NameMemo, NameNaive}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if _, err := f.Get("bogus"); err == nil {
		t.Error("Get of an unknown name should fail")
	}

	a, _ := f.Get(NameMemo)
	b, _ := f.Get(NameMemo)
	if a == b {
		t.Error("Get should return a new generator on every call")
	}

	if f.DefaultBound(NameNaive) != DefaultNaiveBound || f.DefaultBound(NameMemo) != DefaultMemoBound {
		t.Errorf("unexpected default bounds: naive=%d memo=%d", f.DefaultBound(NameNaive), f.DefaultBound(NameMemo))
	}
	if f.MinDefaultBound() != DefaultNaiveBound {
		t.Errorf("MinDefaultBound() = %d, want %d", f.MinDefaultBound(), DefaultNaiveBound)
	}
	if got := len(f.GetAll()); got != 3 {
		t.Errorf("GetAll() returned %d generators, want 3", got)
	}
}

func TestEstimateBits(t *testing.T) {
	t.Parallel()
	for _, n := range []int64{10, 100, 1000} {
		gen := NewIterative()
		v, _ := gen.Compute(n)
		est := EstimateBits(n)
		if diff := est - v.BitLen(); diff < -1 || diff > 2 {
			t.Errorf("EstimateBits(%d) = %d, actual %d", n, est, v.BitLen())
		}
	}
}
