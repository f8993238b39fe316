package fibonacci

import "math/big"

// Cache maps an index to its Fibonacci value. It grows without bound and
// never evicts. A stored value is never replaced, and values passed in or
// out are copied so callers cannot alias the cache's storage.
type Cache struct {
	values map[int64]*big.Int
	// prefix is the largest h such that 0..h are all recorded, -1 if none.
	prefix int64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{values: make(map[int64]*big.Int), prefix: -1}
}

// Lookup returns a copy of the value recorded for n.
func (c *Cache) Lookup(n int64) (*big.Int, bool) {
	v, ok := c.values[n]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Store records v for n unless a value is already present.
// It reports whether v was inserted.
func (c *Cache) Store(n int64, v *big.Int) bool {
	if _, ok := c.values[n]; ok {
		return false
	}
	c.values[n] = new(big.Int).Set(v)
	c.advance()
	return true
}

// Len returns the number of recorded indices.
func (c *Cache) Len() int { return len(c.values) }

// Prefix returns the largest index h such that every index in 0..h is
// recorded, or -1 when F(0) is missing.
func (c *Cache) Prefix() int64 { return c.prefix }

func (c *Cache) advance() {
	for {
		if _, ok := c.values[c.prefix+1]; !ok {
			return
		}
		c.prefix++
	}
}

// get returns the stored value without copying. Callers must not mutate it.
func (c *Cache) get(n int64) (*big.Int, bool) {
	v, ok := c.values[n]
	return v, ok
}

// put records v without copying; v must not be retained by the caller.
func (c *Cache) put(n int64, v *big.Int) {
	if _, ok := c.values[n]; !ok {
		c.values[n] = v
		c.advance()
	}
}
