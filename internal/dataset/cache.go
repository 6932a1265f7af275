package dataset

import "sync"

// Cache is a concurrency-safe Reader that remembers successful reads of an
// underlying Reader. Time-series XDMF files often point many grids at the
// same geometry dataset; the cache reads it once.
//
// A positive limit bounds the number of values held across all buffers.
// When an insert pushes the total past it, the oldest buffers are dropped
// first. A single buffer larger than the limit is returned but not kept.
type Cache struct {
	mu     sync.RWMutex
	src    Reader
	limit  int
	size   int
	order  []cacheKey // insertion order, oldest first
	floats map[cacheKey][]float64
	ints   map[cacheKey][]int64
}

type cacheKey struct {
	container string
	path      string
	count     int
	ints      bool
}

// NewCache wraps src. limit <= 0 keeps every buffer.
func NewCache(src Reader, limit int) *Cache {
	return &Cache{
		src:    src,
		limit:  limit,
		floats: make(map[cacheKey][]float64),
		ints:   make(map[cacheKey][]int64),
	}
}

// ReadFloat64 returns a shared buffer. Callers must not modify it.
func (c *Cache) ReadFloat64(container, path string, count int) ([]float64, error) {
	key := cacheKey{container: container, path: normalizePath(path), count: count}

	// Fast path: read lock
	c.mu.RLock()
	if data, ok := c.floats[key]; ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	// Slow path: failures are not cached
	data, err := c.src.ReadFloat64(container, path, count)
	if err != nil {
		return nil, err
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.floats[key]; ok {
		return existing, nil
	}
	if c.admit(key, len(data)) {
		c.floats[key] = data
	}
	return data, nil
}

// ReadInt64 returns a shared buffer. Callers must not modify it.
func (c *Cache) ReadInt64(container, path string, count int) ([]int64, error) {
	key := cacheKey{container: container, path: normalizePath(path), count: count, ints: true}

	c.mu.RLock()
	if data, ok := c.ints[key]; ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	data, err := c.src.ReadInt64(container, path, count)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.ints[key]; ok {
		return existing, nil
	}
	if c.admit(key, len(data)) {
		c.ints[key] = data
	}
	return data, nil
}

// admit reserves room for n values under key, evicting the oldest buffers.
// It reports false when n alone exceeds the limit. Caller holds c.mu.
func (c *Cache) admit(key cacheKey, n int) bool {
	if c.limit > 0 && n > c.limit {
		return false
	}
	for c.limit > 0 && c.size+n > c.limit && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		if old.ints {
			c.size -= len(c.ints[old])
			delete(c.ints, old)
		} else {
			c.size -= len(c.floats[old])
			delete(c.floats, old)
		}
	}
	c.order = append(c.order, key)
	c.size += n
	return true
}

// Len returns the number of cached buffers.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.floats) + len(c.ints)
}

// Size returns the number of values held across all cached buffers.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}
