package cache

import "sync"

// Cache is a generic thread-safe reference-counted store.
// Each key owns at most one live value; the value is shared by every
// Acquire of that key until the matching number of Releases.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V comparable] struct {
	mu      sync.Mutex
	entries map[K]*cacheEntry[V]
	owners  map[V]K // reverse index: value -> key, for Release by value

	hits   uint64
	misses uint64
}

// cacheEntry holds a shared value with its reference count.
type cacheEntry[V any] struct {
	value V
	refs  int
}

// New creates an empty cache.
func New[K comparable, V comparable]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*cacheEntry[V]),
		owners:  make(map[V]K),
	}
}

// Acquire returns the value stored for key and increments its reference
// count. On a miss, create is called (under lock) to build the value; if it
// fails nothing is stored and the error is returned.
func (c *Cache[K, V]) Acquire(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		entry.refs++
		c.hits++
		return entry.value, nil
	}

	c.misses++
	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}

	c.entries[key] = &cacheEntry[V]{value: value, refs: 1}
	c.owners[value] = key
	return value, nil
}

// Release drops one reference to value. When the count reaches zero the
// entry is removed and destroy (if non-nil) is called with the value.
// Returns true if the value was destroyed.
//
// Releasing a value the cache does not hold is a no-op.
func (c *Cache[K, V]) Release(value V, destroy func(V)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, ok := c.owners[value]
	if !ok {
		return false
	}
	entry := c.entries[key]
	entry.refs--
	if entry.refs > 0 {
		return false
	}

	delete(c.entries, key)
	delete(c.owners, value)
	if destroy != nil {
		destroy(value)
	}
	return true
}

// RefCount returns the number of live references to value,
// or 0 if the cache does not hold it.
func (c *Cache[K, V]) RefCount(value V) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, ok := c.owners[value]
	if !ok {
		return 0
	}
	return c.entries[key].refs
}

// Lookup returns the value stored for key without taking a reference.
func (c *Cache[K, V]) Lookup(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Clear removes all entries regardless of their reference counts,
// calling destroy (if non-nil) for each value.
func (c *Cache[K, V]) Clear(destroy func(V)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if destroy != nil {
		for _, entry := range c.entries {
			destroy(entry.value)
		}
	}
	c.entries = make(map[K]*cacheEntry[V])
	c.owners = make(map[V]K)
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	refs := 0
	for _, entry := range c.entries {
		refs += entry.refs
	}

	s := Stats{
		Len:    len(c.entries),
		Refs:   refs,
		Hits:   c.hits,
		Misses: c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of live entries.
	Len int
	// Refs is the sum of reference counts over all entries.
	Refs int
	// Hits is the number of Acquire calls served by an existing entry.
	Hits uint64
	// Misses is the number of Acquire calls that created an entry.
	Misses uint64
	// HitRate is the hit rate 0.0 to 1.0.
	HitRate float64
}
