// Package cache provides a generic reference-counted keyed store.
//
// A Cache maps a key to one shared value. Acquire creates the value on the
// first request for a key and increments a reference count on every later
// request; Release decrements it and drops the entry, calling the supplied
// destroy function, once nothing references the value anymore.
//
//	c := cache.New[string, *Resource]()
//	r, err := c.Acquire("k", func() (*Resource, error) { return newResource() })
//	...
//	c.Release(r, func(r *Resource) { r.Close() })
//
// Values are looked up by identity on Release, so V must be comparable and
// distinct keys must never produce the same value.
//
// # Thread Safety
//
// Cache is safe for concurrent use. create and destroy callbacks run under
// the cache lock and must not call back into the same Cache.
// Cache must not be copied after creation (it contains a mutex).
package cache
