// Package cache provides a permanently-memoizing in-process cache: one
// map guarded by one mutex. There is no eviction; entries live for the
// life of the process, so only cache values that are stable for that
// long. The cache is constructed and injected where needed rather than
// held at package scope.
package cache

import "sync"

type Cache struct {
	mu      sync.Mutex
	entries map[string]interface{}
}

func New() *Cache {
	return &Cache{entries: make(map[string]interface{})}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// GetOrCompute returns the cached value for key, computing and storing it
// on first use. The lock is held across the read-check-insert so compute
// runs at most once per key. A compute error is returned without caching.
func (c *Cache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value, ok := c.entries[key]; ok {
		return value, nil
	}
	value, err := compute()
	if err != nil {
		return nil, err
	}
	c.entries[key] = value
	return value, nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
