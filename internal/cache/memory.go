package cache

import "sync"

// MemoryCache is an in-process OrderCache used by tests and offline runs.
type MemoryCache struct {
	mu     sync.Mutex
	orders map[string]map[string]any
	stale  map[string]bool
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		orders: make(map[string]map[string]any),
		stale:  make(map[string]bool),
	}
}

// Invalidate marks the tag stale.
func (c *MemoryCache) Invalidate(tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale[tag] = true
	return nil
}

// PatchOne overwrites fields of a cached order, if present.
func (c *MemoryCache) PatchOne(orderID string, fields map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	order, ok := c.orders[orderID]
	if !ok {
		return nil
	}
	for k, v := range fields {
		order[k] = v
	}
	return nil
}

// ReplaceOne replaces a cached order wholesale.
func (c *MemoryCache) ReplaceOne(orderID string, order map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make(map[string]any, len(order))
	for k, v := range order {
		copied[k] = v
	}
	c.orders[orderID] = copied
	return nil
}

// Seed inserts an order directly. Test helper.
func (c *MemoryCache) Seed(orderID string, order map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make(map[string]any, len(order))
	for k, v := range order {
		copied[k] = v
	}
	c.orders[orderID] = copied
}

// Order returns the cached order and whether it exists.
func (c *MemoryCache) Order(orderID string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order, ok := c.orders[orderID]
	if !ok {
		return nil, false
	}
	copied := make(map[string]any, len(order))
	for k, v := range order {
		copied[k] = v
	}
	return copied, true
}

// Stale reports whether the tag has been invalidated.
func (c *MemoryCache) Stale(tag string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale[tag]
}
