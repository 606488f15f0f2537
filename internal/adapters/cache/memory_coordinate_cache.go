package cache

import (
	"context"
	"sync"

	"delivery-fee-service/internal/domain"
)

// MemoryCoordinateCache is the default process-lifetime cache: a
// mutex-guarded map with no expiry and no size bound. Entries survive
// until Clear or process exit.
type MemoryCoordinateCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Coordinate
}

func NewMemoryCoordinateCache() *MemoryCoordinateCache {
	return &MemoryCoordinateCache{entries: make(map[string]domain.Coordinate)}
}

func (c *MemoryCoordinateCache) Get(ctx context.Context, key string) (domain.Coordinate, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	coord, ok := c.entries[key]
	return coord, ok, nil
}

func (c *MemoryCoordinateCache) Put(ctx context.Context, key string, coord domain.Coordinate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = coord
	return nil
}

func (c *MemoryCoordinateCache) Len(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries), nil
}

func (c *MemoryCoordinateCache) Clear(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]domain.Coordinate)
	return removed, nil
}
