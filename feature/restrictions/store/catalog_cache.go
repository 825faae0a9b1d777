package store

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"loot-restrictions/feature/restrictions/engine"
	"loot-restrictions/feature/restrictions/models"

	"golang.org/x/sync/singleflight"
)

// catalogIndex is a point-in-time copy of the catalog keyed by item id.
type catalogIndex struct {
	items map[uint32]*models.Item
	built time.Time
}

// CachedCatalog serves single-item lookups from an in-memory index that is rebuilt
// after TTL. Full scans always go to the source, so a reconciliation pass never reads
// a stale snapshot.
type CachedCatalog struct {
	source engine.Catalog
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	index *catalogIndex
	sf    singleflight.Group
}

// NewCachedCatalog wraps source. A zero TTL disables the index.
func NewCachedCatalog(source engine.Catalog, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{source: source, ttl: ttl, now: time.Now}
}

func (c *CachedCatalog) Items(ctx context.Context) iter.Seq2[*models.Item, error] {
	return c.source.Items(ctx)
}

// Item looks the item up in the index, building it on first use or after expiry.
func (c *CachedCatalog) Item(ctx context.Context, id uint32) (*models.Item, error) {
	if c.ttl <= 0 {
		return c.source.Item(ctx, id)
	}

	idx, err := c.getOrBuild(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := idx.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, engine.ErrItemNotFound)
	}
	return item, nil
}

func (c *CachedCatalog) expired(idx *catalogIndex) bool {
	return idx == nil || c.now().Sub(idx.built) > c.ttl
}

func (c *CachedCatalog) getOrBuild(ctx context.Context) (*catalogIndex, error) {
	// Fast path: fresh index
	c.mu.RLock()
	idx := c.index
	c.mu.RUnlock()
	if !c.expired(idx) {
		return idx, nil
	}

	// Slow path: one build at a time
	result, err, _ := c.sf.Do("index", func() (any, error) {
		c.mu.RLock()
		idx := c.index
		c.mu.RUnlock()
		if !c.expired(idx) {
			return idx, nil
		}

		built := &catalogIndex{items: make(map[uint32]*models.Item), built: c.now()}
		for item, err := range c.source.Items(ctx) {
			if err != nil {
				return nil, err
			}
			built.items[item.ID] = item
		}

		c.mu.Lock()
		c.index = built
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*catalogIndex), nil
}

// Invalidate drops the index so the next lookup rebuilds it.
func (c *CachedCatalog) Invalidate() {
	c.mu.Lock()
	c.index = nil
	c.mu.Unlock()
}

// Len returns the number of indexed items, zero when no index is built.
func (c *CachedCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.index == nil {
		return 0
	}
	return len(c.index.items)
}
