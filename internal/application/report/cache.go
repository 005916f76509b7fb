package report

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	snap  *snapshot
	built time.Time
}

// reportCache memoriza reportes calculados durante ttl. La clave incluye la versión
// del almacén, así que una inserción nueva nunca devuelve datos viejos.
// ttl == 0 desactiva la caché; singleflight sigue agrupando pedidos simultáneos.
type reportCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cacheEntry
	sf      singleflight.Group
}

func newReportCache(ttl time.Duration, now func() time.Time) *reportCache {
	return &reportCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *reportCache) fresh(e cacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(e.built) <= c.ttl
}

// getOrBuild devuelve la entrada vigente o la calcula una sola vez aunque haya varios pedidos.
func (c *reportCache) getOrBuild(key string, build func() (*snapshot, error)) (*snapshot, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.fresh(e) {
		return e.snap, true, nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// otro pedido pudo haberla construido mientras esperábamos
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && c.fresh(e) {
			return e.snap, nil
		}

		snap, err := build()
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.store(key, snap)
		}
		return snap, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*snapshot), false, nil
}

func (c *reportCache) store(key string, snap *snapshot) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if now.Sub(e.built) > c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{snap: snap, built: now}
}

func (c *reportCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
