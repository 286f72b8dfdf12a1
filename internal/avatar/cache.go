// Package avatar resolves user ids to thumbnail image URLs and keeps
// them in an additive session cache.
package avatar

import "sync"

// Cache maps user ids to resolved image URLs. It is append-only for
// the session: merges add or overwrite entries, nothing is ever
// evicted, so concurrent merges from overlapping fetches are
// commutative and safe.
type Cache struct {
	mu   sync.RWMutex
	urls map[int64]string
}

// NewCache creates an empty avatar cache.
func NewCache() *Cache {
	return &Cache{urls: make(map[int64]string)}
}

// Get returns the cached URL for id, if present.
func (c *Cache) Get(id int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.urls[id]
	return url, ok
}

// Put stores the URL for a single id, overwriting any prior value.
func (c *Cache) Put(id int64, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[id] = url
}

// Merge adds every entry of m to the cache. Existing ids are
// overwritten with the latest value.
func (c *Cache) Merge(m map[int64]string) {
	if len(m) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, url := range m {
		c.urls[id] = url
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.urls)
}

// Missing returns the subset of ids not yet present in the cache,
// preserving input order.
func (c *Cache) Missing(ids []int64) []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var missing []int64
	for _, id := range ids {
		if _, ok := c.urls[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
