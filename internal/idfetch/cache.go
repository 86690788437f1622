// internal/idfetch/cache.go
package idfetch

import (
	"sync"

	"github.com/xkilldash9x/sifminer/internal/biopax"
)

// Cache memoizes another fetcher per element. It is meant to live for one
// search session and is safe for concurrent use.
type Cache struct {
	next Fetcher

	mu  sync.RWMutex
	ids map[*biopax.Element][]string
}

// NewCache wraps next.
func NewCache(next Fetcher) *Cache {
	return &Cache{next: next, ids: make(map[*biopax.Element][]string)}
}

// FetchID implements Fetcher.
func (c *Cache) FetchID(e *biopax.Element) []string {
	c.mu.RLock()
	ids, ok := c.ids[e]
	c.mu.RUnlock()
	if ok {
		return ids
	}

	ids = c.next.FetchID(e)
	c.mu.Lock()
	c.ids[e] = ids
	c.mu.Unlock()
	return ids
}

// Len returns the number of memoized elements.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}
