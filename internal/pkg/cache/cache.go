// Package cache keeps rendered pages for a short time so repeated list
// requests skip the database.
package cache

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// Entry is a cached response body.
type Entry struct {
	Body        []byte
	ContentType string
	expires     time.Time
}

// PageCache stores rendered pages keyed by path and canonical query.
//
// Every path carries an invalidation generation. A page rendered under an
// older generation than the current one is dropped by Set, so a read racing
// with a mutation cannot repopulate the cache with the pre-mutation page.
type PageCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]map[string]Entry
	gens    map[string]uint64
}

// New creates a cache whose entries live for ttl. A non-positive ttl disables caching.
func New(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]map[string]Entry),
		gens:    make(map[string]uint64),
	}
}

// Key canonicalizes query so equal parameter sets share an entry.
func Key(query url.Values) string {
	return query.Encode()
}

// Get returns the live entry stored for path and query.
func (c *PageCache) Get(path string, query url.Values) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path][Key(query)]
	if !ok || !c.now().Before(e.expires) {
		return Entry{}, false
	}
	return e, true
}

// Begin returns the current generation of path. Call it before rendering and
// hand the result to Set.
func (c *PageCache) Begin(path string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen, ok := c.gens[path]
	if !ok {
		c.gens[path] = 0
	}
	return gen
}

// Set stores body for path and query unless path was invalidated after gen was taken.
func (c *PageCache) Set(path string, query url.Values, gen uint64, contentType string, body []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[path] != gen {
		return
	}
	byQuery, ok := c.entries[path]
	if !ok {
		byQuery = make(map[string]Entry)
		c.entries[path] = byQuery
	}
	byQuery[Key(query)] = Entry{
		Body:        append([]byte(nil), body...),
		ContentType: contentType,
		expires:     c.now().Add(c.ttl),
	}
}

// Invalidate drops every entry stored for path or below it.
func (c *PageCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(path, "/") + "/"
	c.gens[path]++
	for p := range c.gens {
		if p != path && strings.HasPrefix(p, prefix) {
			c.gens[p]++
		}
	}
	for p := range c.entries {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(c.entries, p)
		}
	}
}

// Sweep removes expired entries and reports how many were dropped.
func (c *PageCache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for p, byQuery := range c.entries {
		for k, e := range byQuery {
			if !now.Before(e.expires) {
				delete(byQuery, k)
				removed++
			}
		}
		if len(byQuery) == 0 {
			delete(c.entries, p)
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, byQuery := range c.entries {
		n += len(byQuery)
	}
	return n
}
