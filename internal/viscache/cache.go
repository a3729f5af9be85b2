// Package viscache maps node paths to their live row objects without
// keeping those rows alive. Rows belong to the render pool, which
// recycles them freely; the cache only ever holds weak pointers, so a
// cache entry can go stale in two ways — the row was collected, or it
// was rebound to a different node. Both are treated as a miss, never an
// error.
package viscache

import (
	"sync"
	"time"
	"weak"

	"github.com/benju66/ExplorerPro-sub010/internal/render"
)

// DefaultSweepInterval is how often the periodic sweep runs.
const DefaultSweepInterval = 30 * time.Second

// DefaultMaxEntries bounds the cache; above it, Set evicts an arbitrary
// entry. Eviction only removes entries, so it cannot violate liveness.
const DefaultMaxEntries = 10000

// Stats receives cache observations. Implemented by the selection
// engine's metrics collector; a nil Stats is allowed.
type Stats interface {
	CacheHit()
	CacheMiss()
	SweepDone(d time.Duration, removed, size int)
}

type entry struct {
	ref weak.Pointer[render.RowView]
}

// Cache is the node → row mapping for one tree panel. It lives and dies
// with the panel. All methods are safe for concurrent use; the mutex is
// held only for map access, so an off-thread sweep cannot stall the
// interactive path for long.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	stats      Stats
}

// New creates a cache with the given entry cap (0 means
// DefaultMaxEntries).
func New(maxEntries int, stats Stats) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		stats:      stats,
	}
}

// TryGet returns the live row bound to path, or nil. A dead weak
// pointer or a row that has been rebound to another node is removed on
// the spot and reported as a miss.
func (c *Cache) TryGet(path string) *render.RowView {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok {
		c.miss()
		return nil
	}

	row := e.ref.Value()
	if row == nil || row.Path() != path {
		// Confirmed stale: target collected or recycled onto a
		// different node.
		delete(c.entries, path)
		c.miss()
		return nil
	}

	if c.stats != nil {
		c.stats.CacheHit()
	}
	return row
}

// Set stores a weak reference to row under path, overwriting any prior
// entry. Rows are recycled, so last-write-wins is the correct policy.
func (c *Cache) Set(path string, row *render.RowView) {
	if row == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[path]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOne()
	}
	c.entries[path] = entry{ref: weak.Make(row)}
}

// evictOne removes an arbitrary entry, preferring a dead one if the
// first few probed are dead. Called with the lock held.
func (c *Cache) evictOne() {
	for path, e := range c.entries {
		if e.ref.Value() == nil {
			delete(c.entries, path)
			return
		}
		// Map iteration order is arbitrary; the first key is as good a
		// victim as any.
		delete(c.entries, path)
		return
	}
}

// Invalidate drops the entry for a single path, used when the node is
// renamed or deleted externally.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Sweep removes every entry whose weak reference is dead. It runs on a
// timer and may also be called after a bulk reload.
func (c *Cache) Sweep() {
	start := time.Now()

	c.mu.Lock()
	removed := 0
	for path, e := range c.entries {
		if e.ref.Value() == nil {
			delete(c.entries, path)
			removed++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	if c.stats != nil {
		c.stats.SweepDone(time.Since(start), removed, size)
	}
}

// Clear drops the whole cache; used when the panel is rebuilt or torn
// down.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the current number of entries (live or not yet swept).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) miss() {
	if c.stats != nil {
		c.stats.CacheMiss()
	}
}
