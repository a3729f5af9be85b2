package selection

import (
	"math"
	"sync/atomic"
	"time"
)

// Metrics collects engine diagnostics: update timings, cache hit ratio,
// and sweep bookkeeping. Producers only touch atomics and never block;
// counters saturate at MaxInt64 instead of wrapping. Metrics implements
// viscache.Stats.
type Metrics struct {
	lastUpdateNanos atomic.Int64
	itemsProcessed  atomic.Int64
	itemsChanged    atomic.Int64
	applyErrors     atomic.Int64

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	cacheSize   atomic.Int64

	sweeps          atomic.Int64
	deadRemoved     atomic.Int64
	sweepTotalNanos atomic.Int64
}

// MetricsSnapshot is a point-in-time, immutable view of the counters.
type MetricsSnapshot struct {
	LastUpdateDuration time.Duration
	ItemsProcessed     int64
	ItemsChanged       int64
	ApplyErrors        int64

	CacheHits   int64
	CacheMisses int64
	CacheSize   int64

	Sweeps           int64
	DeadRemoved      int64
	AvgSweepDuration time.Duration
}

// HitRatio returns the cache hit ratio in [0, 1], or 0 before any
// lookup.
func (s MetricsSnapshot) HitRatio() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordUpdate records one completed apply tier.
func (m *Metrics) RecordUpdate(d time.Duration, processed, changed, errors int) {
	m.lastUpdateNanos.Store(int64(d))
	satAdd(&m.itemsProcessed, int64(processed))
	satAdd(&m.itemsChanged, int64(changed))
	satAdd(&m.applyErrors, int64(errors))
}

// CacheHit implements viscache.Stats.
func (m *Metrics) CacheHit() { satAdd(&m.cacheHits, 1) }

// CacheMiss implements viscache.Stats.
func (m *Metrics) CacheMiss() { satAdd(&m.cacheMisses, 1) }

// SweepDone implements viscache.Stats.
func (m *Metrics) SweepDone(d time.Duration, removed, size int) {
	satAdd(&m.sweeps, 1)
	satAdd(&m.deadRemoved, int64(removed))
	satAdd(&m.sweepTotalNanos, int64(d))
	m.cacheSize.Store(int64(size))
}

// SnapshotNow returns the current counter values.
func (m *Metrics) SnapshotNow() MetricsSnapshot {
	snap := MetricsSnapshot{
		LastUpdateDuration: time.Duration(m.lastUpdateNanos.Load()),
		ItemsProcessed:     m.itemsProcessed.Load(),
		ItemsChanged:       m.itemsChanged.Load(),
		ApplyErrors:        m.applyErrors.Load(),
		CacheHits:          m.cacheHits.Load(),
		CacheMisses:        m.cacheMisses.Load(),
		CacheSize:          m.cacheSize.Load(),
		Sweeps:             m.sweeps.Load(),
		DeadRemoved:        m.deadRemoved.Load(),
	}
	if snap.Sweeps > 0 {
		snap.AvgSweepDuration = time.Duration(m.sweepTotalNanos.Load() / snap.Sweeps)
	}
	return snap
}

// satAdd adds delta to a counter, pinning at MaxInt64 on overflow.
func satAdd(c *atomic.Int64, delta int64) {
	if delta <= 0 {
		return
	}
	for {
		cur := c.Load()
		next := cur + delta
		if next < cur {
			next = math.MaxInt64
		}
		if c.CompareAndSwap(cur, next) {
			return
		}
	}
}
