package selection

import "sort"

// Cache is the full cache surface the service needs: lookups for
// classification plus the mutation hooks exposed to collaborators.
type Cache interface {
	RowCache
	RowSetter
}

// Service is the engine facade the rest of the application talks to.
// It owns the snapshot, scheduler and metrics; the cache, resolver and
// viewport provider are supplied by the tree panel that owns the rows.
type Service struct {
	snap    *Snapshot
	metrics *Metrics
	cache   Cache
	nodes   NodeSource
	sched   *Scheduler
}

// NewService assembles the engine. nodes supplies vanished-node checks,
// resolver the uncached fallback, viewport the current window.
// chunkSize <= 0 selects DefaultChunkSize.
func NewService(cache Cache, resolver Resolver, viewport func() Viewport, nodes NodeSource, metrics *Metrics, chunkSize int) *Service {
	if metrics == nil {
		metrics = NewMetrics()
	}
	snap := NewSnapshot()
	return &Service{
		snap:    snap,
		metrics: metrics,
		cache:   cache,
		nodes:   nodes,
		sched:   NewScheduler(snap, cache, cache, resolver, viewport, metrics, chunkSize),
	}
}

// RequestSelection computes and applies a selection request. The
// visible tier is fully applied on return; the returned generation
// identifies the background work to drain via ProcessChunk. Malformed
// requests fail fast; data anomalies never do.
func (s *Service) RequestSelection(req Request) (uint64, error) {
	cs, err := Compute(req, s.snap, s.nodes)
	if err != nil {
		return 0, err
	}
	return s.sched.Apply(cs), nil
}

// ProcessChunk drains one background chunk for the given generation and
// reports whether that run is finished (or was superseded).
func (s *Service) ProcessChunk(gen uint64) bool {
	return s.sched.ProcessChunk(gen)
}

// Pending returns the number of queued background items.
func (s *Service) Pending() int { return s.sched.Pending() }

// State returns the scheduler's current state.
func (s *Service) State() State { return s.sched.State() }

// OnVisibleApplied registers a visible-tier completion callback.
func (s *Service) OnVisibleApplied(fn func(TierReport)) {
	s.sched.OnVisibleApplied(fn)
}

// OnBackgroundApplied registers a background-tier completion callback.
func (s *Service) OnBackgroundApplied(fn func(TierReport)) {
	s.sched.OnBackgroundApplied(fn)
}

// IsSelected reports the applied selection state for a path.
func (s *Service) IsSelected(path string) bool { return s.snap.IsSelected(path) }

// Count returns the number of selected nodes.
func (s *Service) Count() int { return s.snap.Count() }

// SelectedPaths returns the selected paths in sorted order.
func (s *Service) SelectedPaths() []string {
	set := s.snap.Selected()
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// GetMetricsSnapshot returns read-only diagnostics.
func (s *Service) GetMetricsSnapshot() MetricsSnapshot {
	return s.metrics.SnapshotNow()
}

// InvalidateNode drops all engine state for a path after an external
// rename or delete.
func (s *Service) InvalidateNode(path string) {
	s.cache.Invalidate(path)
	s.snap.Forget(path)
}

// Clear drops the row cache, e.g. after a directory reload rebuilt the
// panel. The selection snapshot is kept; rows repaint from it on the
// next layout pass.
func (s *Service) Clear() {
	s.cache.Clear()
}

// Reset clears both the cache and the selection, for container
// teardown.
func (s *Service) Reset() {
	s.cache.Clear()
	s.snap.Reset()
}

// SweepNow triggers an on-demand cache sweep (the periodic sweep is
// driven by the host's timer).
func (s *Service) SweepNow() {
	s.cache.Sweep()
}
