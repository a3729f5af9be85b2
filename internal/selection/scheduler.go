package selection

import (
	"time"

	"github.com/benju66/ExplorerPro-sub010/internal/render"
)

// DefaultChunkSize bounds how many off-screen items one background
// chunk applies before yielding back to the event loop.
const DefaultChunkSize = 64

// State tracks where a scheduler run is. Exposed for tests and
// diagnostics.
type State int

const (
	StateIdle State = iota
	StateClassifying
	StateApplyingVisible
	StateApplyingBackground
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClassifying:
		return "classifying"
	case StateApplyingVisible:
		return "applying-visible"
	case StateApplyingBackground:
		return "applying-background"
	default:
		return "unknown"
	}
}

// Tier identifies which priority class a report covers.
type Tier int

const (
	// TierVisible covers on-screen items, applied synchronously.
	TierVisible Tier = iota
	// TierBackground covers off-screen items, applied in chunks.
	TierBackground
)

// TierReport is handed to completion callbacks after each tier.
type TierReport struct {
	Tier       Tier
	Generation uint64
	Processed  int
	Changed    int
	Skipped    int
	Duration   time.Duration
	// Superseded marks a background tier that was cancelled by a newer
	// request before finishing; Processed then reflects partial work.
	Superseded bool
}

// Resolver locates a row for a path when the cache misses, typically by
// searching the live render pool. May return nil; a nil result is not
// an error, it just means the node has no representation right now.
type Resolver interface {
	Resolve(path string) *render.RowView
}

// RowSetter is the cache mutation the scheduler needs beyond RowCache:
// a successful fallback resolution seeds the cache.
type RowSetter interface {
	Set(path string, row *render.RowView)
}

type workItem struct {
	path     string
	selected bool
}

// Scheduler applies change sets in two tiers. The visible tier runs to
// completion inside Apply, because the user is looking at those rows.
// The background tier is staged as a queue of bounded chunks that the
// host drains cooperatively via ProcessChunk; a newer Apply bumps the
// generation, and stale chunks are abandoned at the chunk boundary —
// never mid-item.
type Scheduler struct {
	snap     *Snapshot
	cache    RowCache
	setter   RowSetter
	resolver Resolver
	viewport func() Viewport
	metrics  *Metrics

	chunkSize int
	state     State
	gen       uint64

	queue       []workItem
	bgStart     time.Time
	bgProcessed int
	bgChanged   int
	bgSkipped   int

	onVisible    []func(TierReport)
	onBackground []func(TierReport)
}

// NewScheduler wires a scheduler to its collaborators. viewport must
// report the current window on every call; chunkSize <= 0 selects
// DefaultChunkSize.
func NewScheduler(snap *Snapshot, cache RowCache, setter RowSetter, resolver Resolver, viewport func() Viewport, metrics *Metrics, chunkSize int) *Scheduler {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Scheduler{
		snap:      snap,
		cache:     cache,
		setter:    setter,
		resolver:  resolver,
		viewport:  viewport,
		metrics:   metrics,
		chunkSize: chunkSize,
	}
}

// OnVisibleApplied registers a callback fired after each visible tier.
func (s *Scheduler) OnVisibleApplied(fn func(TierReport)) {
	s.onVisible = append(s.onVisible, fn)
}

// OnBackgroundApplied registers a callback fired after each background
// tier completes or is superseded.
func (s *Scheduler) OnBackgroundApplied(fn func(TierReport)) {
	s.onBackground = append(s.onBackground, fn)
}

// State returns the current scheduler state.
func (s *Scheduler) State() State { return s.state }

// Generation returns the generation of the most recent Apply.
func (s *Scheduler) Generation() uint64 { return s.gen }

// Pending returns how many background items remain queued.
func (s *Scheduler) Pending() int { return len(s.queue) }

// Apply runs one scheduler pass for a change set and returns the run's
// generation, which the host passes back to ProcessChunk. Any still
// pending background work from an earlier run is abandoned first.
func (s *Scheduler) Apply(cs ChangeSet) uint64 {
	s.gen++
	gen := s.gen

	if len(s.queue) > 0 {
		// Cancel the prior run's background tier. Snapshot entries for
		// its abandoned items stay at whatever was last applied.
		s.finishBackground(gen-1, true)
	}

	s.state = StateClassifying
	vp := s.viewport()
	visSel, bgSel := Classify(cs.ToSelect, vp, s.cache)
	visDesel, bgDesel := Classify(cs.ToDeselect, vp, s.cache)

	s.state = StateApplyingVisible
	start := time.Now()
	var processed, changed, skipped int
	for _, p := range visDesel {
		s.applyOne(p, false, &processed, &changed, &skipped)
	}
	for _, p := range visSel {
		s.applyOne(p, true, &processed, &changed, &skipped)
	}
	dur := time.Since(start)

	s.metrics.RecordUpdate(dur, processed, changed, skipped)
	report := TierReport{
		Tier:       TierVisible,
		Generation: gen,
		Processed:  processed,
		Changed:    changed,
		Skipped:    skipped,
		Duration:   dur,
	}
	for _, fn := range s.onVisible {
		fn(report)
	}

	s.queue = s.queue[:0]
	for _, p := range bgDesel {
		s.queue = append(s.queue, workItem{path: p, selected: false})
	}
	for _, p := range bgSel {
		s.queue = append(s.queue, workItem{path: p, selected: true})
	}

	if len(s.queue) > 0 {
		s.state = StateApplyingBackground
		s.bgStart = time.Now()
		s.bgProcessed, s.bgChanged, s.bgSkipped = 0, 0, 0
	} else {
		s.state = StateIdle
	}
	return gen
}

// ProcessChunk applies one bounded chunk of the background tier and
// reports whether the run identified by gen is finished. A stale gen is
// the cancellation marker: the chunk is dropped without touching
// anything.
func (s *Scheduler) ProcessChunk(gen uint64) (done bool) {
	if gen != s.gen || s.state != StateApplyingBackground {
		return true
	}

	n := s.chunkSize
	if n > len(s.queue) {
		n = len(s.queue)
	}
	for _, item := range s.queue[:n] {
		s.applyOne(item.path, item.selected, &s.bgProcessed, &s.bgChanged, &s.bgSkipped)
	}
	s.queue = s.queue[n:]

	if len(s.queue) == 0 {
		s.finishBackground(gen, false)
		return true
	}
	return false
}

// finishBackground closes out the background tier, completed or
// superseded, and notifies listeners.
func (s *Scheduler) finishBackground(gen uint64, superseded bool) {
	dur := time.Since(s.bgStart)
	s.metrics.RecordUpdate(dur, s.bgProcessed, s.bgChanged, s.bgSkipped)
	report := TierReport{
		Tier:       TierBackground,
		Generation: gen,
		Processed:  s.bgProcessed,
		Changed:    s.bgChanged,
		Skipped:    s.bgSkipped,
		Duration:   dur,
		Superseded: superseded,
	}
	for _, fn := range s.onBackground {
		fn(report)
	}
	s.queue = s.queue[:0]
	s.bgProcessed, s.bgChanged, s.bgSkipped = 0, 0, 0
	s.state = StateIdle
}

// applyOne updates a single item: paint the row if one exists, then
// record the snapshot so it always matches what was painted. A row that
// went stale between lookup and paint is skipped and counted, and the
// snapshot keeps its previous value for that path.
func (s *Scheduler) applyOne(path string, selected bool, processed, changed, skipped *int) {
	*processed++

	row := s.cache.TryGet(path)
	if row == nil && s.resolver != nil {
		if row = s.resolver.Resolve(path); row != nil && s.setter != nil {
			// Miss followed by a successful resolution seeds the cache.
			s.setter.Set(path, row)
		}
	}

	if row != nil {
		if err := row.SetSelected(selected); err != nil {
			*skipped++
			return
		}
	}

	if s.snap.set(path, selected) {
		*changed++
	}
}
