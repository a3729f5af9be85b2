// Package selection implements the node-selection engine for the tree
// panel: diff-based change computation against the last applied state,
// viewport-aware two-tier application, and the metrics that make its
// behavior observable. Everything here runs on the interactive
// goroutine; "background" work is lower-priority chunks interleaved via
// messages, never a second thread touching rows.
package selection

// Snapshot records the selection state as of the last applied change.
// Absence of a path means unselected. Only the scheduler writes to it,
// and it writes per item, so a cancelled run always leaves the snapshot
// matching exactly what was painted.
type Snapshot struct {
	sel   map[string]bool
	count int
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{sel: make(map[string]bool)}
}

// IsSelected reports the recorded state for a path.
func (s *Snapshot) IsSelected(path string) bool {
	return s.sel[path]
}

// Selected returns a copy of the set of currently selected paths.
func (s *Snapshot) Selected() map[string]struct{} {
	out := make(map[string]struct{}, s.count)
	for path, on := range s.sel {
		if on {
			out[path] = struct{}{}
		}
	}
	return out
}

// Count returns the number of selected paths.
func (s *Snapshot) Count() int { return s.count }

// set records a new state for a path and reports whether it changed.
func (s *Snapshot) set(path string, selected bool) bool {
	prev := s.sel[path]
	if prev == selected {
		return false
	}
	if selected {
		s.sel[path] = true
		s.count++
	} else {
		// Deselected entries are deleted rather than stored false, so
		// the map stays proportional to selection size, not tree size.
		delete(s.sel, path)
		s.count--
	}
	return true
}

// Forget drops a path entirely (node vanished).
func (s *Snapshot) Forget(path string) {
	if s.sel[path] {
		s.count--
	}
	delete(s.sel, path)
}

// Reset clears all recorded state.
func (s *Snapshot) Reset() {
	s.sel = make(map[string]bool)
	s.count = 0
}
