// Package render manages the materialized row objects for the
// virtualized tree panel. Only rows inside the viewport exist at any
// moment; the Pool recycles them as the view scrolls, rebinding a row
// object to whichever node currently occupies its screen line. Rows are
// therefore transient: nothing outside the pool may keep one alive,
// which is why the node cache holds them weakly.
package render

import "errors"

// ErrRowUnbound is returned when a selection update reaches a row that
// has been recycled or released since it was looked up.
var ErrRowUnbound = errors.New("render: row no longer bound")

// RowView is the visual representation of one on-screen node. It
// occupies a single screen line; FlatIndex is its position in the flat
// render order, which doubles as its vertical bounds for viewport
// intersection tests.
type RowView struct {
	path      string
	flatIndex int
	label     string // prerendered text, selection styling applied later
	selected  bool
	bound     bool
}

// Path returns the node path the row is currently bound to, or "" if
// the row has been released.
func (r *RowView) Path() string {
	if !r.bound {
		return ""
	}
	return r.path
}

// FlatIndex returns the row's position in the flat render order.
func (r *RowView) FlatIndex() int { return r.flatIndex }

// Label returns the prerendered row text.
func (r *RowView) Label() string { return r.label }

// Selected reports the row's current selection highlight state.
func (r *RowView) Selected() bool { return r.selected }

// Bound reports whether the row is currently bound to a node.
func (r *RowView) Bound() bool { return r.bound }

// SetSelected updates the selection highlight. It fails if the row was
// recycled since the caller looked it up; the scheduler counts such
// failures and moves on.
func (r *RowView) SetSelected(selected bool) error {
	if !r.bound {
		return ErrRowUnbound
	}
	r.selected = selected
	return nil
}

// bind points the row at a new node, resetting per-node state.
func (r *RowView) bind(path string, flatIndex int, label string, selected bool) {
	r.path = path
	r.flatIndex = flatIndex
	r.label = label
	r.selected = selected
	r.bound = true
}

// release detaches the row from its node without freeing the object, so
// a stale cache entry can still observe that the binding is gone.
func (r *RowView) release() {
	r.bound = false
	r.path = ""
	r.label = ""
	r.selected = false
}
