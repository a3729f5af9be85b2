package selection

import (
	"path"

	"github.com/benju66/ExplorerPro-sub010/internal/tree"
)

// NodeSource answers existence and lookup queries against the logical
// tree. The tree index implements it.
type NodeSource interface {
	Exists(path string) bool
	Lookup(path string) *tree.Node
}

// ChangeSet is the minimal work needed to move from the snapshot to a
// requested selection. The three sets are pairwise disjoint and cover
// exactly the union of the old and requested sets.
type ChangeSet struct {
	ToSelect   []string
	ToDeselect []string
	Unchanged  []string
}

// Empty reports whether the change set requires no work.
func (cs ChangeSet) Empty() bool {
	return len(cs.ToSelect) == 0 && len(cs.ToDeselect) == 0
}

// Compute builds the ChangeSet for a request against the current
// snapshot. Identities that no longer exist in the tree are silently
// dropped from the requested set; the cost is proportional to
// |S_old ∪ S_new|, never tree size.
func Compute(req Request, snap *Snapshot, nodes NodeSource) (ChangeSet, error) {
	if err := req.validate(); err != nil {
		return ChangeSet{}, err
	}

	want := requestedSet(req, snap, nodes)
	old := snap.Selected()

	var cs ChangeSet
	for p := range want {
		if _, was := old[p]; was {
			cs.Unchanged = append(cs.Unchanged, p)
		} else {
			cs.ToSelect = append(cs.ToSelect, p)
		}
	}
	for p := range old {
		if _, still := want[p]; !still {
			cs.ToDeselect = append(cs.ToDeselect, p)
		}
	}
	return cs, nil
}

// requestedSet materializes S_new for the request shape, filtering out
// vanished nodes as it goes.
func requestedSet(req Request, snap *Snapshot, nodes NodeSource) map[string]struct{} {
	want := make(map[string]struct{})

	switch req.Shape {
	case ShapeSingle:
		if nodes.Exists(req.Target) {
			want[req.Target] = struct{}{}
		}

	case ShapeToggle:
		for p := range snap.Selected() {
			want[p] = struct{}{}
		}
		if !nodes.Exists(req.Target) {
			delete(want, req.Target)
			break
		}
		if _, on := want[req.Target]; on {
			delete(want, req.Target)
		} else {
			want[req.Target] = struct{}{}
		}

	case ShapeAll:
		for _, p := range req.Paths {
			if nodes.Exists(p) {
				want[p] = struct{}{}
			}
		}

	case ShapeRange:
		lo, hi := rangeSpan(req, nodes)
		for i := lo; i >= 0 && i <= hi && i < len(req.Order); i++ {
			if nodes.Exists(req.Order[i]) {
				want[req.Order[i]] = struct{}{}
			}
		}

	case ShapePattern:
		if req.Additive {
			for p := range snap.Selected() {
				want[p] = struct{}{}
			}
		}
		if dir := nodes.Lookup(req.Dir); dir != nil && dir.IsDir {
			matchInto(want, dir, req.Pattern, req.Recursive)
		}
	}

	return want
}

// rangeSpan resolves the inclusive [lo, hi] index span for a range
// request. A missing anchor degrades the range to a single-item span at
// the valid endpoint; if both endpoints are gone the span is empty
// (lo > hi).
func rangeSpan(req Request, nodes NodeSource) (lo, hi int) {
	a := indexOf(req.Order, req.Anchor, nodes)
	f := indexOf(req.Order, req.Focus, nodes)

	switch {
	case a < 0 && f < 0:
		return 0, -1
	case a < 0:
		return f, f
	case f < 0:
		return a, a
	case a <= f:
		return a, f
	default:
		return f, a
	}
}

func indexOf(order []string, p string, nodes NodeSource) int {
	if p == "" || !nodes.Exists(p) {
		return -1
	}
	for i, candidate := range order {
		if candidate == p {
			return i
		}
	}
	return -1
}

// matchInto adds dir's matching file children to want. Directories
// never match, regardless of name; recursion only descends into loaded
// children so the walk cannot trigger IO.
func matchInto(want map[string]struct{}, dir *tree.Node, pattern string, recursive bool) {
	for _, child := range dir.Children {
		if child.IsDir {
			if recursive {
				matchInto(want, child, pattern, recursive)
			}
			continue
		}
		if ok, err := path.Match(pattern, child.Name); err == nil && ok {
			want[child.Path] = struct{}{}
		}
	}
}
