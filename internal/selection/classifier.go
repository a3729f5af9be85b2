package selection

import "github.com/benju66/ExplorerPro-sub010/internal/render"

// Viewport describes the visible window over the flat render order:
// rows [Top, Top+Height) are on screen.
type Viewport struct {
	Top    int
	Height int
}

// contains reports whether a flat row index is inside the window.
func (v Viewport) contains(flatIndex int) bool {
	return flatIndex >= v.Top && flatIndex < v.Top+v.Height
}

// RowCache is the engine's view of the node cache.
type RowCache interface {
	TryGet(path string) *render.RowView
	Invalidate(path string)
	Sweep()
	Clear()
	Len() int
}

// Classify splits identities into visible and not-visible. Visible
// requires a live cached row whose bounds intersect the viewport;
// anything uncached is classified not-visible. That is deliberately
// conservative — a false "not visible" self-corrects on the next render
// pass, whereas a false "visible" would let an on-screen row lag.
func Classify(ids []string, vp Viewport, cache RowCache) (visible, hidden []string) {
	for _, id := range ids {
		row := cache.TryGet(id)
		if row != nil && vp.contains(row.FlatIndex()) {
			visible = append(visible, id)
		} else {
			hidden = append(hidden, id)
		}
	}
	return visible, hidden
}
