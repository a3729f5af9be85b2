package render

// Pool owns the row objects for the visible window, one per screen
// line. Binding a line to a different node reuses the existing row
// object — the recycling behavior the cache's identity check defends
// against. Shrinking the pool drops row objects entirely, letting weak
// cache entries for them die.
type Pool struct {
	rows []*RowView
}

// NewPool creates a pool sized to the given viewport height.
func NewPool(height int) *Pool {
	p := &Pool{}
	p.Resize(height)
	return p
}

// Resize grows or shrinks the pool to match a new viewport height.
// Rows beyond the new height are released and dropped.
func (p *Pool) Resize(height int) {
	if height < 0 {
		height = 0
	}
	for len(p.rows) > height {
		last := p.rows[len(p.rows)-1]
		last.release()
		p.rows = p.rows[:len(p.rows)-1]
	}
	for len(p.rows) < height {
		p.rows = append(p.rows, &RowView{})
	}
}

// Bind assigns the node at flatIndex to the row on the given screen
// line, recycling whatever row object lives there. Returns nil if the
// line is outside the pool.
func (p *Pool) Bind(line int, path string, flatIndex int, label string, selected bool) *RowView {
	if line < 0 || line >= len(p.rows) {
		return nil
	}
	row := p.rows[line]
	row.bind(path, flatIndex, label, selected)
	return row
}

// ReleaseFrom releases every row at or below the given screen line,
// used when the tree got shorter than the viewport.
func (p *Pool) ReleaseFrom(line int) {
	if line < 0 {
		line = 0
	}
	for i := line; i < len(p.rows); i++ {
		p.rows[i].release()
	}
}

// Find scans the pool for a live row bound to path. This is the
// uncached fallback the node cache defers to on a miss: the search is
// linear but bounded by viewport height.
func (p *Pool) Find(path string) *RowView {
	for _, row := range p.rows {
		if row.bound && row.path == path {
			return row
		}
	}
	return nil
}

// Row returns the row object on a screen line, or nil.
func (p *Pool) Row(line int) *RowView {
	if line < 0 || line >= len(p.rows) {
		return nil
	}
	return p.rows[line]
}

// Height returns the number of pooled rows.
func (p *Pool) Height() int { return len(p.rows) }
