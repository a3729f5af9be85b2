package tree

// Index maintains an O(1) path → node lookup over the loaded portion of
// the tree. The view updates it whenever nodes are attached or removed;
// the selection engine consults it to drop identities that vanished
// between a request being issued and being processed.
type Index struct {
	nodes map[string]*Node
}

// NewIndex builds an index over root and all loaded descendants.
func NewIndex(root *Node) *Index {
	idx := &Index{nodes: make(map[string]*Node)}
	if root != nil {
		root.Walk(func(n *Node) {
			idx.nodes[n.Path] = n
		})
	}
	return idx
}

// Lookup returns the node for a path, or nil.
func (idx *Index) Lookup(path string) *Node {
	return idx.nodes[path]
}

// Exists reports whether a path is present in the loaded tree.
func (idx *Index) Exists(path string) bool {
	_, ok := idx.nodes[path]
	return ok
}

// Add registers a node (and none of its children).
func (idx *Index) Add(n *Node) {
	idx.nodes[n.Path] = n
}

// AddSubtree registers a node and all loaded descendants.
func (idx *Index) AddSubtree(n *Node) {
	n.Walk(func(c *Node) {
		idx.nodes[c.Path] = c
	})
}

// RemoveSubtree unregisters a node and all loaded descendants.
func (idx *Index) RemoveSubtree(n *Node) {
	n.Walk(func(c *Node) {
		delete(idx.nodes, c.Path)
	})
}

// Remove unregisters a single path.
func (idx *Index) Remove(path string) {
	delete(idx.nodes, path)
}

// Len returns the number of indexed nodes.
func (idx *Index) Len() int {
	return len(idx.nodes)
}
