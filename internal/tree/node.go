// Package tree holds the logical file tree: nodes keyed by path, lazy
// child loading, and the flat ordering the view renders from. Nodes are
// owned by the tree; the selection engine only ever refers to them by
// path.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Node represents a file or directory in the tree. A node's path is its
// identity: unique within the tree, compared byte-exact.
type Node struct {
	Path     string
	Name     string
	IsDir    bool
	Children []*Node
	Parent   *Node
	Depth    int
	Loaded   bool // Whether children have been loaded (lazy loading)
	Expanded bool // Whether the directory is expanded in the view
	Size     int64
	ModTime  int64 // Unix timestamp
}

// NewRoot creates an expanded root node for a directory.
func NewRoot(path string) (*Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	return &Node{
		Path:     abs,
		Name:     filepath.Base(abs),
		IsDir:    info.IsDir(),
		Expanded: true,
		Size:     info.Size(),
		ModTime:  info.ModTime().Unix(),
	}, nil
}

// ReadChildren reads the immediate children of a directory from disk.
// Entries that can't be stat'd are skipped. The result is sorted
// directories-first, then case-insensitively by name, and is not yet
// attached to the node (attachment happens on the UI side so the index
// stays consistent).
func ReadChildren(path string) ([]*Node, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	children := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		children = append(children, &Node{
			Path:    filepath.Join(path, entry.Name()),
			Name:    entry.Name(),
			IsDir:   entry.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime().Unix(),
		})
	}

	SortNodes(children)
	return children, nil
}

// SortNodes orders nodes directories-first, then alphabetically
// (case-insensitive).
func SortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].IsDir != nodes[j].IsDir {
			return nodes[i].IsDir
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
}

// AttachChildren replaces n's children, fixing up parent pointers and
// depths.
func (n *Node) AttachChildren(children []*Node) {
	for _, child := range children {
		child.Parent = n
		child.Depth = n.Depth + 1
	}
	n.Children = children
	n.Loaded = true
}

// IsHidden reports whether the node is a dotfile.
func (n *Node) IsHidden() bool {
	return len(n.Name) > 0 && n.Name[0] == '.'
}

// Extension returns the lowercased file extension (empty for
// directories).
func (n *Node) Extension() string {
	if n.IsDir {
		return ""
	}
	return strings.ToLower(filepath.Ext(n.Name))
}

// Toggle flips the expanded state of a directory node.
func (n *Node) Toggle() {
	if n.IsDir {
		n.Expanded = !n.Expanded
	}
}

// Collapse collapses a directory node.
func (n *Node) Collapse() {
	if n.IsDir {
		n.Expanded = false
	}
}

// Flatten returns the visible nodes in render order: the node itself
// followed by the subtrees of expanded directories.
func (n *Node) Flatten(showHidden bool) []*Node {
	var result []*Node
	n.flattenInto(&result, showHidden)
	return result
}

func (n *Node) flattenInto(result *[]*Node, showHidden bool) {
	if !showHidden && n.IsHidden() && n.Parent != nil {
		return
	}

	*result = append(*result, n)

	if n.IsDir && n.Expanded {
		for _, child := range n.Children {
			child.flattenInto(result, showHidden)
		}
	}
}

// Walk visits n and every loaded descendant in depth-first order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// IsLastChild reports whether this node is the last child of its
// parent.
func (n *Node) IsLastChild() bool {
	if n.Parent == nil || len(n.Parent.Children) == 0 {
		return true
	}
	return n.Parent.Children[len(n.Parent.Children)-1] == n
}
