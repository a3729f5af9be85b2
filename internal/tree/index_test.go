package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndexedTree() (*Node, *Index) {
	root := &Node{Path: "/r", Name: "r", IsDir: true, Expanded: true}
	dir := &Node{Path: "/r/d", Name: "d", IsDir: true}
	root.AttachChildren([]*Node{dir, {Path: "/r/f", Name: "f"}})
	dir.AttachChildren([]*Node{{Path: "/r/d/x", Name: "x"}})
	return root, NewIndex(root)
}

func TestNewIndex(t *testing.T) {
	_, idx := buildIndexedTree()

	assert.Equal(t, 4, idx.Len())
	assert.True(t, idx.Exists("/r/d/x"))
	assert.False(t, idx.Exists("/r/nope"))

	n := idx.Lookup("/r/d")
	require.NotNil(t, n)
	assert.Equal(t, "d", n.Name)
	assert.Nil(t, idx.Lookup("/r/nope"))

	t.Run("nil root yields an empty index", func(t *testing.T) {
		assert.Equal(t, 0, NewIndex(nil).Len())
	})
}

func TestIndexAddRemove(t *testing.T) {
	root, idx := buildIndexedTree()

	t.Run("add single node", func(t *testing.T) {
		idx.Add(&Node{Path: "/r/new", Name: "new"})
		assert.True(t, idx.Exists("/r/new"))
	})

	t.Run("add subtree registers descendants", func(t *testing.T) {
		sub := &Node{Path: "/r/s", Name: "s", IsDir: true}
		sub.AttachChildren([]*Node{{Path: "/r/s/y", Name: "y"}})

		idx.AddSubtree(sub)
		assert.True(t, idx.Exists("/r/s"))
		assert.True(t, idx.Exists("/r/s/y"))
	})

	t.Run("remove subtree unregisters descendants", func(t *testing.T) {
		dir := idx.Lookup("/r/d")
		require.NotNil(t, dir)

		idx.RemoveSubtree(dir)
		assert.False(t, idx.Exists("/r/d"))
		assert.False(t, idx.Exists("/r/d/x"))
		assert.True(t, idx.Exists("/r"))
	})

	t.Run("remove single path", func(t *testing.T) {
		idx.Remove("/r/f")
		assert.False(t, idx.Exists("/r/f"))
		// The node itself still hangs off the tree.
		assert.Equal(t, 2, len(root.Children))
	})
}
