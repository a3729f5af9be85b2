package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoot(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates expanded root", func(t *testing.T) {
		root, err := NewRoot(tmpDir)
		require.NoError(t, err)

		assert.True(t, root.IsDir)
		assert.True(t, root.Expanded)
		assert.Equal(t, tmpDir, root.Path)
		assert.Equal(t, 0, root.Depth)
		assert.Nil(t, root.Parent)
	})

	t.Run("resolves relative paths", func(t *testing.T) {
		cwd, _ := os.Getwd()

		root, err := NewRoot(".")
		require.NoError(t, err)
		assert.Equal(t, cwd, root.Path)
	})

	t.Run("errors on missing path", func(t *testing.T) {
		_, err := NewRoot(filepath.Join(tmpDir, "nope"))
		assert.Error(t, err)
	})
}

func TestReadChildren(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "zdir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b.txt"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "A.txt"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".hidden"), []byte(""), 0644))

	children, err := ReadChildren(tmpDir)
	require.NoError(t, err)
	require.Len(t, children, 4)

	// Directories first, then case-insensitive alphabetical.
	assert.Equal(t, "zdir", children[0].Name)
	assert.True(t, children[0].IsDir)
	assert.Equal(t, ".hidden", children[1].Name)
	assert.Equal(t, "A.txt", children[2].Name)
	assert.Equal(t, "b.txt", children[3].Name)

	t.Run("errors on unreadable dir", func(t *testing.T) {
		_, err := ReadChildren(filepath.Join(tmpDir, "missing"))
		assert.Error(t, err)
	})
}

func TestAttachChildren(t *testing.T) {
	parent := &Node{Path: "/p", Name: "p", IsDir: true, Depth: 2}
	kids := []*Node{
		{Path: "/p/a", Name: "a"},
		{Path: "/p/b", Name: "b"},
	}

	parent.AttachChildren(kids)

	assert.True(t, parent.Loaded)
	for _, k := range parent.Children {
		assert.Equal(t, parent, k.Parent)
		assert.Equal(t, 3, k.Depth)
	}
}

func TestFlatten(t *testing.T) {
	root := &Node{Path: "/r", Name: "r", IsDir: true, Expanded: true}
	dir := &Node{Path: "/r/d", Name: "d", IsDir: true}
	hidden := &Node{Path: "/r/.h", Name: ".h"}
	file := &Node{Path: "/r/f", Name: "f"}
	inner := &Node{Path: "/r/d/x", Name: "x"}
	root.AttachChildren([]*Node{dir, hidden, file})
	dir.AttachChildren([]*Node{inner})

	t.Run("collapsed directories hide their subtree", func(t *testing.T) {
		flat := root.Flatten(true)
		paths := flatPaths(flat)
		assert.Equal(t, []string{"/r", "/r/d", "/r/.h", "/r/f"}, paths)
	})

	t.Run("expansion reveals children", func(t *testing.T) {
		dir.Expanded = true
		defer func() { dir.Expanded = false }()

		flat := root.Flatten(true)
		assert.Equal(t, []string{"/r", "/r/d", "/r/d/x", "/r/.h", "/r/f"}, flatPaths(flat))
	})

	t.Run("hidden files are skipped when disabled", func(t *testing.T) {
		flat := root.Flatten(false)
		assert.Equal(t, []string{"/r", "/r/d", "/r/f"}, flatPaths(flat))
	})
}

func TestNodeHelpers(t *testing.T) {
	dir := &Node{Path: "/r/d", Name: "d", IsDir: true}
	file := &Node{Path: "/r/F.TXT", Name: "F.TXT"}

	assert.Equal(t, "", dir.Extension())
	assert.Equal(t, ".txt", file.Extension())

	dir.Toggle()
	assert.True(t, dir.Expanded)
	dir.Collapse()
	assert.False(t, dir.Expanded)

	// Toggle is a no-op for files.
	file.Toggle()
	assert.False(t, file.Expanded)
}

func TestIsLastChild(t *testing.T) {
	parent := &Node{Path: "/p", IsDir: true}
	a := &Node{Path: "/p/a", Name: "a"}
	b := &Node{Path: "/p/b", Name: "b"}
	parent.AttachChildren([]*Node{a, b})

	assert.False(t, a.IsLastChild())
	assert.True(t, b.IsLastChild())
	assert.True(t, parent.IsLastChild())
}

func flatPaths(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path
	}
	return out
}
