package filetree

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTree creates a model over a real directory:
//
//	tmp/
//	├── alpha/
//	│   └── inner.txt
//	├── .hidden
//	├── beta.txt
//	└── gamma.txt
//
// Flat order after load (hidden off): tmp, alpha, beta.txt, gamma.txt.
func newTestTree(t *testing.T) (Model, string) {
	t.Helper()

	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "alpha"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "alpha", "inner.txt"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".hidden"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "beta.txt"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "gamma.txt"), []byte(""), 0644))

	m := New(Options{})
	m = m.Focus()
	m = m.SetSize(40, 10)

	cmd, err := m.SetRoot(tmp)
	require.NoError(t, err)
	m = drain(t, m, cmd)
	return m, tmp
}

// drain runs a command chain to completion through Update, the way the
// runtime would, unwrapping batches along the way.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		m, next = m.Update(msg)
		queue = append(queue, next)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, cmd := m.Update(msg)
	return drain(t, m, cmd)
}

func TestNew(t *testing.T) {
	m := New(Options{})

	assert.NotNil(t, m.theme)
	assert.NotNil(t, m.expanded)
	assert.NotNil(t, m.svc)
	assert.Equal(t, "", m.Root())
	assert.Nil(t, m.CursorNode())
}

func TestSetRoot(t *testing.T) {
	t.Run("loads children", func(t *testing.T) {
		m, tmp := newTestTree(t)

		assert.Equal(t, tmp, m.Root())
		assert.Equal(t, 4, m.VisibleCount())
		assert.Equal(t, tmp, m.CursorNode().Path)
	})

	t.Run("errors on missing directory", func(t *testing.T) {
		m := New(Options{})
		_, err := m.SetRoot(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("resets prior engine state", func(t *testing.T) {
		m, _ := newTestTree(t)
		m = press(t, m, keyRunes("j"))
		m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
		require.Equal(t, 1, m.Service().Count())

		other := t.TempDir()
		cmd, err := m.SetRoot(other)
		require.NoError(t, err)
		m = drain(t, m, cmd)

		assert.Equal(t, 0, m.Service().Count())
		assert.Equal(t, other, m.Root())
	})
}

func TestNavigation(t *testing.T) {
	m, tmp := newTestTree(t)

	m = press(t, m, keyRunes("j"))
	assert.Equal(t, filepath.Join(tmp, "alpha"), m.CursorNode().Path)

	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("j"))
	assert.Equal(t, filepath.Join(tmp, "gamma.txt"), m.CursorNode().Path)

	// Clamped at the bottom.
	m = press(t, m, keyRunes("j"))
	assert.Equal(t, filepath.Join(tmp, "gamma.txt"), m.CursorNode().Path)

	m = press(t, m, keyRunes("k"))
	assert.Equal(t, filepath.Join(tmp, "beta.txt"), m.CursorNode().Path)

	m = press(t, m, keyRunes("g"))
	assert.Equal(t, tmp, m.CursorNode().Path)

	m = press(t, m, keyRunes("G"))
	assert.Equal(t, filepath.Join(tmp, "gamma.txt"), m.CursorNode().Path)
}

func TestExpandCollapse(t *testing.T) {
	m, tmp := newTestTree(t)
	alpha := filepath.Join(tmp, "alpha")

	m = press(t, m, keyRunes("j")) // onto alpha
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 5, m.VisibleCount())
	assert.True(t, m.expanded[alpha])
	inner := m.visible[2]
	assert.Equal(t, filepath.Join(alpha, "inner.txt"), inner.Path)

	m = press(t, m, keyRunes("h"))
	assert.Equal(t, 4, m.VisibleCount())
	assert.False(t, m.expanded[alpha])
}

func TestOpenFile(t *testing.T) {
	m, tmp := newTestTree(t)

	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("j")) // beta.txt
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	open, ok := msg.(OpenMsg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(tmp, "beta.txt"), open.Path)
}

func TestToggleSelect(t *testing.T) {
	m, tmp := newTestTree(t)
	beta := filepath.Join(tmp, "beta.txt")

	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("j"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	assert.True(t, m.Service().IsSelected(beta))
	assert.Equal(t, beta, m.anchor)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.False(t, m.Service().IsSelected(beta))
}

func TestRangeExtend(t *testing.T) {
	m, tmp := newTestTree(t)

	// First V with no anchor selects the anchor alone.
	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("V"))
	assert.Equal(t, 1, m.Service().Count())

	// Extending two rows down selects the inclusive span.
	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("V"))

	assert.Equal(t, 3, m.Service().Count())
	assert.True(t, m.Service().IsSelected(filepath.Join(tmp, "alpha")))
	assert.True(t, m.Service().IsSelected(filepath.Join(tmp, "beta.txt")))
	assert.True(t, m.Service().IsSelected(filepath.Join(tmp, "gamma.txt")))
}

func TestSelectAllAndClear(t *testing.T) {
	m, _ := newTestTree(t)

	m = press(t, m, keyRunes("a"))
	assert.Equal(t, 4, m.Service().Count())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 0, m.Service().Count())
}

func TestPatternSelect(t *testing.T) {
	m, tmp := newTestTree(t)

	m = press(t, m, keyRunes("%"))
	require.True(t, m.Typing())

	for _, r := range "*.txt" {
		m = press(t, m, keyRunes(string(r)))
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Typing())
	assert.True(t, m.Service().IsSelected(filepath.Join(tmp, "beta.txt")))
	assert.True(t, m.Service().IsSelected(filepath.Join(tmp, "gamma.txt")))
	// Directories and unloaded subtrees don't match.
	assert.False(t, m.Service().IsSelected(filepath.Join(tmp, "alpha")))
	assert.Equal(t, 2, m.Service().Count())
}

func TestSearchFilter(t *testing.T) {
	m, tmp := newTestTree(t)

	m = press(t, m, keyRunes("/"))
	require.True(t, m.Typing())

	for _, r := range "beta" {
		m = press(t, m, keyRunes(string(r)))
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Typing())
	require.Equal(t, 2, m.VisibleCount()) // root + beta.txt
	assert.Equal(t, filepath.Join(tmp, "beta.txt"), m.visible[1].Path)
	assert.Equal(t, 1, m.matchCount)

	// Esc drops the filter first, selection second.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 4, m.VisibleCount())
}

func TestMouse(t *testing.T) {
	m, tmp := newTestTree(t)

	t.Run("click selects the row under the pointer", func(t *testing.T) {
		m := press(t, m, tea.MouseMsg{
			Y:      2,
			Button: tea.MouseButtonLeft,
			Action: tea.MouseActionPress,
		})

		// Row 2 on screen is flat index 1 (alpha) behind the border line.
		assert.Equal(t, filepath.Join(tmp, "alpha"), m.CursorNode().Path)
		assert.True(t, m.Service().IsSelected(filepath.Join(tmp, "alpha")))
	})

	t.Run("wheel moves the cursor", func(t *testing.T) {
		m := press(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
		assert.Equal(t, 3, m.cursor)

		m = press(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp})
		assert.Equal(t, 0, m.cursor)
	})
}

func TestHandleLoadedReconciles(t *testing.T) {
	m, tmp := newTestTree(t)
	beta := filepath.Join(tmp, "beta.txt")

	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("j"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	require.True(t, m.Service().IsSelected(beta))

	// beta.txt vanishes externally; a refresh must drop its selection
	// and index entry.
	require.NoError(t, os.Remove(beta))
	m = drain(t, m, m.RefreshDir(beta))

	assert.Equal(t, 3, m.VisibleCount())
	assert.False(t, m.Service().IsSelected(beta))
	assert.Equal(t, 0, m.Service().Count())
	assert.Nil(t, m.env.index.Lookup(beta))

	// Survivors keep their nodes.
	assert.NotNil(t, m.env.index.Lookup(filepath.Join(tmp, "gamma.txt")))
}

func TestShowHidden(t *testing.T) {
	m, tmp := newTestTree(t)
	require.Equal(t, 4, m.VisibleCount())

	m.SetShowHidden(true)
	assert.Equal(t, 5, m.VisibleCount())
	found := false
	for _, n := range m.visible {
		if n.Path == filepath.Join(tmp, ".hidden") {
			found = true
		}
	}
	assert.True(t, found)

	m.SetShowHidden(false)
	assert.Equal(t, 4, m.VisibleCount())
}

func TestViewBindsRows(t *testing.T) {
	m, tmp := newTestTree(t)

	out := m.View()
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta.txt")

	// The render pass seeded the cache for every visible node.
	assert.Equal(t, 4, m.cache.Len())
	row := m.cache.TryGet(filepath.Join(tmp, "beta.txt"))
	require.NotNil(t, row)
	assert.Equal(t, 2, row.FlatIndex())
}

func TestViewReflectsSelection(t *testing.T) {
	m, tmp := newTestTree(t)
	_ = m.View()

	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("j"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	// The visible tier painted the cached row synchronously.
	row := m.cache.TryGet(filepath.Join(tmp, "beta.txt"))
	require.NotNil(t, row)
	assert.True(t, row.Selected())
}

func TestTyping(t *testing.T) {
	m, _ := newTestTree(t)
	assert.False(t, m.Typing())

	m = press(t, m, keyRunes("/"))
	assert.True(t, m.Typing())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Typing())

	m = press(t, m, keyRunes("%"))
	assert.True(t, m.Typing())
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m, _ := newTestTree(t)
	m = m.Blur()

	before := m.CursorNode().Path
	m = press(t, m, keyRunes("j"))
	assert.Equal(t, before, m.CursorNode().Path)
}

func TestLayoutReservesBarLine(t *testing.T) {
	m, _ := newTestTree(t)
	require.Equal(t, 10, m.env.height)

	m = press(t, m, keyRunes("/"))
	assert.Equal(t, 9, m.env.height)
	assert.Equal(t, 9, m.env.pool.Height())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 10, m.env.height)
}
