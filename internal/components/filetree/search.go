package filetree

import (
	"strings"

	"github.com/benju66/ExplorerPro-sub010/internal/selection"
	"github.com/benju66/ExplorerPro-sub010/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchQuery = m.searchInput.Value()
		m.searchInput.Blur()
		m.rebuildVisible()
		m.layoutRows()
		if len(m.visible) > 0 {
			m.cursor = 0
			m.env.top = 0
		}
		return m, nil

	case "esc":
		m.searching = false
		m.searchQuery = ""
		m.searchInput.Blur()
		m.rebuildVisible()
		m.layoutRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchQuery = m.searchInput.Value()
	m.rebuildVisible()
	return m, cmd
}

// handlePatternKey drives the pattern-select prompt. Enter issues a
// pattern request scoped to the cursor's directory; ctrl+r toggles
// recursion, ctrl+t additive mode.
func (m Model) handlePatternKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		pattern := m.patternInput.Value()
		m.patterning = false
		m.patternInput.Blur()
		m.layoutRows()
		if pattern == "" {
			return m, nil
		}
		dir := m.patternScope()
		if dir == "" {
			return m, nil
		}
		return m, m.request(selection.Request{
			Shape:     selection.ShapePattern,
			Pattern:   pattern,
			Dir:       dir,
			Recursive: m.patternRecursive,
			Additive:  m.patternAdditive,
		})

	case "esc":
		m.patterning = false
		m.patternInput.Blur()
		m.layoutRows()
		return m, nil

	case "ctrl+r":
		m.patternRecursive = !m.patternRecursive
		return m, nil

	case "ctrl+t":
		m.patternAdditive = !m.patternAdditive
		return m, nil
	}

	var cmd tea.Cmd
	m.patternInput, cmd = m.patternInput.Update(msg)
	return m, cmd
}

// patternScope resolves the directory a pattern request applies to: the
// cursor's directory, or its parent when the cursor is on a file.
func (m Model) patternScope() string {
	node := m.CursorNode()
	if node == nil {
		if m.root != nil {
			return m.root.Path
		}
		return ""
	}
	if !node.IsDir {
		node = node.Parent
	}
	if node == nil {
		return ""
	}
	return node.Path
}

// filterNodes narrows the flat order to files matching the query plus
// their ancestor directories, auto-expanding ancestors so matches are
// reachable. Zero matches leaves the list unfiltered.
func filterNodes(nodes []*tree.Node, query string) ([]*tree.Node, int) {
	if query == "" {
		return nodes, 0
	}

	query = strings.ToLower(query)
	matching := make(map[string]bool)
	count := 0

	for _, node := range nodes {
		if !node.IsDir && strings.Contains(strings.ToLower(node.Name), query) {
			count++
			matching[node.Path] = true
			for p := node.Parent; p != nil; p = p.Parent {
				matching[p.Path] = true
				p.Expanded = true
			}
		}
	}

	if count == 0 {
		return nodes, 0
	}

	var result []*tree.Node
	for _, node := range nodes {
		if matching[node.Path] {
			result = append(result, node)
		}
	}
	return result, count
}
